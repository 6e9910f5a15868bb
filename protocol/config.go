package protocol

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Variant selects the movement rule for a run.
type Variant string

const (
	// VariantRing is the cooperative single-successor ring protocol.
	VariantRing Variant = "ring"

	// VariantTwoPointer is the non-cooperative bidirectional variant.
	VariantTwoPointer Variant = "two-pointer"
)

// Valid returns true if the variant is recognized.
func (v Variant) Valid() bool {
	switch v {
	case VariantRing, VariantTwoPointer:
		return true
	}
	return false
}

// ConfigError reports a scenario configuration rejected at run start, before
// any ticks execute.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid scenario config: %s %s", e.Field, e.Reason)
}

// Config describes one simulation scenario.
type Config struct {
	// N is the number of pad slots in the pool.
	N int

	// M is the number of parties.
	M int

	// D is the safety buffer in ring positions. It must be at least the
	// network model's maximum delivery delay.
	D int

	// Active lists the ids of active senders; every other party is silent.
	Active []PartyID

	// Variant selects the movement rule. Empty means VariantRing.
	Variant Variant

	// StartingPositions optionally overrides the per-variant default
	// placement (equal ring intervals for ring, the two pool ends for
	// two-pointer).
	StartingPositions map[PartyID]int

	// MaxTicks bounds a run that never reaches a terminal state. Zero means
	// 100*N.
	MaxTicks int

	// Seed drives the network jitter source.
	Seed int64
}

func (c *Config) variant() Variant {
	if c.Variant == "" {
		return VariantRing
	}
	return c.Variant
}

// X returns the number of active senders.
func (c *Config) X() int {
	return len(c.Active)
}

// IsActive reports whether the party is an active sender.
func (c *Config) IsActive(id PartyID) bool {
	for _, a := range c.Active {
		if a == id {
			return true
		}
	}
	return false
}

// Role returns the party's role under this configuration.
func (c *Config) Role(id PartyID) Role {
	if c.IsActive(id) {
		return RoleActive
	}
	return RoleSilent
}

// Rule returns the movement rule for the configured variant.
func (c *Config) Rule() Rule {
	if c.variant() == VariantTwoPointer {
		return TwoPointerRule{N: c.N, M: c.M, D: c.D}
	}
	return SuccessorRule{N: c.N, M: c.M, D: c.D}
}

// Positions resolves the starting position of every party. The ring variant
// places parties at equal intervals in id order; the two-pointer variant
// starts odd parties at 0 and even parties at n-1.
func (c *Config) Positions() map[PartyID]int {
	if c.StartingPositions != nil {
		out := make(map[PartyID]int, len(c.StartingPositions))
		for id, pos := range c.StartingPositions {
			out[id] = pos
		}
		return out
	}

	out := make(map[PartyID]int, c.M)
	for i := 1; i <= c.M; i++ {
		id := PartyID(i)
		if c.variant() == VariantTwoPointer {
			if id.Direction() == 1 {
				out[id] = 0
			} else {
				out[id] = c.N - 1
			}
			continue
		}
		out[id] = (i - 1) * (c.N / c.M)
	}
	return out
}

// TickBudget returns the effective maximum tick count.
func (c *Config) TickBudget() int {
	if c.MaxTicks > 0 {
		return c.MaxTicks
	}
	return 100 * c.N
}

// Validate rejects malformed scenarios before any ticks execute. maxDelay is
// the network model's maximum possible jitter; the safety argument requires
// d to cover it.
func (c *Config) Validate(maxDelay int) error {
	if c.N <= 0 {
		return &ConfigError{Field: "n", Reason: fmt.Sprintf("must be positive, got %d", c.N)}
	}
	if c.M < 1 {
		return &ConfigError{Field: "m", Reason: fmt.Sprintf("must be at least 1, got %d", c.M)}
	}
	if c.D < 0 {
		return &ConfigError{Field: "d", Reason: fmt.Sprintf("must be non-negative, got %d", c.D)}
	}
	if maxDelay > c.D {
		return &ConfigError{
			Field:  "d",
			Reason: fmt.Sprintf("safety buffer %d is smaller than the maximum network delay %d", c.D, maxDelay),
		}
	}
	if !c.variant().Valid() && c.Variant != "" {
		return &ConfigError{Field: "variant", Reason: fmt.Sprintf("unknown variant %q", c.Variant)}
	}
	if len(c.Active) > c.M {
		return &ConfigError{Field: "active", Reason: fmt.Sprintf("%d active senders for %d parties", len(c.Active), c.M)}
	}
	seen := make(map[PartyID]struct{}, len(c.Active))
	for _, id := range c.Active {
		if id < 1 || int(id) > c.M {
			return &ConfigError{Field: "active", Reason: fmt.Sprintf("party id %d out of range 1..%d", id, c.M)}
		}
		if _, dup := seen[id]; dup {
			return &ConfigError{Field: "active", Reason: fmt.Sprintf("party id %d listed twice", id)}
		}
		seen[id] = struct{}{}
	}
	if c.StartingPositions != nil {
		if len(c.StartingPositions) != c.M {
			return &ConfigError{
				Field:  "starting_positions",
				Reason: fmt.Sprintf("got %d positions for %d parties", len(c.StartingPositions), c.M),
			}
		}
		taken := make(map[int]struct{}, len(c.StartingPositions))
		for id, pos := range c.StartingPositions {
			if id < 1 || int(id) > c.M {
				return &ConfigError{Field: "starting_positions", Reason: fmt.Sprintf("party id %d out of range 1..%d", id, c.M)}
			}
			if pos < 0 || pos >= c.N {
				return &ConfigError{Field: "starting_positions", Reason: fmt.Sprintf("position %d out of range [0, %d)", pos, c.N)}
			}
			// Ring parties occupy distinct slots; the two-pointer placement
			// shares the pool ends between same-direction parties.
			if c.variant() == VariantRing {
				if _, dup := taken[pos]; dup {
					return &ConfigError{Field: "starting_positions", Reason: fmt.Sprintf("position %d assigned twice", pos)}
				}
				taken[pos] = struct{}{}
			}
		}
	}
	if c.MaxTicks < 0 {
		return &ConfigError{Field: "max_ticks", Reason: fmt.Sprintf("must be non-negative, got %d", c.MaxTicks)}
	}
	return nil
}

// ErrTooManyActive is returned by RandomActiveSet when x exceeds m.
var ErrTooManyActive = errors.New("more active senders than parties")

// RandomActiveSet samples x distinct party ids out of 1..m, in ascending
// order, using the supplied generator. Scenario control uses it to assign
// roles the way the reference scenarios do.
func RandomActiveSet(m, x int, rng *rand.Rand) ([]PartyID, error) {
	if x < 0 || x > m {
		return nil, ErrTooManyActive
	}
	perm := rng.Perm(m)
	ids := make([]PartyID, x)
	for i := 0; i < x; i++ {
		ids[i] = PartyID(perm[i] + 1)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
