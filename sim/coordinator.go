package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/flashbots/otpring/crypto"
	"github.com/flashbots/otpring/network"
	"github.com/flashbots/otpring/protocol"
	"github.com/flashbots/otpring/ring"
)

// InvariantViolationError reports a protocol-invariant breach: a burn or
// move applied to a slot that is already consumed or out of range. It can
// only arise from a logic defect, never from normal scheduling, and aborts
// the run with full state context for diagnosis.
type InvariantViolationError struct {
	Tick  int
	Party protocol.PartyID
	Index int
	Err   error
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("protocol invariant violated at tick %d by party %d on slot %d: %v",
		e.Tick, e.Party, e.Index, e.Err)
}

func (e *InvariantViolationError) Unwrap() error {
	return e.Err
}

// CoordinatorConfig assembles a run's collaborators. Only Protocol is
// required; the zero value of every other field selects a sensible default.
type CoordinatorConfig struct {
	Protocol *protocol.Config

	// Jitter is the network delay source. Defaults to a uniform source over
	// [0, d] seeded from the protocol config.
	Jitter network.JitterSource

	// Cipher is the pad-encryption capability invoked on every data move.
	// Defaults to crypto.NopCipher.
	Cipher protocol.PadCipher

	// Source supplies plaintexts for active senders. Defaults to a small
	// deterministic payload per party and tick.
	Source protocol.MessageSource

	// Log receives per-run structured logs. Defaults to a discarding logger.
	Log *slog.Logger
}

// Coordinator executes one simulation run tick by tick.
type Coordinator struct {
	cfg     *protocol.Config
	rule    protocol.Rule
	ledger  *ring.Ring
	net     *network.Model
	cipher  protocol.PadCipher
	source  protocol.MessageSource
	log     *slog.Logger
	parties map[protocol.PartyID]*protocol.Party
	order   []protocol.PartyID

	tick   int
	target int
	result *Result
}

// New validates the scenario and assembles a coordinator. Configuration
// errors are rejected here, before any tick executes.
func New(cfg *CoordinatorConfig) (*Coordinator, error) {
	if cfg == nil || cfg.Protocol == nil {
		return nil, fmt.Errorf("coordinator: %w", &protocol.ConfigError{Field: "protocol", Reason: "is required"})
	}
	pcfg := cfg.Protocol

	jitter := cfg.Jitter
	if jitter == nil {
		jitter = network.NewUniformJitter(pcfg.D, pcfg.Seed)
	}
	if err := pcfg.Validate(jitter.MaxDelay()); err != nil {
		return nil, err
	}

	cipher := cfg.Cipher
	if cipher == nil {
		cipher = crypto.NopCipher{}
	}
	source := cfg.Source
	if source == nil {
		source = protocol.MessageSourceFunc(func(id protocol.PartyID, tick int) []byte {
			return []byte(fmt.Sprintf("party %d tick %d", id, tick))
		})
	}
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	starting := pcfg.Positions()
	parties := make(map[protocol.PartyID]*protocol.Party, pcfg.M)
	order := make([]protocol.PartyID, 0, pcfg.M)
	for i := 1; i <= pcfg.M; i++ {
		id := protocol.PartyID(i)
		parties[id] = protocol.NewParty(id, pcfg.Role(id), starting)
		order = append(order, id)
	}

	ledger := ring.New(pcfg.N)
	// Active senders' starting slots count as consumed; several parties may
	// share a starting slot under the two-pointer placement.
	for _, id := range pcfg.Active {
		if pos := starting[id]; !ledger.IsBurned(pos) {
			if err := ledger.MarkBurned(pos); err != nil {
				return nil, &InvariantViolationError{Tick: 0, Party: id, Index: pos, Err: err}
			}
		}
	}

	target := pcfg.N - pcfg.M*pcfg.D
	if target < 0 {
		target = 0
	}

	return &Coordinator{
		cfg:     pcfg,
		rule:    pcfg.Rule(),
		ledger:  ledger,
		net:     network.NewModel(jitter),
		cipher:  cipher,
		source:  source,
		log:     log,
		parties: parties,
		order:   order,
		target:  target,
	}, nil
}

// Tick returns the current tick count.
func (c *Coordinator) Tick() int {
	return c.tick
}

// Result returns the final state once a terminal outcome is reached, nil
// before that.
func (c *Coordinator) Result() *Result {
	return c.result
}

// Step advances the simulation by one tick and reports whether the run has
// reached a terminal outcome. Calling Step after termination is a no-op.
func (c *Coordinator) Step() (bool, error) {
	if c.result != nil {
		return true, nil
	}
	if c.ledger.BurnedCount() >= c.target {
		c.finish(OutcomeComplete)
		return true, nil
	}
	if c.tick >= c.cfg.TickBudget() {
		c.finish(OutcomeMaxTicks)
		return true, nil
	}

	c.tick++
	moved, err := c.advanceTick()
	if err != nil {
		return true, err
	}
	if !moved && c.net.Pending() == 0 {
		c.finish(OutcomeClinch)
		return true, nil
	}
	return false, nil
}

// Run steps the simulation to a terminal outcome.
func (c *Coordinator) Run(ctx context.Context) (*Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		done, err := c.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return c.result, nil
		}
	}
}

// advanceTick executes one tick: deliver due broadcasts, decide every party
// from the post-delivery state, then apply moves in the fixed order.
func (c *Coordinator) advanceTick() (bool, error) {
	for _, ev := range c.net.Advance(c.tick) {
		sender := protocol.PartyID(ev.Sender)
		for _, id := range c.order {
			if id != sender {
				c.parties[id].UpdateView(sender, ev.Position)
			}
		}
	}

	// All decisions for this tick come from the state as it stands now;
	// no decision observes a same-tick move.
	decisions := make(map[protocol.PartyID]protocol.Decision, len(c.order))
	for _, id := range c.order {
		decisions[id] = c.rule.Decide(c.parties[id], c.ledger)
	}

	moved := false
	for _, role := range []protocol.Role{protocol.RoleActive, protocol.RoleSilent} {
		for _, id := range c.order {
			p := c.parties[id]
			if p.Role != role {
				continue
			}
			applied, err := c.apply(p, decisions[id])
			if err != nil {
				return false, err
			}
			moved = moved || applied
		}
	}
	return moved, nil
}

// apply commits one party's decision. Active parties encrypt and burn on
// data moves; silent parties advance on both data and drift outcomes but
// never consume — yielding is exactly a move without a burn.
func (c *Coordinator) apply(p *protocol.Party, d protocol.Decision) (bool, error) {
	if d.Move == protocol.MoveBlocked {
		return false, nil
	}

	// Decisions are snapshotted before any apply, so two parties moving in
	// the same direction can pick the same fresh slot; the later apply sees
	// it burned and passes over it instead. The ring rule's single-successor
	// spacing makes that collision unreachable, so the hard-error path below
	// stays in force there.
	if p.Role == protocol.RoleActive && d.Move == protocol.MoveData &&
		c.cfg.Variant == protocol.VariantTwoPointer && c.ledger.IsBurned(d.Target) {
		d.Move = protocol.MoveDrift
	}

	if p.Role == protocol.RoleActive && d.Move == protocol.MoveData {
		plaintext := c.source.NextMessage(p.ID, c.tick)
		if _, err := c.cipher.Encrypt(d.Target, plaintext); err != nil {
			return false, fmt.Errorf("encrypt slot %d for party %d: %w", d.Target, p.ID, err)
		}
		if err := c.ledger.MarkBurned(d.Target); err != nil {
			return false, &InvariantViolationError{Tick: c.tick, Party: p.ID, Index: d.Target, Err: err}
		}
		p.PadsUsed++
		c.log.Debug("pad consumed", "tick", c.tick, "party", int(p.ID), "slot", d.Target)
	}

	p.Position = d.Target
	c.net.Broadcast(int(p.ID), d.Target, c.tick)
	return true, nil
}

func (c *Coordinator) finish(outcome Outcome) {
	res := &Result{
		Outcome:     outcome,
		Ticks:       c.tick,
		Burned:      c.ledger.BurnedCount(),
		Waste:       c.ledger.Waste(),
		Utilization: c.ledger.Utilization(),
		BurnedSlots: c.ledger.Burned(),
	}
	for _, id := range c.order {
		p := c.parties[id]
		res.Parties = append(res.Parties, PartyResult{
			ID:       int(p.ID),
			Role:     p.Role.String(),
			Position: p.Position,
			PadsUsed: p.PadsUsed,
		})
	}
	c.result = res
	c.log.Info("run finished",
		"outcome", outcome.String(),
		"ticks", res.Ticks,
		"burned", res.Burned,
		"waste", res.Waste,
		"utilization", res.Utilization,
	)
}
