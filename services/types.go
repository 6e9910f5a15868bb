package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flashbots/otpring/protocol"
	"github.com/flashbots/otpring/sim"
	"github.com/flashbots/otpring/stats"
)

// ErrRunNotFound is returned by stores when the requested run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// RunRequest describes a batch of simulation trials for one scenario. The
// same shape is accepted over the HTTP API and from TOML scenario files.
type RunRequest struct {
	N       int    `json:"n"        toml:"n"`
	M       int    `json:"m"        toml:"m"`
	D       int    `json:"d"        toml:"d"`
	X       int    `json:"x"        toml:"x"`
	Variant string `json:"variant"  toml:"variant"`
	Trials  int    `json:"trials"   toml:"trials"`
	Seed    int64  `json:"seed"     toml:"seed"`

	// Active pins the active sender set explicitly. When empty, X senders
	// are sampled per trial from the request seed.
	Active []int `json:"active,omitempty" toml:"active"`

	MaxTicks int `json:"max_ticks,omitempty" toml:"max_ticks"`
}

// Variant resolves the requested protocol variant, defaulting to the ring.
func (r *RunRequest) variant() protocol.Variant {
	if r.Variant == "" {
		return protocol.VariantRing
	}
	return protocol.Variant(r.Variant)
}

// Config builds the protocol configuration for one trial. active is the
// sender set for that trial and seed the trial's jitter seed.
func (r *RunRequest) Config(active []protocol.PartyID, seed int64) *protocol.Config {
	return &protocol.Config{
		N:        r.N,
		M:        r.M,
		D:        r.D,
		Active:   active,
		Variant:  r.variant(),
		MaxTicks: r.MaxTicks,
		Seed:     seed,
	}
}

// RunRecord is the persisted outcome of one executed request.
type RunRecord struct {
	ID        uuid.UUID     `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Request   RunRequest    `json:"request"`
	Summary   stats.Summary `json:"summary"`
	Results   []*sim.Result `json:"results,omitempty"`
}

// ResultStore persists executed runs.
type ResultStore interface {
	SaveRun(record *RunRecord) error
	GetRun(id uuid.UUID) (*RunRecord, error)
	ListRuns() ([]*RunRecord, error)
	Close() error
}
