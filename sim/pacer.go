package sim

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Pacer steps a coordinator at a fixed wall-clock interval, for live runs
// where the simulation should be observable as it progresses. The clock is
// injectable so tests advance it without sleeping.
type Pacer struct {
	interval time.Duration
	clock    clockwork.Clock
}

// NewPacer creates a pacer stepping once per interval on the real clock.
func NewPacer(interval time.Duration) *Pacer {
	return NewPacerWithClock(interval, clockwork.NewRealClock())
}

// NewPacerWithClock creates a pacer on the supplied clock.
func NewPacerWithClock(interval time.Duration, clock clockwork.Clock) *Pacer {
	return &Pacer{interval: interval, clock: clock}
}

// Run steps the coordinator once per interval until it reaches a terminal
// outcome or the context is canceled.
func (p *Pacer) Run(ctx context.Context, c *Coordinator) (*Result, error) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.Chan():
		}

		done, err := c.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return c.Result(), nil
		}
	}
}
