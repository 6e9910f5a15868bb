package sim

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/flashbots/otpring/testutil"
)

func TestPacerRunsToCompletion(t *testing.T) {
	cfg := testutil.RingConfig(40, 2, 3, 1, 2)
	coord, err := New(&CoordinatorConfig{Protocol: cfg})
	require.NoError(t, err)

	fc := clockwork.NewFakeClock()
	pacer := NewPacerWithClock(time.Second, fc)

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := pacer.Run(context.Background(), coord)
		done <- outcome{res, err}
	}()

	deadline := time.After(10 * time.Second)
	for {
		select {
		case out := <-done:
			require.NoError(t, out.err)
			require.Equal(t, OutcomeComplete, out.res.Outcome)
			return
		case <-deadline:
			t.Fatal("pacer did not finish")
		default:
			fc.Advance(time.Second)
			time.Sleep(time.Millisecond)
		}
	}
}

func TestPacerHonorsContext(t *testing.T) {
	cfg := testutil.RingConfig(2000, 4, 15, 1)
	coord, err := New(&CoordinatorConfig{Protocol: cfg})
	require.NoError(t, err)

	fc := clockwork.NewFakeClock()
	pacer := NewPacerWithClock(time.Hour, fc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = pacer.Run(ctx, coord)
	require.ErrorIs(t, err, context.Canceled)
}
