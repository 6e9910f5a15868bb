package ring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkBurnedOnce(t *testing.T) {
	r := New(10)

	require.False(t, r.IsBurned(3))
	require.NoError(t, r.MarkBurned(3))
	require.True(t, r.IsBurned(3))
	require.Equal(t, 1, r.BurnedCount())
	require.Equal(t, 9, r.Waste())
}

func TestMarkBurnedTwiceFails(t *testing.T) {
	r := New(10)
	require.NoError(t, r.MarkBurned(7))

	err := r.MarkBurned(7)
	require.Error(t, err)

	var dup *DuplicateBurnError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, 7, dup.Index)

	// The failed attempt must not change the ledger.
	require.Equal(t, 1, r.BurnedCount())
}

func TestMarkBurnedOutOfRange(t *testing.T) {
	r := New(10)

	for _, idx := range []int{-1, 10, 100} {
		err := r.MarkBurned(idx)
		require.Error(t, err)

		var oor *OutOfRangeError
		require.True(t, errors.As(err, &oor))
		require.Equal(t, idx, oor.Index)
	}
	require.Equal(t, 0, r.BurnedCount())
}

func TestBurnedSnapshotSorted(t *testing.T) {
	r := New(20)
	for _, idx := range []int{14, 2, 9, 0} {
		require.NoError(t, r.MarkBurned(idx))
	}
	require.Equal(t, []int{0, 2, 9, 14}, r.Burned())
}

func TestWrapAround(t *testing.T) {
	r := New(10)

	// Party at position 9 wraps to candidate 0.
	require.Equal(t, 0, r.Next(9))
	require.Equal(t, 5, r.Next(4))

	// Gap must stay in [0, n) even when to < from numerically.
	require.Equal(t, 6, r.Gap(9, 5))
	require.Equal(t, 4, r.Gap(5, 9))
	require.Equal(t, 0, r.Gap(3, 3))
	require.Equal(t, 1, r.Gap(9, 0))
}

func TestUtilization(t *testing.T) {
	r := New(4)
	require.Equal(t, 0.0, r.Utilization())
	require.NoError(t, r.MarkBurned(0))
	require.NoError(t, r.MarkBurned(1))
	require.Equal(t, 0.5, r.Utilization())
}

func TestNewPanicsOnBadSize(t *testing.T) {
	require.Panics(t, func() { New(0) })
	require.Panics(t, func() { New(-5) })
}
