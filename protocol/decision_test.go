package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashbots/otpring/ring"
)

func newTestParty(id PartyID, pos int, view map[PartyID]int) *Party {
	p := &Party{ID: id, Role: RoleActive, Position: pos, View: make(map[PartyID]int)}
	for k, v := range view {
		p.View[k] = v
	}
	return p
}

func TestSuccessorRule(t *testing.T) {
	const (
		n = 100
		m = 3
		d = 5
	)
	rule := SuccessorRule{N: n, M: m, D: d}

	tests := []struct {
		name    string
		pos     int
		view    map[PartyID]int
		burned  []int
		want    Move
		target  int
	}{
		{
			name: "data when gap safe and slot fresh",
			pos:  10,
			view: map[PartyID]int{2: 30},
			want: MoveData, target: 11,
		},
		{
			name:   "drift when gap safe and slot burned",
			pos:    10,
			view:   map[PartyID]int{2: 30},
			burned: []int{11},
			want:   MoveDrift, target: 11,
		},
		{
			name: "blocked when gap equals d",
			pos:  10,
			view: map[PartyID]int{2: 15},
			want: MoveBlocked,
		},
		{
			name: "moves when gap is exactly d+1",
			pos:  10,
			view: map[PartyID]int{2: 16},
			want: MoveData, target: 11,
		},
		{
			name: "blocked when gap below d",
			pos:  10,
			view: map[PartyID]int{2: 12},
			want: MoveBlocked,
		},
		{
			name: "blocked at zero gap",
			pos:  10,
			view: map[PartyID]int{2: 10},
			want: MoveBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ring.New(n)
			for _, idx := range tt.burned {
				require.NoError(t, r.MarkBurned(idx))
			}
			p := newTestParty(1, tt.pos, tt.view)

			dec := rule.Decide(p, r)
			require.Equal(t, tt.want, dec.Move)
			if tt.want != MoveBlocked {
				require.Equal(t, tt.target, dec.Target)
			}
		})
	}
}

func TestSuccessorRuleWrapAround(t *testing.T) {
	// n=10, party at position 9: candidate wraps to 0, and the gap must be
	// computed in [0, n) even though the neighbor's position is numerically
	// smaller.
	rule := SuccessorRule{N: 10, M: 2, D: 5}
	p := newTestParty(1, 9, map[PartyID]int{2: 5})

	// gap = (5 - 9) mod 10 = 6 > 5
	dec := rule.Decide(p, ring.New(10))
	require.Equal(t, MoveData, dec.Move)
	require.Equal(t, 0, dec.Target)
}

func TestSuccessorRuleUsesIDRingSuccessor(t *testing.T) {
	// Party m wraps to successor 1.
	rule := SuccessorRule{N: 100, M: 3, D: 5}
	p := newTestParty(3, 50, map[PartyID]int{1: 52, 2: 90})

	// Gap to party 1 is 2 <= d; party 2's distant position is irrelevant.
	dec := rule.Decide(p, ring.New(100))
	require.Equal(t, MoveBlocked, dec.Move)
}

func TestSuccessorRuleIgnoresRole(t *testing.T) {
	// The rule can return MoveData for a silent party; gating the burn by
	// role is the coordinator's job.
	rule := SuccessorRule{N: 100, M: 2, D: 5}
	p := newTestParty(1, 10, map[PartyID]int{2: 50})
	p.Role = RoleSilent

	dec := rule.Decide(p, ring.New(100))
	require.Equal(t, MoveData, dec.Move)
}

func TestTwoPointerRuleDirections(t *testing.T) {
	const (
		n = 100
		d = 5
	)
	rule := TwoPointerRule{N: n, M: 2, D: d}

	// Odd party moves forward.
	odd := newTestParty(1, 0, map[PartyID]int{2: 99})
	dec := rule.Decide(odd, ring.New(n))
	require.Equal(t, MoveData, dec.Move)
	require.Equal(t, 1, dec.Target)

	// Even party moves backward.
	even := newTestParty(2, 99, map[PartyID]int{1: 0})
	dec = rule.Decide(even, ring.New(n))
	require.Equal(t, MoveData, dec.Move)
	require.Equal(t, 98, dec.Target)
}

func TestTwoPointerRuleClosestOpponent(t *testing.T) {
	rule := TwoPointerRule{N: 100, M: 4, D: 5}

	// Party 1 moves forward; opponents are the even parties. Party 4 at 20
	// is closer than party 2 at 99, and its gap of 10 is safe.
	p := newTestParty(1, 10, map[PartyID]int{2: 99, 3: 50, 4: 20})
	dec := rule.Decide(p, ring.New(100))
	require.Equal(t, MoveData, dec.Move)

	// Move party 4 within the buffer: blocked regardless of party 2.
	p.View[4] = 14
	dec = rule.Decide(p, ring.New(100))
	require.Equal(t, MoveBlocked, dec.Move)
}

func TestTwoPointerRuleBlockedWithoutOpponent(t *testing.T) {
	// A lone direction group has nobody to measure against; moving would be
	// unsafe, so the rule blocks.
	rule := TwoPointerRule{N: 100, M: 1, D: 5}
	p := newTestParty(1, 10, map[PartyID]int{1: 10})

	dec := rule.Decide(p, ring.New(100))
	require.Equal(t, MoveBlocked, dec.Move)
}

func TestPartyViewUpdate(t *testing.T) {
	starting := map[PartyID]int{1: 0, 2: 50}
	p := NewParty(1, RoleActive, starting)

	require.Equal(t, 0, p.Position)
	require.Equal(t, 50, p.View[2])

	p.UpdateView(2, 60)
	require.Equal(t, 60, p.View[2])

	// The shared starting map must not alias the view.
	starting[2] = 99
	require.Equal(t, 60, p.View[2])
}
