package protocol

import "github.com/flashbots/otpring/ring"

// Move is the outcome of one move-decision evaluation.
type Move int

const (
	// MoveBlocked means the believed gap is within the safety buffer.
	// Blocked is an expected, frequent outcome, recoverable by waiting for
	// the network to deliver a newer view. It is not an error.
	MoveBlocked Move = iota

	// MoveData means the candidate slot is fresh and safe to consume.
	MoveData

	// MoveDrift means the gap is safe but the candidate slot was already
	// burned; the party skips over it without consuming.
	MoveDrift
)

func (m Move) String() string {
	switch m {
	case MoveBlocked:
		return "blocked"
	case MoveData:
		return "data"
	case MoveDrift:
		return "drift"
	default:
		return "unknown"
	}
}

// Decision pairs a move with its target slot. Target is meaningful only for
// MoveData and MoveDrift.
type Decision struct {
	Move   Move
	Target int
}

// BurnedSet is the read-only ledger view the decision rules need.
type BurnedSet interface {
	IsBurned(index int) bool
}

// Rule computes a party's move from purely local information: the party's
// own position, its stale view, and the shared burned set. Rules are pure;
// they are evaluated once per party per tick and must not mutate anything.
type Rule interface {
	Decide(p *Party, burned BurnedSet) Decision
}

// SuccessorRule is the cooperative ring protocol's decision function. Each
// party guards the gap to its single id-ring successor and always moves
// forward by one slot.
type SuccessorRule struct {
	N int
	M int
	D int
}

// Decide evaluates one party's move for the current tick.
//
// The gap (view[successor] - position) mod n is computed from the possibly
// stale view. Movement requires gap > d strictly: the successor's updates
// are visible within at most d ticks, so a larger believed gap proves the
// successor cannot have advanced past the candidate slot yet. Ties cannot
// occur because both gap and d are integers.
func (r SuccessorRule) Decide(p *Party, burned BurnedSet) Decision {
	successor := PartyID(int(p.ID)%r.M) + 1
	gap := ring.Mod(p.View[successor]-p.Position, r.N)
	if gap <= r.D {
		return Decision{Move: MoveBlocked}
	}

	target := ring.Mod(p.Position+1, r.N)
	if burned.IsBurned(target) {
		return Decision{Move: MoveDrift, Target: target}
	}
	return Decision{Move: MoveData, Target: target}
}

// TwoPointerRule is the non-cooperative variant: odd parties sweep forward
// from slot 0, even parties sweep backward from slot n-1, and each party
// guards the gap to the closest known party moving in the opposite
// direction. Without the cooperative yield the two groups meet in the
// middle, so this variant clinches instead of reclaiming silent parties'
// space.
type TwoPointerRule struct {
	N int
	M int
	D int
}

func (r TwoPointerRule) Decide(p *Party, burned BurnedSet) Decision {
	opponent, ok := r.closestOpponent(p)
	if !ok {
		return Decision{Move: MoveBlocked}
	}

	dir := p.ID.Direction()
	var gap int
	if dir == 1 {
		gap = ring.Mod(opponent-p.Position, r.N)
	} else {
		gap = ring.Mod(p.Position-opponent, r.N)
	}
	if gap <= r.D {
		return Decision{Move: MoveBlocked}
	}

	target := ring.Mod(p.Position+dir, r.N)
	if burned.IsBurned(target) {
		return Decision{Move: MoveDrift, Target: target}
	}
	return Decision{Move: MoveData, Target: target}
}

// closestOpponent returns the most conservative estimate: the position of
// the nearest party, in this party's movement direction, that moves the
// opposite way.
func (r TwoPointerRule) closestOpponent(p *Party) (int, bool) {
	dir := p.ID.Direction()
	best, bestDist := 0, r.N+1
	found := false
	for id, pos := range p.View {
		if id == p.ID || id.Direction() == dir {
			continue
		}
		var dist int
		if dir == 1 {
			dist = ring.Mod(pos-p.Position, r.N)
		} else {
			dist = ring.Mod(p.Position-pos, r.N)
		}
		if dist < bestDist {
			best, bestDist = pos, dist
			found = true
		}
	}
	return best, found
}
