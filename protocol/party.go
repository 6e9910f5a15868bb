package protocol

// PartyID identifies a protocol participant, numbered 1..m.
type PartyID int

// Role determines whether a party consumes pads or only yields space.
type Role int

const (
	// RoleSilent parties have nothing to send. They drift forward to clear
	// space for active senders but never burn a slot.
	RoleSilent Role = iota

	// RoleActive parties encrypt and burn fresh slots as they advance.
	RoleActive
)

func (r Role) String() string {
	switch r {
	case RoleSilent:
		return "silent"
	case RoleActive:
		return "active"
	default:
		return "unknown"
	}
}

// Party is the local state of one participant. Position is authoritative
// only for the owning party. View maps every party id to its last delivered
// position and may lag reality by up to the network delay bound; it is
// mutated exclusively through delivered broadcasts, never by direct
// cross-party reads.
type Party struct {
	ID       PartyID
	Role     Role
	Position int
	View     map[PartyID]int

	// PadsUsed counts successful encryptions by this party.
	PadsUsed int
}

// NewParty creates a party at its starting position with a view initialized
// to every party's starting position. The view includes the party's own
// entry, which keeps the successor lookup total in the degenerate m=1 case.
func NewParty(id PartyID, role Role, starting map[PartyID]int) *Party {
	view := make(map[PartyID]int, len(starting))
	for pid, pos := range starting {
		view[pid] = pos
	}
	return &Party{
		ID:       id,
		Role:     role,
		Position: starting[id],
		View:     view,
	}
}

// UpdateView records a delivered position broadcast from another party.
func (p *Party) UpdateView(sender PartyID, position int) {
	p.View[sender] = position
}

// Direction returns the sweep direction of a party under the two-pointer
// variant: +1 for odd ids, -1 for even ids.
func (id PartyID) Direction() int {
	if id%2 == 1 {
		return 1
	}
	return -1
}
