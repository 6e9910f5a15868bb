// Package protocol implements the local decision logic of the cooperative
// one-time-pad ring protocol.
//
// # Model
//
// m mutually distrusting parties share a circular pool of n one-time-pad
// slots. Each party owns a position pointer into the pool and keeps a local,
// possibly stale view of every other party's position, updated only through
// delivered network broadcasts. A configuration constant d, the safety
// buffer, equals the maximum network delivery delay in ticks.
//
// Each tick a party evaluates a pure move-decision rule against its own
// position, its stale view, and the shared burned-slot ledger:
//
//   - MoveData: the next slot is fresh and the believed gap to the relevant
//     neighbor exceeds d. An active sender encrypts with the slot and burns it.
//   - MoveDrift: the gap is safe but the next slot is already burned. The
//     party advances without consuming anything.
//   - MoveBlocked: the believed gap is within the safety buffer. No movement.
//
// The gap check is a strict inequality. Any position update a neighbor has
// made becomes visible within at most d ticks, so a believed gap greater than
// d proves the neighbor cannot already have advanced past the candidate slot.
// That staleness bound is the protocol's only concurrency-control primitive:
// it replaces locks between parties with a provable safety margin.
//
// Silent parties have nothing to encrypt. They still move on both data and
// drift outcomes, yielding their share of the ring to active senders; they
// just never burn. Gating the burn by role is the coordinator's job, not the
// rule's.
//
// # Variants
//
// Two movement rules are provided. SuccessorRule is the cooperative ring
// protocol: each party checks the gap to its single id-ring successor
// (party_id mod m) + 1 and always moves forward. TwoPointerRule is the
// non-cooperative variant: odd parties sweep forward from slot 0, even
// parties sweep backward from slot n-1, and the gap is measured to the
// closest known party moving in the opposite direction.
package protocol
