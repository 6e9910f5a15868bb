// Package ring owns the shared ledger of consumed one-time-pad slots.
//
// The ring is the circular index space [0, n) of pad slots together with the
// append-only set of burned slots. It is the single authority for "has this
// slot been used for encryption": a slot that appears in the burned set has
// been consumed exactly once and must never be consumed again. Parties hold
// read access only; all mutation goes through the coordinator.
package ring

import "fmt"

// DuplicateBurnError reports an attempt to burn a slot that is already
// burned. Observing it means the decision logic or the coordinator ordering
// is defective; it is never a recoverable runtime outcome.
type DuplicateBurnError struct {
	Index int
}

func (e *DuplicateBurnError) Error() string {
	return fmt.Sprintf("pad slot %d already burned", e.Index)
}

// OutOfRangeError reports a slot index outside [0, n).
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("pad slot %d out of range [0, %d)", e.Index, e.Size)
}

// Ring tracks which slots of an n-slot circular pad pool have been consumed.
type Ring struct {
	n      int
	burned map[int]struct{}
}

// New creates a ledger over n pad slots. The size must be validated by the
// caller before a run starts; a non-positive n here is a programming error.
func New(n int) *Ring {
	if n <= 0 {
		panic(fmt.Sprintf("ring: non-positive size %d", n))
	}
	return &Ring{
		n:      n,
		burned: make(map[int]struct{}),
	}
}

// Size returns the number of slots in the pool.
func (r *Ring) Size() int {
	return r.n
}

// IsBurned reports whether the slot has been consumed.
func (r *Ring) IsBurned(index int) bool {
	_, ok := r.burned[index]
	return ok
}

// MarkBurned irreversibly records the slot as consumed. Burning a slot twice
// or burning an out-of-range index returns a typed error; the caller is
// expected to escalate it as an invariant violation, not to continue.
func (r *Ring) MarkBurned(index int) error {
	if index < 0 || index >= r.n {
		return &OutOfRangeError{Index: index, Size: r.n}
	}
	if _, ok := r.burned[index]; ok {
		return &DuplicateBurnError{Index: index}
	}
	r.burned[index] = struct{}{}
	return nil
}

// BurnedCount returns the number of consumed slots.
func (r *Ring) BurnedCount() int {
	return len(r.burned)
}

// Burned returns the consumed slot indices in ascending order.
func (r *Ring) Burned() []int {
	out := make([]int, 0, len(r.burned))
	for i := 0; i < r.n; i++ {
		if _, ok := r.burned[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// Waste returns the number of slots not consumed.
func (r *Ring) Waste() int {
	return r.n - len(r.burned)
}

// Utilization returns the consumed fraction of the pool, in [0, 1].
func (r *Ring) Utilization() float64 {
	return float64(len(r.burned)) / float64(r.n)
}

// Next returns the slot after pos, wrapping around the ring.
func (r *Ring) Next(pos int) int {
	return Mod(pos+1, r.n)
}

// Gap returns the forward distance from one position to another, always in
// [0, n) even when to < from numerically.
func (r *Ring) Gap(from, to int) int {
	return Mod(to-from, r.n)
}

// Mod returns x mod n with a non-negative result, unlike the native %
// operator for negative x.
func Mod(x, n int) int {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
