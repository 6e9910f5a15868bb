// Package network simulates asynchronous, delay-bounded broadcast delivery of
// party position updates.
//
// Every position broadcast is queued with a delivery tick drawn from a
// bounded jitter source and released once the global clock reaches it. The
// jitter bound must never exceed the protocol's safety buffer d; that is a
// configuration invariant checked at run start, not here.
package network

import (
	"math/rand"
	"sort"
)

// Event is a queued position broadcast. It lives inside the model's queue
// from Broadcast until the Advance call that delivers it.
type Event struct {
	Sender       int
	Position     int
	DeliveryTick int
}

// JitterSource draws the delivery delay for each broadcast. Implementations
// must only return values in [0, MaxDelay()].
type JitterSource interface {
	// Jitter returns the delay in ticks for the next broadcast.
	Jitter() int

	// MaxDelay returns the largest value Jitter can produce. The protocol's
	// safety buffer is validated against this bound.
	MaxDelay() int
}

// UniformJitter draws delays uniformly from [0, max] using a seeded
// generator, so runs are reproducible under a fixed seed.
type UniformJitter struct {
	max int
	rng *rand.Rand
}

// NewUniformJitter creates a seeded uniform jitter source with delays in
// [0, max].
func NewUniformJitter(max int, seed int64) *UniformJitter {
	return &UniformJitter{
		max: max,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (j *UniformJitter) Jitter() int {
	return j.rng.Intn(j.max + 1)
}

func (j *UniformJitter) MaxDelay() int {
	return j.max
}

// Model queues position broadcasts and releases them once the global clock
// passes their scheduled delivery tick.
type Model struct {
	jitter JitterSource
	queue  []Event
}

// NewModel creates a network model using the given jitter source.
func NewModel(jitter JitterSource) *Model {
	return &Model{jitter: jitter}
}

// Broadcast schedules a position update from sender for delivery at
// tick + jitter. It never blocks the caller.
func (m *Model) Broadcast(sender, position, tick int) {
	m.queue = append(m.queue, Event{
		Sender:       sender,
		Position:     position,
		DeliveryTick: tick + m.jitter.Jitter(),
	})
}

// Advance removes and returns every queued event whose delivery tick is at or
// before tick. Events are returned in non-decreasing delivery-tick order with
// ties broken by sender id, then by enqueue order, so runs are deterministic.
func (m *Model) Advance(tick int) []Event {
	var due []Event
	remaining := m.queue[:0]
	for _, ev := range m.queue {
		if ev.DeliveryTick <= tick {
			due = append(due, ev)
		} else {
			remaining = append(remaining, ev)
		}
	}
	m.queue = remaining

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].DeliveryTick != due[j].DeliveryTick {
			return due[i].DeliveryTick < due[j].DeliveryTick
		}
		return due[i].Sender < due[j].Sender
	})
	return due
}

// Pending returns the number of broadcasts still in flight.
func (m *Model) Pending() int {
	return len(m.queue)
}
