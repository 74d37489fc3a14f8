// Package testutil provides deterministic stand-ins for the wall clock and
// random source that back seedless identifier derivation.
package testutil

import (
	"sync"
	"time"
)

// FixedClock returns canned wall-clock instants in sequence.
//
// Once the canned instants are exhausted, the last one repeats. This lets
// the same test derive identical "timestamp:random" identifiers on every
// run.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu       sync.Mutex
	instants []time.Time
	next     int
}

// NewFixedClock creates a clock that yields the given instants in order.
// At least one instant must be supplied.
func NewFixedClock(instants ...time.Time) *FixedClock {
	if len(instants) == 0 {
		panic("testutil: FixedClock needs at least one instant")
	}
	return &FixedClock{instants: instants}
}

// Now returns the next canned instant, repeating the last one once the
// sequence is exhausted.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.instants[c.next]
	if c.next < len(c.instants)-1 {
		c.next++
	}
	return t
}

// FixedRand returns canned 32-bit values in sequence, repeating the last
// one once the sequence is exhausted.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedRand struct {
	mu   sync.Mutex
	vals []uint32
	next int
}

// NewFixedRand creates a random source that yields the given values in
// order. At least one value must be supplied.
func NewFixedRand(vals ...uint32) *FixedRand {
	if len(vals) == 0 {
		panic("testutil: FixedRand needs at least one value")
	}
	return &FixedRand{vals: vals}
}

// Uint32 returns the next canned value.
func (r *FixedRand) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vals[r.next]
	if r.next < len(r.vals)-1 {
		r.next++
	}
	return v
}
