package journal

import "sync/atomic"

// clock hands out strictly increasing seq numbers for journal entries.
//
// Thread-safety: atomic operations; safe for concurrent appends.
type clock struct {
	seq atomic.Int64
}

// newClockAt creates a clock resuming from a known position, typically
// MAX(seq) of an existing journal. The first call to next returns
// start+1.
func newClockAt(start int64) *clock {
	c := &clock{}
	c.seq.Store(start)
	return c
}

// next increments and returns the next sequence number.
func (c *clock) next() int64 {
	return c.seq.Add(1)
}
