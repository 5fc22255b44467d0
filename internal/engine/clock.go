package engine

import "sync/atomic"

// Clock is a monotonic logical clock stamping hit sequence numbers.
//
// Every emitted log line gets a strictly increasing seq from this clock.
// This ensures:
// - Deterministic ordering (no wall-clock race conditions)
// - Journal rows sort identically to emission order
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// However, hit dispatch is serialized by the host, so only the control
// thread typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used when resuming a session against an existing journal.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
