package harness

import "sync/atomic"

// DeterministicClock is a monotonic logical clock used to stamp trace
// events. Two runs of the same scenario see the same sequence numbers, which
// is what makes traces comparable byte for byte.
//
// The zero value is ready to use and safe for concurrent callers.
type DeterministicClock struct {
	seq atomic.Int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next advances the clock and returns the new sequence number.
func (c *DeterministicClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last value handed out, or 0.
func (c *DeterministicClock) Current() int64 {
	return c.seq.Load()
}

// Reset rewinds the clock so the next call to Next returns 1.
func (c *DeterministicClock) Reset() {
	c.seq.Store(0)
}
