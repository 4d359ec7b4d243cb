package engine

// Clock is the monotonic logical clock that stamps deliveries.
//
// Every dequeued triple receives the next sequence number, so the sequence
// reflects exact processing order across triggers. Wall-clock time is never
// used for ordering.
//
// Clock is not safe for concurrent use; the Machine that owns it is
// single-threaded.
type Clock struct {
	seq int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
func NewClockAt(start int64) *Clock {
	return &Clock{seq: start}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq
}
