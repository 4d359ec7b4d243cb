package engine

// pulseQueue is the FIFO queue of in-flight triples.
//
// The queue is unbounded so a single trigger can fan out arbitrarily far.
// It is owned by one SendPulse call and is not safe for concurrent use.
type pulseQueue struct {
	items []Delivery
}

// newPulseQueue creates an empty queue.
func newPulseQueue() *pulseQueue {
	return &pulseQueue{
		items: make([]Delivery, 0, 64),
	}
}

// Push adds a triple to the back of the queue.
func (q *pulseQueue) Push(d Delivery) {
	q.items = append(q.items, d)
}

// Pop removes and returns the front triple.
// Returns (Delivery{}, false) if the queue is empty.
func (q *pulseQueue) Pop() (Delivery, bool) {
	if len(q.items) == 0 {
		return Delivery{}, false
	}

	d := q.items[0]

	// Clear the slot so the backing array does not pin the name strings.
	q.items[0] = Delivery{}

	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}

	return d, true
}

// Len returns the current queue length.
func (q *pulseQueue) Len() int {
	return len(q.items)
}
