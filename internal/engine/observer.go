package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/pulsenet/internal/ir"
)

// Delivery is one propagated triple as seen when it is dequeued.
type Delivery struct {
	// Seq is the logical clock value assigned at dequeue.
	Seq int64 `json:"seq"`

	// Trigger is the 1-based count of SendPulse calls on the machine,
	// identifying which button press the delivery belongs to.
	Trigger int64 `json:"trigger"`

	Pulse       ir.Pulse `json:"pulse"`
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
}

// String renders the delivery as "source -pulse-> destination".
func (d Delivery) String() string {
	return fmt.Sprintf("%s -%s-> %s", d.Source, d.Pulse, d.Destination)
}

// Observer is notified of every delivery in dequeue order, before the
// destination module receives it. Observers must not call SendPulse.
type Observer interface {
	Observe(d Delivery)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(d Delivery)

// Observe calls f(d).
func (f ObserverFunc) Observe(d Delivery) { f(d) }

// Observers fans a delivery out to several observers in order.
type Observers []Observer

// Observe forwards d to every observer.
func (obs Observers) Observe(d Delivery) {
	for _, o := range obs {
		o.Observe(d)
	}
}

// Recorder is an Observer that keeps the deliveries of a session.
//
// Limit, when positive, restricts recording to triggers 1..Limit.
type Recorder struct {
	Session string
	Limit   int64

	deliveries []Delivery
}

// NewRecorder creates a recorder stamped with a session token.
func NewRecorder(session string) *Recorder {
	return &Recorder{Session: session}
}

// Observe records d unless it falls after Limit.
func (r *Recorder) Observe(d Delivery) {
	if r.Limit > 0 && d.Trigger > r.Limit {
		return
	}
	r.deliveries = append(r.deliveries, d)
}

// Deliveries returns the recorded deliveries in dequeue order.
func (r *Recorder) Deliveries() []Delivery {
	return r.deliveries
}

// Lines renders every recorded delivery.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.deliveries))
	for i, d := range r.deliveries {
		lines[i] = d.String()
	}
	return lines
}

// Text renders the recording one delivery per line, newline terminated.
func (r *Recorder) Text() string {
	var b strings.Builder
	for _, d := range r.deliveries {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Hash returns the content identity of the rendered recording.
func (r *Recorder) Hash() (string, error) {
	return ir.TraceHash(r.Lines())
}
