package harness

import (
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if the expect clause and every assertion match.
	Pass bool `json:"pass"`

	// Session is the token stamped on the recorded trace.
	Session string `json:"session"`

	// Counts are the summed pulse counts over every press.
	Counts ir.Counts `json:"counts"`

	// Product is Counts.Low() × Counts.High().
	Product uint64 `json:"product"`

	// Trace contains the delivery lines of the first trace_presses presses.
	Trace []string `json:"trace"`

	// TraceHash is the content identity of Trace.
	TraceHash string `json:"trace_hash,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State holds every module's final state in declaration order.
	State []engine.ModuleState `json:"state,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []string{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
