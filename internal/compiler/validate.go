package compiler

import (
	"fmt"

	"github.com/roach88/pulsenet/internal/ir"
)

// Validation codes (E100-E199)
const (
	// Errors (E100-E109)
	ErrNoBroadcaster   = "E101" // no broadcast module named broadcaster
	ErrDuplicateName   = "E102" // module declared twice
	ErrEmptyName       = "E103" // module or destination without a name
	ErrUnknownKind     = "E104" // kind outside the closed set
	ErrNoDestinations  = "E105" // module wired to nothing
	ErrBroadcasterKind = "E106" // broadcaster declared with another kind

	// Informational (E110-E119)
	InfoSelfWired = "E110" // module lists itself as a destination
	InfoSink      = "E111" // destination without a backing module
)

// Validation levels.
const (
	LevelError = "error"
	LevelInfo  = "info"
)

// ValidationError represents one validation finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Level   string `json:"level"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// IsError reports whether the finding should fail validation.
func (e ValidationError) IsError() bool {
	return e.Level == LevelError
}

// ValidateNetwork checks a network against the construction rules.
// Returns all findings (does not fail-fast); only LevelError findings make
// a network unusable.
func ValidateNetwork(n ir.Network) []ValidationError {
	var errs []ValidationError
	declared := make(map[string]bool, len(n.Modules))

	for i, m := range n.Modules {
		field := fmt.Sprintf("modules[%d]", i)

		if m.Name == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "module name is required",
				Code:    ErrEmptyName,
				Level:   LevelError,
			})
		} else if declared[m.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate module name: %q", m.Name),
				Code:    ErrDuplicateName,
				Level:   LevelError,
			})
		}
		declared[m.Name] = true

		if !m.Kind.Valid() {
			errs = append(errs, ValidationError{
				Field:   field + ".kind",
				Message: fmt.Sprintf("module %q has unknown kind %s", m.Name, m.Kind),
				Code:    ErrUnknownKind,
				Level:   LevelError,
			})
		}
		if m.Name == ir.BroadcasterName && m.Kind != ir.KindBroadcast {
			errs = append(errs, ValidationError{
				Field:   field + ".kind",
				Message: fmt.Sprintf("%s must be a broadcast module, got %s", ir.BroadcasterName, m.Kind),
				Code:    ErrBroadcasterKind,
				Level:   LevelError,
			})
		}

		if len(m.Destinations) == 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".destinations",
				Message: fmt.Sprintf("module %q must have at least one destination", m.Name),
				Code:    ErrNoDestinations,
				Level:   LevelError,
			})
		}
		for j, d := range m.Destinations {
			switch d {
			case "":
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.destinations[%d]", field, j),
					Message: "destination name is required",
					Code:    ErrEmptyName,
					Level:   LevelError,
				})
			case m.Name:
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.destinations[%d]", field, j),
					Message: fmt.Sprintf("module %q is wired to itself", m.Name),
					Code:    InfoSelfWired,
					Level:   LevelInfo,
				})
			}
		}
	}

	if !declared[ir.BroadcasterName] {
		errs = append(errs, ValidationError{
			Field:   "modules",
			Message: fmt.Sprintf("no %s module; button presses would reach a sink", ir.BroadcasterName),
			Code:    ErrNoBroadcaster,
			Level:   LevelError,
		})
	}

	for _, sink := range n.Sinks() {
		if sink == "" {
			continue
		}
		errs = append(errs, ValidationError{
			Field:   "destinations",
			Message: fmt.Sprintf("%q has no module and acts as a sink", sink),
			Code:    InfoSink,
			Level:   LevelInfo,
		})
	}

	return errs
}

// HasErrors reports whether any finding is at LevelError.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.IsError() {
			return true
		}
	}
	return false
}
