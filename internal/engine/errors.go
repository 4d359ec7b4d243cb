package engine

import (
	"errors"
	"fmt"
)

// InvariantError reports a violated construction or propagation invariant.
//
// Invariant errors indicate a defect in the network definition handed to
// New or in the engine itself, never a transient condition:
//   - Duplicate or empty module names
//   - Unknown module kind
//   - A Nand receiving from a module that is not in its input table
//   - A nested SendPulse while a drain is in progress
//
// New returns them as errors. Violations found while draining are not
// recoverable and are raised with panic.
type InvariantError struct {
	// Code identifies the error category.
	Code InvariantErrorCode

	// Message is a human-readable description.
	Message string

	// Module names the module where the violation was detected.
	Module string

	// Details contains additional context.
	Details map[string]string
}

// InvariantErrorCode categorizes invariant errors.
type InvariantErrorCode string

const (
	// ErrCodeDuplicateModule indicates two modules share a name.
	ErrCodeDuplicateModule InvariantErrorCode = "DUPLICATE_MODULE"

	// ErrCodeEmptyName indicates a module or destination without a name.
	ErrCodeEmptyName InvariantErrorCode = "EMPTY_NAME"

	// ErrCodeUnknownKind indicates a module kind outside the closed set.
	ErrCodeUnknownKind InvariantErrorCode = "UNKNOWN_KIND"

	// ErrCodeMissingInput indicates a Nand received from an unwired source.
	ErrCodeMissingInput InvariantErrorCode = "MISSING_INPUT"

	// ErrCodeReentrantSend indicates SendPulse was called during a drain.
	ErrCodeReentrantSend InvariantErrorCode = "REENTRANT_SEND"
)

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s: %s (module=%s)", e.Code, e.Message, e.Module)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvariantError returns true if err is or wraps an InvariantError with
// the given code. An empty code matches any InvariantError.
func IsInvariantError(err error, code InvariantErrorCode) bool {
	var ie *InvariantError
	if !errors.As(err, &ie) {
		return false
	}
	return code == "" || ie.Code == code
}

// NewDuplicateModuleError creates an InvariantError for a repeated name.
func NewDuplicateModuleError(name string) *InvariantError {
	return &InvariantError{
		Code:    ErrCodeDuplicateModule,
		Message: "module declared more than once",
		Module:  name,
	}
}

// NewMissingInputError creates an InvariantError for a Nand without a slot
// for source.
func NewMissingInputError(module, source string) *InvariantError {
	return &InvariantError{
		Code:    ErrCodeMissingInput,
		Message: fmt.Sprintf("no input slot for source %q", source),
		Module:  module,
		Details: map[string]string{"source": source},
	}
}

// NewReentrantSendError creates an InvariantError for a nested SendPulse.
func NewReentrantSendError(target string) *InvariantError {
	return &InvariantError{
		Code:    ErrCodeReentrantSend,
		Message: "SendPulse called while a drain is in progress",
		Details: map[string]string{"target": target},
	}
}
