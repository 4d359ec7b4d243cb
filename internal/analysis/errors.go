package analysis

import (
	"errors"
	"fmt"
)

// AnalysisError reports an unmet analysis precondition or invalid input.
type AnalysisError struct {
	// Code identifies the error category.
	Code AnalysisErrorCode

	// Message is a human-readable description.
	Message string

	// Module names the module involved, if any.
	Module string
}

// AnalysisErrorCode categorizes analysis errors.
type AnalysisErrorCode string

const (
	// ErrCodeNoFeeder indicates the target has no module wired into it.
	ErrCodeNoFeeder AnalysisErrorCode = "NO_FEEDER"

	// ErrCodeMultipleFeeders indicates more than one module feeds the target.
	ErrCodeMultipleFeeders AnalysisErrorCode = "MULTIPLE_FEEDERS"

	// ErrCodeNotSingleton indicates a module that must sit on no cycle does.
	ErrCodeNotSingleton AnalysisErrorCode = "NOT_SINGLETON"

	// ErrCodeInvalidPeriod indicates a zero period or an empty period list.
	ErrCodeInvalidPeriod AnalysisErrorCode = "INVALID_PERIOD"

	// ErrCodeOverflow indicates a result that does not fit in uint64.
	ErrCodeOverflow AnalysisErrorCode = "OVERFLOW"

	// ErrCodeInvalidEntry indicates a press target that cannot take an
	// external pulse.
	ErrCodeInvalidEntry AnalysisErrorCode = "INVALID_ENTRY"
)

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s: %s (module=%s)", e.Code, e.Message, e.Module)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsAnalysisError returns true if err is or wraps an AnalysisError with the
// given code. An empty code matches any AnalysisError.
func IsAnalysisError(err error, code AnalysisErrorCode) bool {
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		return false
	}
	return code == "" || ae.Code == code
}
