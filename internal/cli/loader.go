package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/pulsenet/internal/compiler"
	"github.com/roach88/pulsenet/internal/ir"
)

// LoadError represents an error that occurred while loading a network.
type LoadError struct {
	Code    string
	Message string
	Line    int       // text-format line if available
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadNetwork reads a network file (text, or CUE for .cue files).
// Every failure is returned as a *LoadError.
func LoadNetwork(path string) (ir.Network, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ir.Network{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("network file not found: %s", path)}
	}
	if err != nil {
		return ir.Network{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing network file: %v", err)}
	}
	if info.IsDir() {
		return ir.Network{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	n, err := compiler.LoadNetworkFile(path)
	if err != nil {
		return ir.Network{}, convertCompileError(err, path)
	}
	if len(n.Modules) == 0 {
		return ir.Network{}, &LoadError{Code: ErrCodeEmptyNetwork, Message: fmt.Sprintf("no modules declared in %s", path)}
	}
	return n, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Line:    compileErr.Line,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeEmptyNetwork = "E003" // No modules declared
	ErrCodeLoadFailed   = "E004" // Network load failed
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeInvalidArg   = "E006" // Invalid command argument
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeAnalysis     = "E008" // Analysis precondition not met
	ErrCodeInvariant    = "E009" // Machine construction rejected the network

	// Network syntax errors
	ErrCodeWiring       = "E120" // Missing "->" separator
	ErrCodeModuleName   = "E121" // Invalid, untagged or duplicate module name
	ErrCodeDestinations = "E122" // Invalid or missing destinations
	ErrCodeCUESchema    = "E123" // CUE modules struct malformed
	ErrCodeCUESyntax    = "E124" // CUE syntax or evaluation error
)

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "wiring":
		return ErrCodeWiring
	case field == "name":
		return ErrCodeModuleName
	case field == "destinations":
		return ErrCodeDestinations
	case field == "cue":
		return ErrCodeCUESyntax
	case field == "modules", strings.HasPrefix(field, "modules."):
		return ErrCodeCUESchema
	default:
		return ErrCodeGeneric
	}
}

// loadErrorCode extracts the code of a LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Error()
	}
	return ErrCodeGeneric, err.Error()
}
