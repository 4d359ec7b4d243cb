package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/compiler"
	"github.com/roach88/pulsenet/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool                       `json:"valid"`
	Errors  []compiler.ValidationError `json:"errors,omitempty"`
	Notices []compiler.ValidationError `json:"notices,omitempty"`
	Cycles  []compiler.CycleWarning    `json:"cycles,omitempty"`
	Modules int                        `json:"modules"`
	Hash    string                     `json:"hash,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <network-file>",
		Short: "Validate a network without simulating it",
		Long: `Validate a network definition against the construction rules.

Reports errors (missing broadcaster, duplicate or unnamed modules, modules
without destinations), notices (sinks, self-wired modules) and every
feedback loop in the wiring. Only errors fail validation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	network, err := LoadNetwork(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	formatter.VerboseLog("Validating %d module(s) from %s", len(network.Modules), path)

	result := ValidateNetwork(network)
	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// ValidateNetwork runs every static check on a network.
// This is a helper function for external callers.
func ValidateNetwork(n ir.Network) ValidationResult {
	result := ValidationResult{Modules: len(n.Modules)}

	for _, finding := range compiler.ValidateNetwork(n) {
		if finding.IsError() {
			result.Errors = append(result.Errors, finding)
		} else {
			result.Notices = append(result.Notices, finding)
		}
	}
	result.Valid = len(result.Errors) == 0
	result.Cycles = compiler.AnalyzeCycles(n)

	if result.Valid {
		// Valid networks always have a canonical form.
		result.Hash = ir.MustNetworkHash(n)
	}
	return result
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Network valid (%d module(s))\n", result.Modules)
	for _, n := range result.Notices {
		fmt.Fprintf(w, "  %s: %s\n", n.Code, n.Message)
	}
	for _, c := range result.Cycles {
		fmt.Fprintf(w, "  %s: %s\n", c.Level, c.Message)
	}
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	if formatter.Format == "json" {
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "%s\n", err.Field)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return failed
}
