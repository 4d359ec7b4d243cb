package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/analysis"
)

// LCMResult holds the combined period.
type LCMResult struct {
	Periods []uint64 `json:"periods"`
	LCM     uint64   `json:"lcm"`
}

// NewLCMCommand creates the lcm command.
func NewLCMCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lcm <period>...",
		Short: "Combine periods into the first press at which they align",
		Long: `Compute the least common multiple of positive periods.

The result is the first press on which every input fires together only if
their High pulses overlap within that press; that is not checked.

Examples:
  pulsenet lcm 3733 3793 3947 4057`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLCM(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runLCM(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	periods := make([]uint64, len(args))
	for i, arg := range args {
		p, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return outputCommandError(formatter, &LoadError{
				Code:    ErrCodeInvalidArg,
				Message: fmt.Sprintf("invalid period %q", arg),
			})
		}
		periods[i] = p
	}

	lcm, err := analysis.LCM(periods...)
	if err != nil {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeAnalysis, Message: err.Error()})
	}

	result := LCMResult{Periods: periods, LCM: lcm}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, lcm)
	return nil
}
