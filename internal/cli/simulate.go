package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Presses int
	Entry   string // module that receives each press
	Pulse   string // level of each press
}

// SimulationResult holds the totals of a simulation run.
type SimulationResult struct {
	Entry   string `json:"entry"`
	Presses int    `json:"presses"`
	Low     uint64 `json:"low"`
	High    uint64 `json:"high"`
	Product uint64 `json:"product"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate <network-file>",
		Short: "Press the button and count pulses",
		Long: `Press the button repeatedly against one machine and report the total
number of Low and High pulses delivered, and their product.

State carries over between presses.

Examples:
  pulsenet simulate network.txt
  pulsenet simulate network.cue --presses 4 --format json
  pulsenet simulate network.txt --entry a --pulse high`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Presses, "presses", analysis.ButtonPresses, "number of button presses")
	cmd.Flags().StringVar(&opts.Entry, "entry", ir.BroadcasterName, "module that receives each press")
	cmd.Flags().StringVar(&opts.Pulse, "pulse", ir.Low.String(), "pulse level of each press (low|high)")

	return cmd
}

func runSimulate(opts *SimulateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Presses < 0 {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeInvalidArg, Message: "--presses must be non-negative"})
	}

	pulse, err := ir.ParsePulse(opts.Pulse)
	if err != nil {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeInvalidArg, Message: err.Error()})
	}

	m, err := buildMachine(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	if err := analysis.CheckEntry(m, opts.Entry); err != nil {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeInvalidArg, Message: err.Error()})
	}
	counts := analysis.Press(m, pulse, opts.Entry, opts.Presses)
	slog.Debug("simulation finished", "entry", opts.Entry, "presses", opts.Presses, "counts", counts.String())

	result := SimulationResult{
		Entry:   opts.Entry,
		Presses: opts.Presses,
		Low:     counts.Low(),
		High:    counts.High(),
		Product: counts.Product(),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Presses: %d\n", result.Presses)
	fmt.Fprintf(w, "Low:     %d\n", result.Low)
	fmt.Fprintf(w, "High:    %d\n", result.High)
	fmt.Fprintf(w, "Product: %d\n", result.Product)
	return nil
}

// buildMachine loads a network file and constructs a fresh machine.
func buildMachine(path string, opts ...engine.MachineOption) (*engine.Machine, error) {
	network, err := LoadNetwork(path)
	if err != nil {
		return nil, err
	}
	m, err := engine.New(network, opts...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvariant, Message: err.Error()}
	}
	if !m.Has(ir.BroadcasterName) {
		slog.Warn("network has no broadcaster; presses reach a sink", "file", path)
	}
	return m, nil
}
