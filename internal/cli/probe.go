package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/engine"
)

// ProbeOptions holds flags for the probe command.
type ProbeOptions struct {
	*RootOptions
	Watch   string
	Presses int
	Hash    bool // also hash every delivery of the run
}

// SourceSightings lists the presses on which one input sent High.
type SourceSightings struct {
	Source  string  `json:"source"`
	Presses []int64 `json:"presses"`
}

// ProbeResult holds the High sightings into the watched module.
type ProbeResult struct {
	Watch   string            `json:"watch"`
	Presses int               `json:"presses"`
	Sources []SourceSightings `json:"sources"`
	Silent  []string          `json:"silent,omitempty"`

	// Set with --hash.
	Deliveries int    `json:"deliveries,omitempty"`
	TraceHash  string `json:"trace_hash,omitempty"`
}

// NewProbeCommand creates the probe command.
func NewProbeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProbeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "probe <network-file>",
		Short: "Record when each input of a module sends High",
		Long: `Press the button repeatedly and record, for every input of the watched
module, the presses on which it delivered a High pulse.

The recordings are the raw material for period analysis: read each input's
period off its presses, then combine them with "pulsenet lcm". With --hash
the whole run is also recorded and identified by its trace hash, so two
probes can be shown to have seen the same propagation.

Examples:
  pulsenet probe network.txt --watch dr --presses 5000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Watch, "watch", "", "module whose inputs are observed (required)")
	cmd.Flags().IntVar(&opts.Presses, "presses", analysis.ButtonPresses, "number of button presses")
	cmd.Flags().BoolVar(&opts.Hash, "hash", false, "record the whole run and report its trace hash")
	_ = cmd.MarkFlagRequired("watch")

	return cmd
}

func runProbe(opts *ProbeOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Presses < 1 {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeInvalidArg, Message: "--presses must be at least 1"})
	}

	var (
		machineOpts []engine.MachineOption
		recorder    *engine.Recorder
	)
	if opts.Hash {
		recorder = engine.NewRecorder(formatter.TraceID)
		machineOpts = append(machineOpts, engine.WithObserver(recorder))
	}

	m, err := buildMachine(path, machineOpts...)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	inputs := m.Inputs(opts.Watch)
	if len(inputs) == 0 {
		return outputCommandError(formatter, &LoadError{
			Code:    ErrCodeInvalidArg,
			Message: fmt.Sprintf("%s has no inputs", opts.Watch),
		})
	}

	probe := analysis.Watch(m, opts.Watch, opts.Presses)
	_, bySource := probe.BySource()

	result := ProbeResult{Watch: opts.Watch, Presses: opts.Presses, Sources: []SourceSightings{}}
	for _, source := range inputs {
		presses, ok := bySource[source]
		if !ok {
			result.Silent = append(result.Silent, source)
			continue
		}
		result.Sources = append(result.Sources, SourceSightings{Source: source, Presses: presses})
	}

	if recorder != nil {
		hash, err := recorder.Hash()
		if err != nil {
			return outputCommandError(formatter, err)
		}
		result.Deliveries = len(recorder.Deliveries())
		result.TraceHash = hash
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "High pulses into %s over %d presses\n", result.Watch, result.Presses)
	for _, s := range result.Sources {
		fmt.Fprintf(w, "  %s: %v\n", s.Source, s.Presses)
	}
	for _, s := range result.Silent {
		fmt.Fprintf(w, "  %s: never\n", s)
	}
	if result.TraceHash != "" {
		fmt.Fprintf(w, "%d deliveries, trace %s\n", result.Deliveries, result.TraceHash)
	}
	return nil
}
