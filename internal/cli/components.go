package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/analysis"
)

// ComponentsOptions holds flags for the components command.
type ComponentsOptions struct {
	*RootOptions
	Target string
}

// ComponentsResult holds the SCC decomposition and the feeder check.
type ComponentsResult struct {
	Components [][]string         `json:"components"`
	Cycles     int                `json:"cycles"`
	Topology   *analysis.Topology `json:"topology,omitempty"`
	Problem    string             `json:"problem,omitempty"`
}

// NewComponentsCommand creates the components command.
func NewComponentsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComponentsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "components <network-file>",
		Short: "List strongly connected components and check the feeder of a sink",
		Long: `Decompose the wiring into strongly connected components, in reverse
topological order, and check the structure around a target sink: exactly
one module feeds it and neither sits on a cycle.

The check is skipped when the default target is not wired; an explicit
--target that fails the check exits with code 1.

Examples:
  pulsenet components network.txt
  pulsenet components network.txt --target output`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponents(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", analysis.DefaultTarget, "sink whose feeder is checked")

	return cmd
}

func runComponents(opts *ComponentsOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := buildMachine(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	result := ComponentsResult{Components: m.SCCs()}
	for _, c := range result.Components {
		if len(c) > 1 {
			result.Cycles++
		}
	}

	explicit := cmd.Flags().Changed("target")
	topo, err := analysis.InspectTarget(m, opts.Target)
	switch {
	case err == nil:
		result.Topology = topo
	case !explicit && analysis.IsAnalysisError(err, analysis.ErrCodeNoFeeder):
		// Default target absent from this network.
	default:
		result.Problem = err.Error()
	}

	if formatter.Format == "json" {
		if result.Problem == "" {
			return formatter.Success(result)
		}
		if err := formatter.Failure(ErrCodeAnalysis, result.Problem, result); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, ErrCodeAnalysis, errors.New(result.Problem))
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%d component(s), %d cycle(s)\n", len(result.Components), result.Cycles)
	for i, c := range result.Components {
		marker := " "
		if len(c) > 1 {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %3d: %v\n", marker, i, c)
	}

	switch {
	case result.Topology != nil:
		fmt.Fprintf(w, "\n✓ %s is fed only by %s; inputs of %s: %v\n",
			result.Topology.Target, result.Topology.Feeder, result.Topology.Feeder, result.Topology.Sources)
	case result.Problem != "":
		fmt.Fprintf(w, "\n✗ %s\n", result.Problem)
		return NewExitError(ExitFailure, result.Problem)
	}
	return nil
}
