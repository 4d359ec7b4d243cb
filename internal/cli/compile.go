package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/compiler"
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path; ".txt" writes the text form
}

// CompilationResult holds the compiled network and its identity.
type CompilationResult struct {
	Network   ir.Network       `json:"network"`
	Hash      string           `json:"hash"`
	IRVersion string           `json:"ir_version"`
	Stats     CompilationStats `json:"stats"`
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	Modules    int      `json:"modules"`
	FlipFlops  int      `json:"flip_flops"`
	Nands      int      `json:"nands"`
	Broadcasts int      `json:"broadcasts"`
	Sinks      []string `json:"sinks"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <network-file>",
		Short: "Compile a network to canonical JSON",
		Long: `Compile a network definition (text or .cue) to canonical JSON.

The output identifies the network by a content hash so that saved traces
can be matched to the wiring that produced them. An output file ending in
.txt receives the normalised text form instead, which converts CUE
definitions to the line format.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	network, err := LoadNetwork(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d module(s) from %s", len(network.Modules), path)

	// The machine rejects what canonical JSON cannot name (duplicates, empty names).
	if _, err := engine.New(network); err != nil {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeInvariant, Message: err.Error()})
	}

	hash, err := ir.NetworkHash(network)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	result := &CompilationResult{
		Network:   network,
		Hash:      hash,
		IRVersion: ir.IRVersion,
		Stats:     calculateStats(network),
	}

	if opts.Output != "" {
		if err := writeNetworkFile(network, opts.Output); err != nil {
			return outputCommandError(formatter, &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing output file: %v", err)})
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// calculateStats computes summary statistics of a network.
func calculateStats(n ir.Network) CompilationStats {
	stats := CompilationStats{
		Modules: len(n.Modules),
		Sinks:   n.Sinks(),
	}
	if stats.Sinks == nil {
		stats.Sinks = []string{}
	}
	for _, m := range n.Modules {
		switch m.Kind {
		case ir.KindFlipFlop:
			stats.FlipFlops++
		case ir.KindNand:
			stats.Nands++
		case ir.KindBroadcast:
			stats.Broadcasts++
		}
	}
	return stats
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	s := result.Stats
	fmt.Fprintf(w, "✓ Compiled %d module(s): %d broadcast, %d flip-flop, %d nand\n",
		s.Modules, s.Broadcasts, s.FlipFlops, s.Nands)
	if len(s.Sinks) > 0 {
		fmt.Fprintf(w, "  Sinks: %v\n", s.Sinks)
	}
	fmt.Fprintf(w, "  Hash: %s\n", result.Hash)

	if outputFile != "" {
		fmt.Fprintf(w, "Wrote network to %s\n", outputFile)
	}

	return nil
}

// outputCommandError reports a command-level error (exit code 2).
func outputCommandError(formatter *OutputFormatter, err error) error {
	code, message := loadErrorCode(err)
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, code, err)
}

// writeNetworkFile writes the network as text for ".txt" files and in
// canonical JSON form, the same bytes NetworkHash is computed over,
// otherwise.
func writeNetworkFile(n ir.Network, filename string) error {
	var data []byte
	if filepath.Ext(filename) == ".txt" {
		data = []byte(compiler.FormatNetwork(n))
	} else {
		canonical, err := ir.MarshalCanonical(n.CanonicalMap())
		if err != nil {
			return fmt.Errorf("marshaling network: %w", err)
		}
		data = append(canonical, '\n')
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
