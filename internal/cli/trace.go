package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/engine"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Presses int
	Module  string // optional - filter to deliveries touching one module
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Session    string            `json:"session"`
	Presses    int               `json:"presses"`
	Deliveries []engine.Delivery `json:"deliveries"`
	Hash       string            `json:"hash"`
	Stats      TraceStats        `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalDeliveries int    `json:"total_deliveries"`
	Low             uint64 `json:"low"`
	High            uint64 `json:"high"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <network-file>",
		Short: "Show every pulse delivery of the first presses",
		Long: `Show every pulse delivery, in delivery order, for the first N presses.

Each line reads "source -level-> destination". Deliveries to modules that
do not exist are included.

Examples:
  pulsenet trace network.txt
  pulsenet trace network.txt --presses 4 --module con
  pulsenet trace network.txt --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Presses, "presses", 1, "number of button presses to trace")
	cmd.Flags().StringVar(&opts.Module, "module", "", "only show deliveries from or to this module")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Presses < 1 {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeInvalidArg, Message: "--presses must be at least 1"})
	}

	session := formatter.TraceID
	if session == "" {
		session = engine.UUIDv7Generator{}.Generate()
	}
	recorder := engine.NewRecorder(session)

	m, err := buildMachine(path, engine.WithObserver(recorder))
	if err != nil {
		return outputCommandError(formatter, err)
	}
	counts := analysis.PressButton(m, opts.Presses)

	deliveries := recorder.Deliveries()
	if opts.Module != "" {
		filtered := make([]engine.Delivery, 0, len(deliveries))
		for _, d := range deliveries {
			if d.Source == opts.Module || d.Destination == opts.Module {
				filtered = append(filtered, d)
			}
		}
		deliveries = filtered
	}

	hash, err := recorder.Hash()
	if err != nil {
		return outputCommandError(formatter, err)
	}

	result := TraceResult{
		Session:    session,
		Presses:    opts.Presses,
		Deliveries: deliveries,
		Hash:       hash,
		Stats: TraceStats{
			TotalDeliveries: len(recorder.Deliveries()),
			Low:             counts.Low(),
			High:            counts.High(),
		},
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputTraceText(formatter, result)
}

// outputTraceText prints deliveries grouped by press.
func outputTraceText(formatter *OutputFormatter, result TraceResult) error {
	w := formatter.Writer
	var press int64
	for _, d := range result.Deliveries {
		if d.Trigger != press {
			press = d.Trigger
			fmt.Fprintf(w, "# press %d\n", press)
		}
		fmt.Fprintln(w, d.String())
	}
	formatter.VerboseLog("session %s, hash %s", result.Session, result.Hash)
	fmt.Fprintf(w, "\n%d deliveries: %d low, %d high\n",
		result.Stats.TotalDeliveries, result.Stats.Low, result.Stats.High)
	return nil
}
