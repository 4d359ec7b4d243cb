package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/compiler"
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
	"github.com/roach88/pulsenet/internal/testutil"
)

// Harness is the test execution engine.
// It runs one scenario against a fresh machine with a fixed session token.
type Harness struct {
	machine  *engine.Machine
	recorder *engine.Recorder
	logger   *slog.Logger
}

// Run executes a test scenario and returns the result.
// Logs are discarded; use RunWithLogger to keep them.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger executes a test scenario and returns the result.
//
// Execution flow:
//  1. Load the network (inline text or network_file)
//  2. Build a fresh machine, recording the first trace_presses presses
//  3. Press the button presses times, summing the counts
//  4. Evaluate the expect clause and assertions
//
// An error is returned only when the scenario cannot run; failed
// expectations are reported in Result.Errors.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	network, err := loadNetwork(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load network: %w", err)
	}

	session := testutil.NewFixedSessionGenerator(scenario.Session).Generate()
	h := &Harness{
		recorder: engine.NewRecorder(session),
		logger:   logger,
	}
	h.recorder.Limit = int64(scenario.TracePresses)

	var opts []engine.MachineOption
	if scenario.TracePresses > 0 {
		opts = append(opts, engine.WithObserver(h.recorder))
	}
	h.machine, err = engine.New(network, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build machine: %w", err)
	}

	entry := scenario.Entry
	if entry == "" {
		entry = ir.BroadcasterName
	}
	if err := analysis.CheckEntry(h.machine, entry); err != nil {
		return nil, err
	}
	pulse := ir.Low
	if scenario.Pulse != "" {
		if pulse, err = ir.ParsePulse(scenario.Pulse); err != nil {
			return nil, err
		}
	}

	result := NewResult()
	result.Session = session
	result.Counts = analysis.Press(h.machine, pulse, entry, scenario.Presses)
	result.Product = result.Counts.Product()
	result.State = h.machine.States()

	if scenario.TracePresses > 0 {
		result.Trace = h.recorder.Lines()
		if result.TraceHash, err = h.recorder.Hash(); err != nil {
			return nil, fmt.Errorf("failed to hash trace: %w", err)
		}
	}

	h.logger.Info("scenario executed",
		"scenario", scenario.Name,
		"session", session,
		"presses", scenario.Presses,
		"low", result.Counts.Low(),
		"high", result.Counts.High(),
		"trace_lines", len(result.Trace),
	)

	for _, errMsg := range checkExpect(result, scenario.Expect) {
		result.AddError(errMsg)
	}
	actx := &AssertionContext{Machine: h.machine}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func loadNetwork(s *Scenario) (ir.Network, error) {
	if s.Network != "" {
		return compiler.ParseNetworkString(s.Network)
	}
	return compiler.LoadNetworkFile(s.NetworkFile)
}

// checkExpect compares the totals against the expect clause.
func checkExpect(result *Result, expect *ExpectClause) []string {
	if expect == nil {
		return nil
	}

	var errs []string
	check := func(name string, want *uint64, got uint64) {
		if want != nil && *want != got {
			errs = append(errs, fmt.Sprintf("expect.%s: expected %d, got %d", name, *want, got))
		}
	}
	check("low", expect.Low, result.Counts.Low())
	check("high", expect.High, result.Counts.High())
	check("product", expect.Product, result.Product)
	return errs
}
