package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
	"github.com/roach88/pulsenet/internal/testutil"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name  string
		state engine.ModuleState
		want  ir.Pulse
		ok    bool
	}{
		{"flipflop off", engine.ModuleState{Kind: ir.KindFlipFlop}, ir.Low, true},
		{"flipflop on", engine.ModuleState{Kind: ir.KindFlipFlop, On: ir.High}, ir.High, true},
		{"nand all high", engine.ModuleState{Kind: ir.KindNand, Memory: []ir.Pulse{ir.High, ir.High}}, ir.Low, true},
		{"nand one low", engine.ModuleState{Kind: ir.KindNand, Memory: []ir.Pulse{ir.High, ir.Low}}, ir.High, true},
		{"broadcast", engine.ModuleState{Kind: ir.KindBroadcast}, ir.Low, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Level(tt.state)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateAssertions_StructureOnFreshMachine(t *testing.T) {
	m, err := engine.New(testutil.Feeder())
	require.NoError(t, err)
	actx := &AssertionContext{Machine: m}

	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertFeeder, Target: "rx", Module: "dr"},
		{Type: AssertSingleton, Module: "ia"},
		{Type: AssertComponent, Members: []string{"rx"}},
		{Type: AssertFinalState, Module: "ca", Pulse: "low"},
		{Type: AssertFinalState, Module: "dr", Pulse: "high"},
	}, actx)

	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	m, err := engine.New(testutil.Feeder())
	require.NoError(t, err)
	actx := &AssertionContext{Machine: m}

	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertFeeder, Target: "rx", Module: "ia"},
		{Type: AssertFinalState, Module: "broadcaster", Pulse: "low"},
		{Type: AssertFinalState, Module: "ghost", Pulse: "low"},
		{Type: AssertComponent, Members: []string{"ghost"}},
		{Type: AssertSingleton, Module: "ghost"},
		{Type: "trace_order"},
	}, actx)

	require.Len(t, errs, 6)
	assert.Contains(t, errs[0], "feeder is dr")
	assert.Contains(t, errs[1], "broadcast modules hold no state")
	assert.Contains(t, errs[2], "module not declared")
	assert.Contains(t, errs[3], "ghost is not part of the network")
	assert.Contains(t, errs[4], "not part of the network")
	assert.Contains(t, errs[5], "unknown assertion type")
}

func TestEvaluateAssertions_NeedsMachine(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertSingleton, Module: "a"},
	}, nil)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires a machine")
}

func TestEvaluateAssertions_TraceCount(t *testing.T) {
	result := NewResult()
	result.Trace = []string{"a -high-> inv", "inv -low-> a", "a -high-> inv"}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Line: "a -high-> inv", Count: 2},
		{Type: AssertTraceCount, Line: "inv -high-> a", Count: 0},
		{Type: AssertTraceCount, Line: "inv -low-> a", Count: 3},
	}, nil)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "found 1 times")
}

func TestAssertionError_TruncatesTrace(t *testing.T) {
	trace := make([]string, maxTraceContext+5)
	for i := range trace {
		trace[i] = "button -low-> broadcaster"
	}
	err := &AssertionError{Type: AssertTraceContains, Expected: "x", Actual: "y", Trace: trace}

	msg := err.Error()
	assert.Equal(t, maxTraceContext, strings.Count(msg, "button -low-> broadcaster"))
	assert.Contains(t, msg, "... 5 more")
}
