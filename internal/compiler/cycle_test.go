package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/ir"
	"github.com/roach88/pulsenet/internal/testutil"
)

func TestAnalyzeCycles_Acyclic(t *testing.T) {
	warnings := AnalyzeCycles(testutil.Conjunction())

	assert.NotNil(t, warnings)
	assert.Empty(t, warnings)
}

func TestAnalyzeCycles_InverterLoop(t *testing.T) {
	warnings := AnalyzeCycles(testutil.InverterLoop())

	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"a", "inv", "a"}, warnings[0].Path)
	assert.Equal(t, "warning", warnings[0].Level)
	assert.Equal(t, "Feedback loop detected: a → inv → a", warnings[0].Message)
}

func TestAnalyzeCycles_Counter(t *testing.T) {
	warnings := AnalyzeCycles(testutil.Counter())

	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"a", "b", "c", "inv", "a"}, warnings[0].Path)
}

func TestAnalyzeCycles_SelfLoop(t *testing.T) {
	n := ir.Network{Modules: []ir.ModuleSpec{
		{Name: "broadcaster", Kind: ir.KindBroadcast, Destinations: []string{"n"}},
		{Name: "n", Kind: ir.KindNand, Destinations: []string{"out", "n"}},
	}}

	warnings := AnalyzeCycles(n)

	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"n", "n"}, warnings[0].Path)
	assert.Equal(t, "info", warnings[0].Level)
}

func TestAnalyzeCycles_TwoLoops(t *testing.T) {
	n := ir.Network{Modules: []ir.ModuleSpec{
		{Name: "broadcaster", Kind: ir.KindBroadcast, Destinations: []string{"a", "x"}},
		{Name: "a", Kind: ir.KindFlipFlop, Destinations: []string{"b"}},
		{Name: "b", Kind: ir.KindNand, Destinations: []string{"a"}},
		{Name: "x", Kind: ir.KindFlipFlop, Destinations: []string{"y"}},
		{Name: "y", Kind: ir.KindNand, Destinations: []string{"x"}},
	}}

	warnings := AnalyzeCycles(n)

	require.Len(t, warnings, 2)
	assert.Equal(t, []string{"a", "b", "a"}, warnings[0].Path)
	assert.Equal(t, []string{"x", "y", "x"}, warnings[1].Path)
}

func TestAnalyzeCycles_PathAlwaysCloses(t *testing.T) {
	// Following the first unvisited member from b reaches c, whose only
	// successor b is already on the path; the loop closes through d instead.
	n := ir.Network{Modules: []ir.ModuleSpec{
		{Name: "broadcaster", Kind: ir.KindBroadcast, Destinations: []string{"a"}},
		{Name: "a", Kind: ir.KindFlipFlop, Destinations: []string{"b"}},
		{Name: "b", Kind: ir.KindNand, Destinations: []string{"c", "d"}},
		{Name: "c", Kind: ir.KindFlipFlop, Destinations: []string{"b"}},
		{Name: "d", Kind: ir.KindFlipFlop, Destinations: []string{"a"}},
	}}

	warnings := AnalyzeCycles(n)

	require.Len(t, warnings, 1)
	path := warnings[0].Path
	assert.Equal(t, []string{"a", "b", "d", "a"}, path)
	for i := 0; i+1 < len(path); i++ {
		assert.Contains(t, n.Neighbors(path[i]), path[i+1], "edge %s -> %s", path[i], path[i+1])
	}
	assert.Equal(t, "Feedback loop detected: a → b → d → a", warnings[0].Message)
}
