package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/ir"
)

func TestModule_BroadcastPassThrough(t *testing.T) {
	m := NewModule(ir.ModuleSpec{Name: "broadcaster", Kind: ir.KindBroadcast}, nil)

	for _, source := range []string{"button", "x", ""} {
		for _, p := range ir.Pulses {
			out, ok := m.Receive(source, p, nil)
			require.True(t, ok)
			assert.Equal(t, p, out)
		}
	}
}

func TestModule_FlipFlop(t *testing.T) {
	m := NewModule(ir.ModuleSpec{Name: "a", Kind: ir.KindFlipFlop}, []string{"broadcaster"})
	assert.Equal(t, ir.Low, m.Snapshot().On, "flip-flops start off")

	out, ok := m.Receive("broadcaster", ir.Low, nil)
	require.True(t, ok)
	assert.Equal(t, ir.High, out)
	assert.Equal(t, ir.High, m.Snapshot().On)

	_, ok = m.Receive("broadcaster", ir.High, nil)
	assert.False(t, ok, "High is ignored")
	assert.Equal(t, ir.High, m.Snapshot().On, "High leaves state unchanged")

	out, ok = m.Receive("broadcaster", ir.Low, nil)
	require.True(t, ok)
	assert.Equal(t, ir.Low, out)
	assert.Equal(t, ir.Low, m.Snapshot().On)
}

func TestModule_NandTwoInputs(t *testing.T) {
	inputs := []string{"A", "B"}
	m := NewModule(ir.ModuleSpec{Name: "con", Kind: ir.KindNand}, inputs)
	assert.Equal(t, []ir.Pulse{ir.Low, ir.Low}, m.Snapshot().Memory)

	out, ok := m.Receive("A", ir.High, inputs)
	require.True(t, ok)
	assert.Equal(t, ir.High, out, "B still remembered Low")

	out, _ = m.Receive("B", ir.High, inputs)
	assert.Equal(t, ir.Low, out, "all inputs High")
	assert.Equal(t, []ir.Pulse{ir.High, ir.High}, m.Snapshot().Memory)

	out, _ = m.Receive("A", ir.Low, inputs)
	assert.Equal(t, ir.High, out, "one input reverting to Low flips output")

	out, _ = m.Receive("A", ir.High, inputs)
	assert.Equal(t, ir.Low, out)

	out, _ = m.Receive("B", ir.Low, inputs)
	assert.Equal(t, ir.High, out)
}

func TestModule_NandSingleInputInverts(t *testing.T) {
	inputs := []string{"a"}
	m := NewModule(ir.ModuleSpec{Name: "inv", Kind: ir.KindNand}, inputs)

	out, _ := m.Receive("a", ir.High, inputs)
	assert.Equal(t, ir.Low, out)
	out, _ = m.Receive("a", ir.Low, inputs)
	assert.Equal(t, ir.High, out)
}

func TestModule_NandMissingInputPanics(t *testing.T) {
	inputs := []string{"a"}
	m := NewModule(ir.ModuleSpec{Name: "inv", Kind: ir.KindNand}, inputs)

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(*InvariantError)
		require.True(t, ok, "panic value should be *InvariantError, got %T", r)
		assert.Equal(t, ErrCodeMissingInput, err.Code)
		assert.Equal(t, "inv", err.Module)
	}()

	m.Receive("ghost", ir.High, inputs)
}

func TestModule_SnapshotIsCopy(t *testing.T) {
	inputs := []string{"a", "b"}
	m := NewModule(ir.ModuleSpec{Name: "con", Kind: ir.KindNand}, inputs)

	snap := m.Snapshot()
	snap.Memory[0] = ir.High

	assert.Equal(t, ir.Low, m.Snapshot().Memory[0])
}

func TestModule_DestinationsCopied(t *testing.T) {
	spec := ir.ModuleSpec{Name: "a", Kind: ir.KindFlipFlop, Destinations: []string{"b"}}
	m := NewModule(spec, nil)

	spec.Destinations[0] = "mutated"
	assert.Equal(t, []string{"b"}, m.Destinations)
}
