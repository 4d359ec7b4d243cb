package engine

import (
	"fmt"
	"slices"

	"github.com/roach88/pulsenet/internal/ir"
)

// Module is a single network node.
//
// The kind set is closed: Receive switches over ir.ModuleKind and every
// kind owns only its own slice of state. Peers are referenced by name.
type Module struct {
	Name         string
	Kind         ir.ModuleKind
	Destinations []string

	on     ir.Pulse   // flip-flop state
	memory []ir.Pulse // Nand memory, one slot per input in input-table order
}

// NewModule creates a module in its initial state. inputs is the module's
// entry in the input table and sizes the memory of a Nand; other kinds
// ignore it.
func NewModule(spec ir.ModuleSpec, inputs []string) *Module {
	m := &Module{
		Name:         spec.Name,
		Kind:         spec.Kind,
		Destinations: slices.Clone(spec.Destinations),
	}
	if spec.Kind == ir.KindNand {
		m.memory = make([]ir.Pulse, len(inputs))
	}
	return m
}

// Receive applies one incoming pulse and returns the pulse to forward to
// every destination, if any.
//
//   - Broadcast forwards the pulse unchanged.
//   - FlipFlop ignores High; Low toggles the state and forwards the new state.
//   - Nand stores the pulse in source's slot and forwards Low if every slot
//     is High, High otherwise.
//
// inputs must be the module's input table entry. A source without a slot
// is a construction defect and panics with an InvariantError.
func (m *Module) Receive(source string, p ir.Pulse, inputs []string) (ir.Pulse, bool) {
	switch m.Kind {
	case ir.KindBroadcast:
		return p, true

	case ir.KindFlipFlop:
		if p == ir.High {
			return ir.Low, false
		}
		m.on = m.on.Inverse()
		return m.on, true

	case ir.KindNand:
		slot := slices.Index(inputs, source)
		if slot < 0 || slot >= len(m.memory) {
			panic(NewMissingInputError(m.Name, source))
		}
		m.memory[slot] = p
		for _, remembered := range m.memory {
			if remembered != ir.High {
				return ir.High, true
			}
		}
		return ir.Low, true

	default:
		panic(&InvariantError{
			Code:    ErrCodeUnknownKind,
			Message: fmt.Sprintf("cannot receive on kind %s", m.Kind),
			Module:  m.Name,
		})
	}
}

// clone returns a deep copy of the module's state.
func (m *Module) clone() *Module {
	c := *m
	c.Destinations = slices.Clone(m.Destinations)
	c.memory = slices.Clone(m.memory)
	return &c
}

// ModuleState is a read-only snapshot of a module's private state.
type ModuleState struct {
	Name string        `json:"name"`
	Kind ir.ModuleKind `json:"kind"`

	// On is the flip-flop state. Always Low for other kinds.
	On ir.Pulse `json:"on"`

	// Memory is the Nand memory in input-table order. Nil for other kinds.
	Memory []ir.Pulse `json:"memory,omitempty"`
}

// Snapshot returns a copy of the module's state.
func (m *Module) Snapshot() ModuleState {
	return ModuleState{
		Name:   m.Name,
		Kind:   m.Kind,
		On:     m.on,
		Memory: slices.Clone(m.memory),
	}
}
