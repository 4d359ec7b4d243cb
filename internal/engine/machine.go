package engine

import (
	"log/slog"
	"slices"

	"github.com/roach88/pulsenet/internal/graph"
	"github.com/roach88/pulsenet/internal/ir"
)

// Machine owns every module of a network and drives propagation.
//
// INVARIANTS:
//   - order and inputs never change after New
//   - inputs[name] lists each module wired into name once, in declaration
//     order of the wiring modules
//   - a Nand's memory has exactly len(inputs[name]) slots
//   - at most one SendPulse drain runs at a time
type Machine struct {
	modules  map[string]*Module
	order    []string            // declared module names in declaration order
	inputs   map[string][]string // derived input table, shared by clones
	clock    *Clock
	observer Observer
	triggers int64
	sending  bool
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithObserver installs an observer notified of every delivery.
func WithObserver(o Observer) MachineOption {
	return func(m *Machine) {
		m.observer = o
	}
}

// WithClock replaces the machine's delivery clock.
func WithClock(c *Clock) MachineOption {
	return func(m *Machine) {
		m.clock = c
	}
}

// New builds a Machine from a network definition.
//
// The input table is derived in three passes over the declaration order:
//  1. every declared module gets an empty input list
//  2. every module is appended to the input list of each of its
//     destinations, including destinations without a module
//  3. every Nand memory is sized to its input list, all Low
//
// New fails only when the network violates an invariant (empty, duplicate
// or unknown module); shape validation belongs to the compiler.
func New(n ir.Network, opts ...MachineOption) (*Machine, error) {
	m := &Machine{
		modules: make(map[string]*Module, len(n.Modules)),
		order:   make([]string, 0, len(n.Modules)),
		inputs:  make(map[string][]string, len(n.Modules)),
		clock:   NewClock(),
	}

	for _, spec := range n.Modules {
		if spec.Name == "" {
			return nil, &InvariantError{Code: ErrCodeEmptyName, Message: "module without a name"}
		}
		if _, dup := m.inputs[spec.Name]; dup {
			return nil, NewDuplicateModuleError(spec.Name)
		}
		if !spec.Kind.Valid() {
			return nil, &InvariantError{
				Code:    ErrCodeUnknownKind,
				Message: "module kind outside the closed set",
				Module:  spec.Name,
			}
		}
		m.order = append(m.order, spec.Name)
		m.inputs[spec.Name] = []string{}
	}

	for _, spec := range n.Modules {
		for _, dest := range spec.Destinations {
			if dest == "" {
				return nil, &InvariantError{
					Code:    ErrCodeEmptyName,
					Message: "destination without a name",
					Module:  spec.Name,
				}
			}
			if !slices.Contains(m.inputs[dest], spec.Name) {
				m.inputs[dest] = append(m.inputs[dest], spec.Name)
			}
		}
	}

	for _, spec := range n.Modules {
		m.modules[spec.Name] = NewModule(spec, m.inputs[spec.Name])
	}

	for _, opt := range opts {
		opt(m)
	}

	slog.Debug("machine constructed",
		"modules", len(m.order),
		"sinks", len(m.inputs)-len(m.order),
	)

	return m, nil
}

// SendPulse injects one pulse from the button into target and drains the
// resulting propagation to quiescence. It returns how many pulses of each
// kind were delivered, counting the injected pulse and every pulse aimed at
// a destination without a module.
//
// Module state persists across calls. Calling SendPulse from an Observer
// while a drain is in progress panics.
func (m *Machine) SendPulse(p ir.Pulse, target string) ir.Counts {
	if m.sending {
		panic(NewReentrantSendError(target))
	}
	m.sending = true
	defer func() { m.sending = false }()

	m.triggers++

	q := newPulseQueue()
	q.Push(Delivery{Pulse: p, Source: ir.ButtonSource, Destination: target})

	var counts ir.Counts
	for {
		d, ok := q.Pop()
		if !ok {
			break
		}
		counts[d.Pulse]++

		d.Seq = m.clock.Next()
		d.Trigger = m.triggers
		if m.observer != nil {
			m.observer.Observe(d)
		}

		module, ok := m.modules[d.Destination]
		if !ok {
			continue // sink
		}
		out, ok := module.Receive(d.Source, d.Pulse, m.inputs[d.Destination])
		if !ok {
			continue
		}
		for _, dest := range module.Destinations {
			q.Push(Delivery{Pulse: out, Source: module.Name, Destination: dest})
		}
	}

	return counts
}

// SCCs decomposes the destination graph into strongly connected
// components. Declared modules are tried in declaration order; sinks are
// discovered through their wiring and reported as singletons. Read-only.
func (m *Machine) SCCs() [][]string {
	return graph.StronglyConnected(m.order, m.Destinations)
}

// Destinations returns the declared destinations of name, or nil for a
// sink or unknown name. The returned slice must not be modified.
func (m *Machine) Destinations(name string) []string {
	if module, ok := m.modules[name]; ok {
		return module.Destinations
	}
	return nil
}

// Inputs returns a copy of the input table entry for name.
func (m *Machine) Inputs(name string) []string {
	return slices.Clone(m.inputs[name])
}

// Modules returns declared module names in declaration order.
func (m *Machine) Modules() []string {
	return slices.Clone(m.order)
}

// Has reports whether name is a declared module.
func (m *Machine) Has(name string) bool {
	_, ok := m.modules[name]
	return ok
}

// Kind returns the kind of a declared module.
func (m *Machine) Kind(name string) (ir.ModuleKind, bool) {
	module, ok := m.modules[name]
	if !ok {
		return 0, false
	}
	return module.Kind, true
}

// State returns a snapshot of a declared module's state.
func (m *Machine) State(name string) (ModuleState, bool) {
	module, ok := m.modules[name]
	if !ok {
		return ModuleState{}, false
	}
	return module.Snapshot(), true
}

// States returns snapshots of every module in declaration order.
func (m *Machine) States() []ModuleState {
	states := make([]ModuleState, len(m.order))
	for i, name := range m.order {
		states[i] = m.modules[name].Snapshot()
	}
	return states
}

// Triggers returns how many times SendPulse has been called.
func (m *Machine) Triggers() int64 {
	return m.triggers
}

// Observer returns the installed observer, or nil.
func (m *Machine) Observer() Observer {
	return m.observer
}

// SetObserver replaces the observer. Pass nil to remove it.
func (m *Machine) SetObserver(o Observer) {
	m.observer = o
}

// Clone returns an independent machine with a deep copy of every module's
// state. The immutable topology is shared; the observer is not copied.
func (m *Machine) Clone() *Machine {
	modules := make(map[string]*Module, len(m.modules))
	for name, module := range m.modules {
		modules[name] = module.clone()
	}
	return &Machine{
		modules:  modules,
		order:    m.order,
		inputs:   m.inputs,
		clock:    NewClockAt(m.clock.Current()),
		triggers: m.triggers,
	}
}
