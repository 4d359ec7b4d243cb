package ir

import "fmt"

// Names with a fixed role in every network.
const (
	// BroadcasterName is the entry-point module that receives button presses.
	BroadcasterName = "broadcaster"

	// ButtonSource is the source name stamped on externally injected pulses.
	ButtonSource = "button"
)

// ModuleKind identifies the closed set of module behaviors.
type ModuleKind int

const (
	// KindBroadcast forwards every pulse unchanged.
	KindBroadcast ModuleKind = iota + 1
	// KindFlipFlop toggles on Low and ignores High.
	KindFlipFlop
	// KindNand remembers the last pulse per input and emits Low only when all are High.
	KindNand
)

// String returns the kind name used in CUE and JSON definitions.
func (k ModuleKind) String() string {
	switch k {
	case KindBroadcast:
		return "broadcast"
	case KindFlipFlop:
		return "flipflop"
	case KindNand:
		return "nand"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Prefix returns the tag character used in the text format ("%" or "&").
// Broadcast modules are untagged.
func (k ModuleKind) Prefix() string {
	switch k {
	case KindFlipFlop:
		return "%"
	case KindNand:
		return "&"
	default:
		return ""
	}
}

// Valid reports whether k is one of the declared kinds.
func (k ModuleKind) Valid() bool {
	return k >= KindBroadcast && k <= KindNand
}

// ParseModuleKind parses a kind name as produced by String.
func ParseModuleKind(s string) (ModuleKind, error) {
	switch s {
	case "broadcast":
		return KindBroadcast, nil
	case "flipflop":
		return KindFlipFlop, nil
	case "nand":
		return KindNand, nil
	default:
		return 0, fmt.Errorf("unknown module kind %q", s)
	}
}

// ModuleSpec is one declared module: its name, kind and wiring.
type ModuleSpec struct {
	Name         string     `json:"name"`
	Kind         ModuleKind `json:"kind"`
	Destinations []string   `json:"destinations"`
}

// Network is a parsed module wiring definition in declaration order.
type Network struct {
	Modules []ModuleSpec `json:"modules"`
}

// Lookup returns the module declared under name.
func (n Network) Lookup(name string) (ModuleSpec, bool) {
	for _, m := range n.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return ModuleSpec{}, false
}

// Names returns declared module names in declaration order.
func (n Network) Names() []string {
	names := make([]string, len(n.Modules))
	for i, m := range n.Modules {
		names[i] = m.Name
	}
	return names
}

// Sinks returns destination names that have no declared module, in order of
// first appearance.
func (n Network) Sinks() []string {
	declared := make(map[string]bool, len(n.Modules))
	for _, m := range n.Modules {
		declared[m.Name] = true
	}
	seen := make(map[string]bool)
	var sinks []string
	for _, m := range n.Modules {
		for _, d := range m.Destinations {
			if declared[d] || seen[d] {
				continue
			}
			seen[d] = true
			sinks = append(sinks, d)
		}
	}
	return sinks
}

// Neighbors returns the destinations of the named module, or nil for sinks.
func (n Network) Neighbors(name string) []string {
	if m, ok := n.Lookup(name); ok {
		return m.Destinations
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k ModuleKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid module kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModuleKind) UnmarshalText(text []byte) error {
	v, err := ParseModuleKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
