package ir

import "fmt"

// Pulse is the binary signal carried on a wire between modules.
type Pulse uint8

const (
	// Low is the zero value so fresh flip-flops and Nand slots start Low.
	Low Pulse = iota
	// High is the other pulse kind.
	High
)

// Pulses lists every pulse kind in index order.
var Pulses = [...]Pulse{Low, High}

// String returns "low" or "high".
func (p Pulse) String() string {
	switch p {
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return fmt.Sprintf("pulse(%d)", uint8(p))
	}
}

// Inverse returns the other pulse kind.
func (p Pulse) Inverse() Pulse {
	if p == Low {
		return High
	}
	return Low
}

// ParsePulse parses "low" or "high" (as produced by String).
func ParsePulse(s string) (Pulse, error) {
	switch s {
	case "low":
		return Low, nil
	case "high":
		return High, nil
	default:
		return Low, fmt.Errorf("invalid pulse %q: must be low or high", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Pulse) MarshalText() ([]byte, error) {
	if p != Low && p != High {
		return nil, fmt.Errorf("invalid pulse %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pulse) UnmarshalText(text []byte) error {
	v, err := ParsePulse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Counts holds a pulse tally indexed by Pulse.
type Counts [2]uint64

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{c[Low] + o[Low], c[High] + o[High]}
}

// Low returns the number of Low pulses.
func (c Counts) Low() uint64 { return c[Low] }

// High returns the number of High pulses.
func (c Counts) High() uint64 { return c[High] }

// Total returns the number of pulses of either kind.
func (c Counts) Total() uint64 { return c[Low] + c[High] }

// Product returns Low × High.
func (c Counts) Product() uint64 { return c[Low] * c[High] }

// String formats the counts as "low=N high=M".
func (c Counts) String() string {
	return fmt.Sprintf("low=%d high=%d", c[Low], c[High])
}
