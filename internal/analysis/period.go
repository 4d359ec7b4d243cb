package analysis

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/roach88/pulsenet/internal/engine"
)

// DefaultTarget is the sink whose first Low pulse the period analysis is
// about.
const DefaultTarget = "rx"

// Topology is the structure around a target sink that makes the period
// analysis applicable.
type Topology struct {
	// Target is the analysed sink.
	Target string `json:"target"`

	// Feeder is the single module wired into Target.
	Feeder string `json:"feeder"`

	// Sources are the modules wired into Feeder, in slot order. Each one is
	// observed for its own period.
	Sources []string `json:"sources"`
}

// InspectTarget asserts the structural precondition of the period
// analysis and returns the topology around target:
//   - exactly one module feeds target
//   - target and its feeder are each a singleton component of the SCC
//     decomposition
func InspectTarget(m *engine.Machine, target string) (*Topology, error) {
	feeders := m.Inputs(target)
	switch len(feeders) {
	case 0:
		return nil, &AnalysisError{
			Code:    ErrCodeNoFeeder,
			Message: "no module is wired into the target",
			Module:  target,
		}
	case 1:
	default:
		return nil, &AnalysisError{
			Code:    ErrCodeMultipleFeeders,
			Message: fmt.Sprintf("target has %d feeders: %v", len(feeders), feeders),
			Module:  target,
		}
	}
	feeder := feeders[0]

	components := m.SCCs()
	for _, name := range []string{target, feeder} {
		if !IsSingleton(components, name) {
			return nil, &AnalysisError{
				Code:    ErrCodeNotSingleton,
				Message: "module is part of a cycle",
				Module:  name,
			}
		}
	}

	return &Topology{
		Target:  target,
		Feeder:  feeder,
		Sources: m.Inputs(feeder),
	}, nil
}

// IsSingleton reports whether components contains name as a component of
// its own.
func IsSingleton(components [][]string, name string) bool {
	return slices.ContainsFunc(components, func(c []string) bool {
		return len(c) == 1 && c[0] == name
	})
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM combines periods into the first press count at which all of them
// align. Periods must be positive; the result must fit in uint64.
func LCM(periods ...uint64) (uint64, error) {
	if len(periods) == 0 {
		return 0, &AnalysisError{Code: ErrCodeInvalidPeriod, Message: "no periods given"}
	}

	result := uint64(1)
	for _, p := range periods {
		if p == 0 {
			return 0, &AnalysisError{Code: ErrCodeInvalidPeriod, Message: "period must be positive"}
		}
		step := p / GCD(result, p)
		hi, lo := bits.Mul64(result, step)
		if hi != 0 {
			return 0, &AnalysisError{
				Code:    ErrCodeOverflow,
				Message: fmt.Sprintf("lcm of %v does not fit in 64 bits", periods),
			}
		}
		result = lo
	}
	return result, nil
}
