package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/pulsenet/internal/analysis"
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
)

// maxTraceContext bounds how many trace lines an AssertionError prints.
const maxTraceContext = 20

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Trace    []string // Recorded trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nTrace:\n")
		for i, line := range e.Trace {
			if i == maxTraceContext {
				fmt.Fprintf(&buf, "  ... %d more\n", len(e.Trace)-maxTraceContext)
				break
			}
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, line)
		}
	}

	return buf.String()
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Machine *engine.Machine

	components [][]string
}

// sccs decomposes the machine once per evaluation.
func (c *AssertionContext) sccs() [][]string {
	if c.components == nil {
		c.components = c.Machine.SCCs()
	}
	return c.components
}

// Level returns the pulse a module's state stands for: a FlipFlop that is
// on is High; a Nand is Low only when every remembered pulse is High.
func Level(s engine.ModuleState) (ir.Pulse, bool) {
	switch s.Kind {
	case ir.KindFlipFlop:
		return s.On, true
	case ir.KindNand:
		if !slices.Contains(s.Memory, ir.Low) {
			return ir.Low, true
		}
		return ir.High, true
	default:
		return ir.Low, false
	}
}

// assertFinalState checks a module's level after the last press.
func assertFinalState(m *engine.Machine, a Assertion) error {
	want, err := ir.ParsePulse(a.Pulse)
	if err != nil {
		return err
	}

	state, ok := m.State(a.Module)
	if !ok {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("module %s at %s", a.Module, want),
			Actual:   "module not declared",
		}
	}
	got, ok := Level(state)
	if !ok {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("module %s at %s", a.Module, want),
			Actual:   fmt.Sprintf("%s modules hold no state", state.Kind),
		}
	}
	if got != want {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("module %s at %s", a.Module, want),
			Actual:   fmt.Sprintf("module %s at %s", a.Module, got),
		}
	}
	return nil
}

// assertComponent checks that the members form exactly one SCC.
func assertComponent(components [][]string, a Assertion) error {
	want := slices.Sorted(slices.Values(a.Members))

	for _, c := range components {
		if !slices.Contains(c, a.Members[0]) {
			continue
		}
		got := slices.Sorted(slices.Values(c))
		if slices.Equal(got, want) {
			return nil
		}
		return &AssertionError{
			Type:     AssertComponent,
			Expected: fmt.Sprintf("component %v", want),
			Actual:   fmt.Sprintf("component %v", got),
		}
	}

	return &AssertionError{
		Type:     AssertComponent,
		Expected: fmt.Sprintf("component %v", want),
		Actual:   fmt.Sprintf("%s is not part of the network", a.Members[0]),
	}
}

// assertSingleton checks that a module sits on no cycle.
func assertSingleton(components [][]string, a Assertion) error {
	if analysis.IsSingleton(components, a.Module) {
		return nil
	}
	actual := "not part of the network"
	for _, c := range components {
		if slices.Contains(c, a.Module) {
			actual = fmt.Sprintf("component %v", c)
		}
	}
	return &AssertionError{
		Type:     AssertSingleton,
		Expected: fmt.Sprintf("%s is a component of its own", a.Module),
		Actual:   actual,
	}
}

// assertFeeder checks the structural precondition of the period analysis.
func assertFeeder(m *engine.Machine, a Assertion) error {
	topo, err := analysis.InspectTarget(m, a.Target)
	if err != nil {
		return &AssertionError{
			Type:     AssertFeeder,
			Expected: fmt.Sprintf("%s is the sole acyclic feeder of %s", a.Module, a.Target),
			Actual:   err.Error(),
		}
	}
	if topo.Feeder != a.Module {
		return &AssertionError{
			Type:     AssertFeeder,
			Expected: fmt.Sprintf("%s is the sole acyclic feeder of %s", a.Module, a.Target),
			Actual:   fmt.Sprintf("feeder is %s", topo.Feeder),
		}
	}
	return nil
}

// assertTraceContains checks that a delivery line was recorded.
func assertTraceContains(trace []string, a Assertion) error {
	if slices.Contains(trace, a.Line) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("line %q", a.Line),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceCount checks how often a delivery line was recorded.
func assertTraceCount(trace []string, a Assertion) error {
	count := 0
	for _, line := range trace {
		if line == a.Line {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("line %q exactly %d times", a.Line, a.Count),
		Actual:   fmt.Sprintf("found %d times", count),
		Trace:    trace,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides the machine for state and structure checks.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState, AssertComponent, AssertSingleton, AssertFeeder:
			if actx == nil || actx.Machine == nil {
				err = fmt.Errorf("assertion[%d]: %s requires a machine", i, assertion.Type)
				break
			}
			switch assertion.Type {
			case AssertFinalState:
				err = assertFinalState(actx.Machine, assertion)
			case AssertComponent:
				err = assertComponent(actx.sccs(), assertion)
			case AssertSingleton:
				err = assertSingleton(actx.sccs(), assertion)
			case AssertFeeder:
				err = assertFeeder(actx.Machine, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
