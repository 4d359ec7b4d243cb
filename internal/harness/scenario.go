package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/pulsenet/internal/ir"
)

// Scenario defines a pulse network test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Network is an inline definition in the text format.
	Network string `yaml:"network,omitempty"`

	// NetworkFile is a path to a text or .cue definition.
	// Relative paths are resolved against the scenario file location.
	NetworkFile string `yaml:"network_file,omitempty"`

	// Entry is the module receiving each press. Defaults to broadcaster.
	Entry string `yaml:"entry,omitempty"`

	// Pulse is the level of each press. Defaults to low.
	Pulse string `yaml:"pulse,omitempty"`

	// Presses is how many times the button is pressed.
	Presses int `yaml:"presses"`

	// TracePresses limits trace recording to the first N presses.
	// Zero records nothing.
	TracePresses int `yaml:"trace_presses,omitempty"`

	// Session is an optional fixed session token for the trace.
	// If empty, defaults to "test-session-default".
	Session string `yaml:"session,omitempty"`

	// Expect specifies the expected pulse totals.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Assertions validate final state and structure.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies expected totals. Unset fields are not checked.
type ExpectClause struct {
	Low     *uint64 `yaml:"low,omitempty"`
	High    *uint64 `yaml:"high,omitempty"`
	Product *uint64 `yaml:"product,omitempty"`
}

// Assertion validates final state, structure or trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_state": module level after the last press
	// - "component": members form exactly one SCC
	// - "singleton": module is an SCC of its own
	// - "feeder": module is the sole acyclic feeder of target
	// - "trace_contains": line appears in the trace
	// - "trace_count": line appears exactly Count times
	Type string `yaml:"type"`

	// Module is the module under test (final_state, singleton, feeder).
	Module string `yaml:"module,omitempty"`

	// Pulse is the expected level (final_state).
	Pulse string `yaml:"pulse,omitempty"`

	// Members are the expected component members (component).
	// Order is not significant.
	Members []string `yaml:"members,omitempty"`

	// Target is the fed module (feeder).
	Target string `yaml:"target,omitempty"`

	// Line is a delivery line such as "a -high-> inv" (trace_*).
	Line string `yaml:"line,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalState    = "final_state"
	AssertComponent     = "component"
	AssertSingleton     = "singleton"
	AssertFeeder        = "feeder"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// network_file is resolved relative to the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving network_file relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.NetworkFile != "" && !filepath.IsAbs(scenario.NetworkFile) && basePath != "" {
		scenario.NetworkFile = filepath.Join(basePath, scenario.NetworkFile)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if scenario.NetworkFile != "" {
		if _, err := os.Stat(scenario.NetworkFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: network file not found: %s", scenario.NetworkFile)
		}
	}

	return scenario, nil
}

// ParseScenario decodes scenario YAML without resolving or checking files.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Network == "" && s.NetworkFile == "":
		return fmt.Errorf("one of network or network_file is required")
	case s.Network != "" && s.NetworkFile != "":
		return fmt.Errorf("network and network_file are mutually exclusive")
	}

	if s.Presses < 0 {
		return fmt.Errorf("presses must be non-negative")
	}
	if s.TracePresses < 0 || s.TracePresses > s.Presses {
		return fmt.Errorf("trace_presses must be between 0 and presses (%d)", s.Presses)
	}

	if s.Pulse != "" {
		if _, err := ir.ParsePulse(s.Pulse); err != nil {
			return fmt.Errorf("pulse: %w", err)
		}
	}

	if s.Expect == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions is required")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalState:
		if a.Module == "" {
			return fmt.Errorf("assertions[%d]: module is required for final_state", index)
		}
		if _, err := ir.ParsePulse(a.Pulse); err != nil {
			return fmt.Errorf("assertions[%d]: pulse: %w", index, err)
		}
	case AssertComponent:
		if len(a.Members) == 0 {
			return fmt.Errorf("assertions[%d]: members list is required for component", index)
		}
	case AssertSingleton:
		if a.Module == "" {
			return fmt.Errorf("assertions[%d]: module is required for singleton", index)
		}
	case AssertFeeder:
		if a.Target == "" || a.Module == "" {
			return fmt.Errorf("assertions[%d]: target and module are required for feeder", index)
		}
	case AssertTraceContains:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
