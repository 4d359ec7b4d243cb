// Package harness provides scenario testing for pulse networks.
//
// The harness loads a network, presses the button a fixed number of times
// against a fresh machine, and validates pulse totals, final module state
// and the structure of the wiring.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	network: |
//	  broadcaster -> a
//	  %a -> inv
//	  &inv -> a
//	presses: 1000
//	trace_presses: 1
//	expect:
//	  low: 4000
//	  high: 2000
//	  product: 8000000
//	assertions:
//	  - type: final_state
//	    module: a
//	    pulse: low
//	  - type: component
//	    members: [a, inv]
//
// network_file may replace network; it is resolved relative to the
// scenario file and may be a .cue definition.
//
// # Assertion Types
//
//   - final_state: a module's level after the last press (FlipFlop on is
//     high; a Nand is low only when every remembered pulse is high)
//   - component: the listed modules form exactly one strongly connected
//     component
//   - singleton: the module is a component of its own
//   - feeder: the module is the sole, acyclic feeder of the target
//   - trace_contains: a delivery line appears in the recorded trace
//   - trace_count: a delivery line appears exactly N times
//
// # Deterministic Testing
//
// Every scenario runs on a fresh machine with a fixed session token
// (scenario.session or "test-session-default"), so the recorded trace is
// byte-identical across runs and suitable for golden comparison.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/counter.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, err := range result.Errors {
//	        log.Println(err)
//	    }
//	}
package harness
