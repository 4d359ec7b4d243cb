package testutil

import "github.com/roach88/pulsenet/internal/ir"

// Sample networks shared by package tests. Each call returns a fresh value.

// InverterLoopText is the text form of InverterLoop.
const InverterLoopText = `broadcaster -> a
%a -> inv
&inv -> a
`

// InverterLoop is a flip-flop and a single-input Nand wired into a
// two-module cycle. Every press delivers 4 Low and 2 High pulses and
// leaves a off.
func InverterLoop() ir.Network {
	return ir.Network{Modules: []ir.ModuleSpec{
		{Name: "broadcaster", Kind: ir.KindBroadcast, Destinations: []string{"a"}},
		{Name: "a", Kind: ir.KindFlipFlop, Destinations: []string{"inv"}},
		{Name: "inv", Kind: ir.KindNand, Destinations: []string{"a"}},
	}}
}

// CounterText is the text form of Counter.
const CounterText = `broadcaster -> a, b, c
%a -> b
%b -> c
%c -> inv
&inv -> a
`

// Counter is three chained flip-flops closed by an inverter. Every press
// delivers 8 Low and 4 High pulses; 1000 presses give 8000 × 4000.
func Counter() ir.Network {
	return ir.Network{Modules: []ir.ModuleSpec{
		{Name: "broadcaster", Kind: ir.KindBroadcast, Destinations: []string{"a", "b", "c"}},
		{Name: "a", Kind: ir.KindFlipFlop, Destinations: []string{"b"}},
		{Name: "b", Kind: ir.KindFlipFlop, Destinations: []string{"c"}},
		{Name: "c", Kind: ir.KindFlipFlop, Destinations: []string{"inv"}},
		{Name: "inv", Kind: ir.KindNand, Destinations: []string{"a"}},
	}}
}

// ConjunctionText is the text form of Conjunction.
const ConjunctionText = `broadcaster -> a
%a -> inv, con
&inv -> b
%b -> con
&con -> output
`

// Conjunction feeds a two-input Nand from two flip-flops and ends in the
// unbacked sink "output". It repeats every 4 presses; 1000 presses give
// 4250 Low and 2750 High pulses.
func Conjunction() ir.Network {
	return ir.Network{Modules: []ir.ModuleSpec{
		{Name: "broadcaster", Kind: ir.KindBroadcast, Destinations: []string{"a"}},
		{Name: "a", Kind: ir.KindFlipFlop, Destinations: []string{"inv", "con"}},
		{Name: "inv", Kind: ir.KindNand, Destinations: []string{"b"}},
		{Name: "b", Kind: ir.KindFlipFlop, Destinations: []string{"con"}},
		{Name: "con", Kind: ir.KindNand, Destinations: []string{"output"}},
	}}
}

// FeederText is the text form of Feeder.
const FeederText = `broadcaster -> ca, cb
%ca -> ia
&ia -> dr
%cb -> cb2
%cb2 -> ib
&ib -> dr
&dr -> rx
`

// Feeder drives the sink rx through a single Nand dr whose two inputs send
// High on every 2nd press (ia) and every 4th press (ib). rx first receives
// Low on press 4, the LCM of the two periods.
func Feeder() ir.Network {
	return ir.Network{Modules: []ir.ModuleSpec{
		{Name: "broadcaster", Kind: ir.KindBroadcast, Destinations: []string{"ca", "cb"}},
		{Name: "ca", Kind: ir.KindFlipFlop, Destinations: []string{"ia"}},
		{Name: "ia", Kind: ir.KindNand, Destinations: []string{"dr"}},
		{Name: "cb", Kind: ir.KindFlipFlop, Destinations: []string{"cb2"}},
		{Name: "cb2", Kind: ir.KindFlipFlop, Destinations: []string{"ib"}},
		{Name: "ib", Kind: ir.KindNand, Destinations: []string{"dr"}},
		{Name: "dr", Kind: ir.KindNand, Destinations: []string{"rx"}},
	}}
}
