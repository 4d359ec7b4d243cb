// Package engine implements the pulse network simulator.
//
// A Machine owns every Module of a network together with the derived
// input table (which modules are wired into each module). Pulses travel as
// (pulse, source, destination) triples through a single FIFO queue that is
// drained to quiescence on every external trigger.
//
// ARCHITECTURE:
//
// Single Queue Drain:
// SendPulse seeds the queue with one triple from the button and processes
// triples one at a time until the queue is empty. This ensures:
//   - Breadth-first order: every module at distance k from the trigger
//     receives its pulses before any module at distance k+1
//   - Destinations are fed in declared order
//   - A Nand sees "simultaneous" inputs exactly as the queue order dictates
//
// Any other ordering changes observable results, so the queue is the
// correctness mechanism, not an implementation detail.
//
// Module Isolation:
// Modules never read each other's state. The only interaction is the
// triple, and peers are referenced by name through the Machine.
//
// Topology:
// The input table is computed once from declaration order at construction
// and never changes. It fixes the slot index of every Nand input.
//
// Reentrancy:
// The Machine is single-threaded and must not be reentered while SendPulse
// is draining (for example from an Observer). A nested call panics with an
// InvariantError.
//
// Termination of the drain is assumed, not enforced: a feedback topology
// that never settles makes SendPulse run forever.
package engine
