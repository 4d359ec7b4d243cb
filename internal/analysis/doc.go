// Package analysis runs whole-network analyses on top of the engine.
//
// Two kinds of analysis live here:
//
// Driven simulation:
// PressButton replays the button a fixed number of times against one
// Machine and sums the per-press pulse counts. State carries over between
// presses and nothing is skipped or shortcut.
//
// Structural period analysis:
// Finding the first press on which a sink such as rx receives Low is not
// automated. InspectTarget checks the precondition the manual procedure
// relies on (the target and its single feeder are singleton components of
// the SCC decomposition), Probe records when each feeder input sends High,
// and LCM combines the periods a human reads off those recordings.
//
// LIMITATION: combining periods with LCM assumes the High pulses of every
// input overlap within the press at which all periods align. Nothing here
// proves that for an arbitrary network.
package analysis
