// Package ir provides the intermediate representation of a pulse network.
//
// A network is the parsed form of a module wiring definition: an ordered
// list of modules, each with a kind and an ordered list of destinations.
// Declaration order is part of the representation because it fixes the
// input slot order of every Nand module and therefore observable behavior.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Declaration order is preserved everywhere (never derived from maps)
//   - Destinations may name modules that are not declared (pure sinks)
//   - All JSON tags use snake_case
//   - Canonical JSON (RFC 8785) is the only serialization used for hashing
package ir
