package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/pulsenet/internal/graph"
	"github.com/roach88/pulsenet/internal/ir"
)

// CycleWarning represents a feedback loop in the module wiring.
//
// Cycles are warnings, not errors: counters and inverters are built from
// them.
type CycleWarning struct {
	Path    []string `json:"path"`    // Cycle path: ["a", "inv", "a"]
	Message string   `json:"message"` // Human-readable description
	Level   string   `json:"level"`   // "warning" or "info"
}

// AnalyzeCycles reports every feedback loop in the destination graph.
//
// The algorithm:
//  1. Decompose the destination graph into strongly connected components
//  2. Report each component with more than one module as a warning
//  3. Report each singleton with a self-loop as info; the decomposition
//     alone cannot tell a self-loop from an acyclic module
//
// An acyclic network returns an empty warning list.
func AnalyzeCycles(n ir.Network) []CycleWarning {
	warnings := []CycleWarning{}
	for _, scc := range graph.StronglyConnected(n.Names(), n.Neighbors) {
		switch {
		case len(scc) > 1:
			path := reconstructCyclePath(scc, n)
			warnings = append(warnings, CycleWarning{
				Path:    path,
				Message: fmt.Sprintf("Feedback loop detected: %s", strings.Join(path, " → ")),
				Level:   "warning",
			})
		case graph.HasSelfLoop(scc[0], n.Neighbors):
			name := scc[0]
			warnings = append(warnings, CycleWarning{
				Path:    []string{name, name},
				Message: fmt.Sprintf("Self-wired module detected: %s → %s", name, name),
				Level:   "info",
			})
		}
	}
	return warnings
}

// reconstructCyclePath builds a closed path through an SCC.
//
// Breadth-first search from the first member, restricted to the component,
// until an edge leads back to it. Every member reaches every other, so the
// search always closes; the path returned is a shortest cycle through start.
func reconstructCyclePath(scc []string, n ir.Network) []string {
	if len(scc) == 0 {
		return []string{}
	}

	sccSet := make(map[string]bool, len(scc))
	for _, node := range scc {
		sccSet[node] = true
	}

	start := scc[0]
	parent := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range n.Neighbors(current) {
			if neighbor == start {
				return closePath(parent, current, start)
			}
			if !sccSet[neighbor] {
				continue
			}
			if _, seen := parent[neighbor]; seen {
				continue
			}
			parent[neighbor] = current
			queue = append(queue, neighbor)
		}
	}

	return []string{start}
}

// closePath walks parent links from last back to start and appends start.
func closePath(parent map[string]string, last, start string) []string {
	var rev []string
	for node := last; node != start; node = parent[node] {
		rev = append(rev, node)
	}
	path := make([]string, 0, len(rev)+2)
	path = append(path, start)
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return append(path, start)
}
