// Package graph provides graph algorithms generic over the vertex type.
package graph

// StronglyConnected finds the strongly connected components of a directed
// graph using Tarjan's algorithm.
//
// vertices lists the starting points in the order they are tried; vertices
// reachable through neighbors but absent from the list are discovered and
// reported as well. neighbors returns the successors of a vertex in a fixed
// order and must not mutate shared state.
//
// Every discovered vertex appears in exactly one component. Components are
// emitted in reverse topological order (a component is emitted only after
// every component reachable from it), and members of a component are listed
// in discovery order. A vertex with a self-loop and no other cycle is still
// reported as a singleton; callers that need to tell it apart from an
// acyclic vertex must check for the self edge themselves.
//
// The traversal keeps an explicit work stack of frames instead of recursing,
// so graph depth is bounded by memory rather than the goroutine stack. The
// low-link folds happen in the same order as in the recursive formulation.
func StronglyConnected[V comparable](vertices []V, neighbors func(V) []V) [][]V {
	t := &tarjan[V]{
		neighbors: neighbors,
		index:     make(map[V]int),
		lowlink:   make(map[V]int),
		onStack:   make(map[V]bool),
	}
	for _, v := range vertices {
		if _, seen := t.index[v]; !seen {
			t.run(v)
		}
	}
	return t.components
}

// frame is one pending vertex on the work stack.
type frame[V comparable] struct {
	v     V
	succ  []V
	next  int // position of the next successor to examine
	depth int // height of the active stack when v was pushed
}

type tarjan[V comparable] struct {
	neighbors  func(V) []V
	counter    int
	index      map[V]int
	lowlink    map[V]int
	onStack    map[V]bool
	stack      []V
	work       []frame[V]
	components [][]V
}

// visit assigns v its discovery index and pushes it on both stacks.
func (t *tarjan[V]) visit(v V) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.work = append(t.work, frame[V]{v: v, succ: t.neighbors(v), depth: len(t.stack)})
	t.stack = append(t.stack, v)
	t.onStack[v] = true
}

func (t *tarjan[V]) run(root V) {
	t.visit(root)
	for len(t.work) > 0 {
		top := &t.work[len(t.work)-1]
		v := top.v

		if top.next < len(top.succ) {
			w := top.succ[top.next]
			top.next++
			if _, seen := t.index[w]; !seen {
				// top is invalid after visit appends to t.work.
				t.visit(w)
			} else if t.onStack[w] {
				t.lowlink[v] = min(t.lowlink[v], t.index[w])
			}
			continue
		}

		// All successors examined: v is finished.
		depth := top.depth
		t.work = t.work[:len(t.work)-1]

		if t.lowlink[v] == t.index[v] {
			component := make([]V, len(t.stack)-depth)
			copy(component, t.stack[depth:])
			for _, w := range component {
				t.onStack[w] = false
			}
			clear(t.stack[depth:])
			t.stack = t.stack[:depth]
			t.components = append(t.components, component)
		}

		if len(t.work) > 0 {
			parent := t.work[len(t.work)-1].v
			t.lowlink[parent] = min(t.lowlink[parent], t.lowlink[v])
		}
	}
}

// HasSelfLoop reports whether v lists itself among its neighbors.
func HasSelfLoop[V comparable](v V, neighbors func(V) []V) bool {
	for _, w := range neighbors(v) {
		if w == v {
			return true
		}
	}
	return false
}
