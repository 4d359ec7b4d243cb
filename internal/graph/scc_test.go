package graph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adjacency[V comparable](edges map[V][]V) func(V) []V {
	return func(v V) []V { return edges[v] }
}

// assertPartition checks every vertex appears in exactly one component.
func assertPartition[V comparable](t *testing.T, components [][]V, vertices []V) {
	t.Helper()
	seen := make(map[V]int)
	for _, c := range components {
		require.NotEmpty(t, c, "components must be non-empty")
		for _, v := range c {
			seen[v]++
		}
	}
	for _, v := range vertices {
		assert.Equal(t, 1, seen[v], "vertex %v must appear exactly once", v)
	}
	assert.Len(t, seen, len(vertices))
}

func TestStronglyConnected_CycleAndIsolated(t *testing.T) {
	edges := map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	}
	vertices := []string{"A", "B", "C", "D"}

	components := StronglyConnected(vertices, adjacency(edges))

	require.Len(t, components, 2)
	assertPartition(t, components, vertices)

	var sizes []int
	for _, c := range components {
		sizes = append(sizes, len(c))
		if len(c) == 3 {
			assert.ElementsMatch(t, []string{"A", "B", "C"}, c)
		} else {
			assert.Equal(t, []string{"D"}, c)
		}
	}
	assert.ElementsMatch(t, []int{3, 1}, sizes)
}

func TestStronglyConnected_Acyclic(t *testing.T) {
	edges := map[int][]int{
		0: {1, 2},
		1: {3},
		2: {3},
		3: {4},
	}
	vertices := []int{0, 1, 2, 3, 4}

	components := StronglyConnected(vertices, adjacency(edges))

	require.Len(t, components, len(vertices))
	for _, c := range components {
		assert.Len(t, c, 1)
	}
	assertPartition(t, components, vertices)
}

func TestStronglyConnected_ReverseTopologicalOrder(t *testing.T) {
	edges := map[string][]string{
		"src": {"mid"},
		"mid": {"sink"},
	}

	components := StronglyConnected([]string{"src", "mid", "sink"}, adjacency(edges))

	assert.Equal(t, [][]string{{"sink"}, {"mid"}, {"src"}}, components)
}

func TestStronglyConnected_DiscoveryOrderWithinComponent(t *testing.T) {
	edges := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}

	components := StronglyConnected([]string{"a"}, adjacency(edges))

	assert.Equal(t, [][]string{{"a", "b", "c"}}, components)
}

func TestStronglyConnected_SelfLoopIsSingleton(t *testing.T) {
	edges := map[string][]string{"x": {"x"}}
	neighbors := adjacency(edges)

	components := StronglyConnected([]string{"x"}, neighbors)

	assert.Equal(t, [][]string{{"x"}}, components)
	assert.True(t, HasSelfLoop("x", neighbors))
	assert.False(t, HasSelfLoop("y", neighbors))
}

func TestStronglyConnected_UnlistedVerticesDiscovered(t *testing.T) {
	edges := map[string][]string{
		"broadcaster": {"a"},
		"a":           {"inv", "out"},
		"inv":         {"a"},
	}

	components := StronglyConnected([]string{"broadcaster", "a", "inv"}, adjacency(edges))

	assertPartition(t, components, []string{"broadcaster", "a", "inv", "out"})
	assert.Contains(t, components, []string{"out"})
	assert.Contains(t, components, []string{"a", "inv"})
}

func TestStronglyConnected_Empty(t *testing.T) {
	components := StronglyConnected[string](nil, adjacency(map[string][]string{}))
	assert.Empty(t, components)
}

func TestStronglyConnected_DeepChain(t *testing.T) {
	// A single long cycle would overflow a naive recursive implementation
	// with small stacks; the work stack handles it.
	const n = 200_000
	neighbors := func(v int) []int { return []int{(v + 1) % n} }

	components := StronglyConnected([]int{0}, neighbors)

	require.Len(t, components, 1)
	assert.Len(t, components[0], n)
}

func TestStronglyConnected_NestedCycles(t *testing.T) {
	// Two cycles joined by a one-way edge plus a bridge back.
	edges := map[int][]int{
		1: {2},
		2: {3, 4},
		3: {1},
		4: {5},
		5: {6},
		6: {4, 7},
		7: {},
	}
	vertices := []int{1, 2, 3, 4, 5, 6, 7}

	components := StronglyConnected(vertices, adjacency(edges))

	require.Len(t, components, 3)
	assert.Equal(t, []int{7}, components[0])
	assert.ElementsMatch(t, []int{4, 5, 6}, components[1])
	assert.ElementsMatch(t, []int{1, 2, 3}, components[2])
}

// reachable returns the set of vertices reachable from v (including v).
func reachable(v int, edges map[int][]int) map[int]bool {
	seen := map[int]bool{v: true}
	queue := []int{v}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, w := range edges[u] {
			if !seen[w] {
				seen[w] = true
				queue = append(queue, w)
			}
		}
	}
	return seen
}

func TestStronglyConnected_MatchesMutualReachability(t *testing.T) {
	rng := rand.New(rand.NewSource(20))

	for round := 0; round < 50; round++ {
		n := 2 + rng.Intn(15)
		edges := make(map[int][]int)
		vertices := make([]int, n)
		for v := 0; v < n; v++ {
			vertices[v] = v
			for w := 0; w < n; w++ {
				if rng.Intn(5) == 0 {
					edges[v] = append(edges[v], w)
				}
			}
		}

		components := StronglyConnected(vertices, adjacency(edges))
		assertPartition(t, components, vertices)

		reach := make([]map[int]bool, n)
		for v := range vertices {
			reach[v] = reachable(v, edges)
		}

		componentOf := make(map[int]int)
		for i, c := range components {
			for _, v := range c {
				componentOf[v] = i
			}
		}
		for v := 0; v < n; v++ {
			for w := 0; w < n; w++ {
				mutual := reach[v][w] && reach[w][v]
				same := componentOf[v] == componentOf[w]
				assert.Equal(t, mutual, same, "round %d: vertices %d and %d", round, v, w)
			}
		}

		// Reverse topological order: no edge from an earlier component to a later one.
		for v, succ := range edges {
			for _, w := range succ {
				assert.GreaterOrEqual(t, componentOf[v], componentOf[w],
					"round %d: edge %d->%d points to a later component", round, v, w)
			}
		}
	}
}
