package engine

import "sort"

// Graph is the conflict graph built from a dense, 0-based event list. It
// keeps both a dense adjacency matrix (O(1) membership test, and itself an
// export artifact) and a sorted per-vertex neighbor list (for coloring
// traversal). Built once by buildGraph; never mutated afterward.
type Graph struct {
	events    []Event
	matrix    [][]bool
	neighbors [][]int
	edges     int
}

// buildGraph constructs the conflict graph of events. Complexity is O(n^2),
// which is intentional: the matrix is small (n in the dozens to low
// hundreds) and is itself an output artifact.
func buildGraph(events []Event) *Graph {
	n := len(events)
	g := &Graph{
		events:    events,
		matrix:    make([][]bool, n),
		neighbors: make([][]int, n),
	}
	for i := range g.matrix {
		g.matrix[i] = make([]bool, n)
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if events[u].Conflicts(events[v]) {
				g.matrix[u][v] = true
				g.matrix[v][u] = true
				g.edges++
			}
		}
	}
	for v := 0; v < n; v++ {
		for u := 0; u < n; u++ {
			if g.matrix[v][u] {
				g.neighbors[v] = append(g.neighbors[v], u)
			}
		}
		sort.Ints(g.neighbors[v])
	}
	return g
}

// Order returns the number of vertices (events) in the graph.
func (g *Graph) Order() int { return len(g.events) }

// Edges returns the total number of conflict edges.
func (g *Graph) Edges() int { return g.edges }

// Degree returns the number of neighbors of vertex v.
func (g *Graph) Degree(v int) int { return len(g.neighbors[v]) }

// Neighbors returns the ascending-sorted neighbor list of vertex v. Callers
// must not mutate the returned slice.
func (g *Graph) Neighbors(v int) []int { return g.neighbors[v] }

// HasEdge reports whether u and v conflict, in O(1).
func (g *Graph) HasEdge(u, v int) bool { return g.matrix[u][v] }

// MaxDegree returns the maximum vertex degree in the graph (0 if empty).
func (g *Graph) MaxDegree() int {
	max := 0
	for v := range g.events {
		if d := g.Degree(v); d > max {
			max = d
		}
	}
	return max
}

// AdjacencyMatrix returns the dense 0/1 matrix verbatim, suitable for
// CSV export. The returned slices are defensive copies.
func (g *Graph) AdjacencyMatrix() [][]int {
	n := g.Order()
	out := make([][]int, n)
	for i := 0; i < n; i++ {
		out[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if g.matrix[i][j] {
				out[i][j] = 1
			}
		}
	}
	return out
}

// ConflictEdge is one edge of the conflict graph together with the reason
// the two events conflict.
type ConflictEdge struct {
	Event1 int
	Event2 int
	Reason string
}

// ConflictEdges enumerates every edge (u, v) with u < v in ascending order.
func (g *Graph) ConflictEdges() []ConflictEdge {
	n := g.Order()
	edges := make([]ConflictEdge, 0, g.edges)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if g.matrix[u][v] {
				edges = append(edges, ConflictEdge{
					Event1: u,
					Event2: v,
					Reason: conflictReason(g.events[u], g.events[v]),
				})
			}
		}
	}
	return edges
}
