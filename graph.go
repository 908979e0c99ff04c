package main

// Node is a point of interest in the visibility graph: an obstacle corner
// or a free-standing start/goal marker. IDs are assigned monotonically by
// the workspace and never reused within a session.
type Node struct {
	ID         int   `json:"id"`
	Point      Point `json:"point"`
	ParentWall int   `json:"parentWall"` // obstacle id, or -1 for free-standing nodes
}

// Edge is one half of a symmetric pair: every visible node pair emits both
// directions with equal weight
type Edge struct {
	From   Node    `json:"from"`
	To     Node    `json:"to"`
	Weight float64 `json:"weight"` // Euclidean distance
}

// Neighbor is an adjacency entry: a reachable node and the edge weight
type Neighbor struct {
	Node   Node    `json:"node"`
	Weight float64 `json:"weight"`
}

// Graph maps node ids to their neighbors, in edge emission order. It is a
// disposable snapshot: built once per request, handed to the search,
// discarded on the next build.
type Graph struct {
	Adjacency map[int][]Neighbor
}

// BuildAdjacency groups edges by source node id, preserving emission order
func BuildAdjacency(edges []Edge) *Graph {
	graph := &Graph{
		Adjacency: make(map[int][]Neighbor),
	}
	for _, e := range edges {
		graph.Adjacency[e.From.ID] = append(graph.Adjacency[e.From.ID], Neighbor{
			Node:   e.To,
			Weight: e.Weight,
		})
	}
	return graph
}

// Neighbors returns the adjacency list for a node id. A node with no
// visible neighbor yields an empty list, not an error.
func (g *Graph) Neighbors(id int) []Neighbor {
	return g.Adjacency[id]
}
