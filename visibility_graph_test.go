package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cornerNodes(o Obstacle, firstID int) []Node {
	nodes := make([]Node, 0, 4)
	for i, c := range o.Corners() {
		nodes = append(nodes, Node{ID: firstID + i, Point: c, ParentWall: o.ID})
	}
	return nodes
}

func TestBuildVisibilityGraphSameWallPruning(t *testing.T) {
	o := Obstacle{ID: 0, X: 0, Y: 0, Width: 10, Height: 10}
	nodes := cornerNodes(o, 0)

	edges, graph := BuildVisibilityGraph([]Obstacle{o}, nodes, nil)

	// Four sides, both directions; the two diagonals are pruned
	assert.Len(t, edges, 8)

	for _, e := range edges {
		assert.True(t, axisAligned(e.From.Point, e.To.Point),
			"same-wall edge %d->%d must be axis-aligned", e.From.ID, e.To.ID)
	}

	// Corners 0 and 2 are diagonal: never connected
	for _, nb := range graph.Neighbors(0) {
		assert.NotEqual(t, 2, nb.Node.ID)
	}
}

func TestBuildVisibilityGraphEdgeSymmetry(t *testing.T) {
	obstacles := []Obstacle{
		{ID: 0, X: 100, Y: 100, Width: 50, Height: 50},
		{ID: 1, X: 250, Y: 50, Width: 40, Height: 200},
	}
	nodes := append(cornerNodes(obstacles[0], 0), cornerNodes(obstacles[1], 4)...)
	nodes = append(nodes,
		Node{ID: 8, Point: Point{0, 0}, ParentWall: -1},
		Node{ID: 9, Point: Point{400, 300}, ParentWall: -1},
	)

	edges, _ := BuildVisibilityGraph(obstacles, nodes, nil)
	require.NotEmpty(t, edges)

	type pair struct{ from, to int }
	weights := make(map[pair]float64)
	for _, e := range edges {
		weights[pair{e.From.ID, e.To.ID}] = e.Weight
	}

	for _, e := range edges {
		reverse, ok := weights[pair{e.To.ID, e.From.ID}]
		require.True(t, ok, "edge %d->%d has no reverse", e.From.ID, e.To.ID)
		assert.Equal(t, e.Weight, reverse)
		assert.Equal(t, e.From.Point.Distance(e.To.Point), e.Weight)
	}
}

func TestBuildVisibilityGraphBlocking(t *testing.T) {
	// Two free-standing nodes on opposite sides of an obstacle must not
	// be directly connected.
	o := Obstacle{ID: 0, X: 100, Y: 100, Width: 50, Height: 50}
	nodes := append(cornerNodes(o, 0),
		Node{ID: 4, Point: Point{0, 125}, ParentWall: -1},
		Node{ID: 5, Point: Point{200, 125}, ParentWall: -1},
	)

	_, graph := BuildVisibilityGraph([]Obstacle{o}, nodes, nil)

	for _, nb := range graph.Neighbors(4) {
		assert.NotEqual(t, 5, nb.Node.ID, "segment through the obstacle must be blocked")
	}
	// But both see the corners facing them
	assert.NotEmpty(t, graph.Neighbors(4))
	assert.NotEmpty(t, graph.Neighbors(5))
}

func TestBuildVisibilityGraphIdempotent(t *testing.T) {
	obstacles := []Obstacle{
		{ID: 0, X: 50, Y: 50, Width: 30, Height: 30},
		{ID: 1, X: 150, Y: 20, Width: 60, Height: 10},
	}
	nodes := append(cornerNodes(obstacles[0], 0), cornerNodes(obstacles[1], 4)...)

	first, _ := BuildVisibilityGraph(obstacles, nodes, nil)
	second, _ := BuildVisibilityGraph(obstacles, nodes, nil)

	assert.Equal(t, first, second)
}

func TestSegmentClearMatchesIsVisible(t *testing.T) {
	// The spatial index narrows candidates but must never change the
	// answer of the full scan.
	obstacles := []Obstacle{
		{ID: 0, X: 10, Y: 10, Width: 20, Height: 30},
		{ID: 1, X: 100, Y: 0, Width: 5, Height: 200},
		{ID: 2, X: 40, Y: 80, Width: 90, Height: 15},
		{ID: 3, X: 60, Y: 60, Width: 0, Height: 40}, // degenerate
	}
	index := NewSpatialIndex(obstacles)

	points := []Point{
		{0, 0}, {5, 5}, {10, 10}, {30, 40}, {50, 50},
		{99, 99}, {105, 100}, {150, 87}, {200, 200}, {-20, 130},
	}

	for i := 0; i < len(points); i++ {
		for j := i; j < len(points); j++ {
			a, b := points[i], points[j]
			assert.Equal(t, IsVisible(a, b, obstacles), segmentClear(a, b, index),
				"mismatch for segment (%v)-(%v)", a, b)
		}
	}
}

func TestBuildVisibilityGraphEmptyInput(t *testing.T) {
	edges, graph := BuildVisibilityGraph(nil, nil, nil)
	assert.Empty(t, edges)
	assert.Empty(t, graph.Neighbors(0), "missing key resolves to an empty list")
}

func TestBuildVisibilityGraphTraceSink(t *testing.T) {
	o := Obstacle{ID: 0, X: 0, Y: 0, Width: 10, Height: 10}
	var messages []string
	BuildVisibilityGraph([]Obstacle{o}, cornerNodes(o, 0), func(msg string) {
		messages = append(messages, msg)
	})
	assert.NotEmpty(t, messages)
}
