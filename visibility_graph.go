package main

import (
	"fmt"
	"math"
)

// TraceFunc is an optional diagnostic sink for human-readable progress
// messages. A nil sink is silent; tracing never affects results.
type TraceFunc func(string)

func tracef(trace TraceFunc, format string, args ...interface{}) {
	if trace != nil {
		trace(fmt.Sprintf(format, args...))
	}
}

// BuildVisibilityGraph constructs the visibility graph over the given
// obstacle corners and free-standing nodes. Every unordered node pair is
// tested for line-of-sight; visible pairs emit both directed edges with
// Euclidean weight. The result fully replaces any previously built graph
// and is idempotent for identical input.
func BuildVisibilityGraph(obstacles []Obstacle, nodes []Node, trace TraceFunc) ([]Edge, *Graph) {
	tracef(trace, "building visibility graph: %d obstacles, %d nodes", len(obstacles), len(nodes))

	index := NewSpatialIndex(obstacles)

	totalPairs := len(nodes) * (len(nodes) - 1) / 2
	tracef(trace, "checking up to %d node pairs", totalPairs)

	edges := make([]Edge, 0)
	pairsChecked := 0
	pairsPruned := 0

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			pairsChecked++
			if pairsChecked%10000 == 0 {
				tracef(trace, "progress: %d/%d pairs checked", pairsChecked, totalPairs)
			}

			a, b := nodes[i], nodes[j]

			// Corners of the same wall only connect along its sides.
			// The diagonal is rejected outright so the rectangle's own
			// body never becomes a shortcut; this is a rule, not a
			// consequence of the visibility test.
			if a.ParentWall >= 0 && a.ParentWall == b.ParentWall && !axisAligned(a.Point, b.Point) {
				pairsPruned++
				continue
			}

			if segmentClear(a.Point, b.Point, index) {
				weight := a.Point.Distance(b.Point)
				edges = append(edges,
					Edge{From: a, To: b, Weight: weight},
					Edge{From: b, To: a, Weight: weight},
				)
			}
		}
	}

	tracef(trace, "visibility graph built: %d directed edges (%d same-wall pairs pruned)", len(edges), pairsPruned)

	return edges, BuildAdjacency(edges)
}

// axisAligned reports whether two points differ in exactly one coordinate
func axisAligned(a, b Point) bool {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)
	return (dx > 0 && dy == 0) || (dy > 0 && dx == 0)
}

// segmentClear tests the segment against the obstacles the index reports
// as candidates. Equivalent to IsVisible over the full obstacle set.
func segmentClear(a, b Point, index *SpatialIndex) bool {
	for _, o := range index.QuerySegment(a, b) {
		if SegmentBlockedByRect(a, b, o) {
			return false
		}
	}
	return true
}
