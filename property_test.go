package main

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func coordGen() gopter.Gen {
	return gen.Float64Range(-500, 500)
}

func extentGen() gopter.Gen {
	return gen.Float64Range(0, 200)
}

// TestGeometryProperties verifies the algebraic properties the search
// relies on, over generated inputs
func TestGeometryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("visibility is symmetric", prop.ForAll(
		func(ax, ay, bx, by, rx, ry, rw, rh float64) bool {
			a := Point{X: ax, Y: ay}
			b := Point{X: bx, Y: by}
			obstacles := []Obstacle{{X: rx, Y: ry, Width: rw, Height: rh}}
			return IsVisible(a, b, obstacles) == IsVisible(b, a, obstacles)
		},
		coordGen(), coordGen(), coordGen(), coordGen(),
		coordGen(), coordGen(), extentGen(), extentGen(),
	))

	properties.Property("segment blocking is symmetric", prop.ForAll(
		func(ax, ay, bx, by, rx, ry, rw, rh float64) bool {
			a := Point{X: ax, Y: ay}
			b := Point{X: bx, Y: by}
			r := Obstacle{X: rx, Y: ry, Width: rw, Height: rh}
			return SegmentBlockedByRect(a, b, r) == SegmentBlockedByRect(b, a, r)
		},
		coordGen(), coordGen(), coordGen(), coordGen(),
		coordGen(), coordGen(), extentGen(), extentGen(),
	))

	properties.Property("segment ending at a rectangle corner is never blocked by an empty-interior touch", prop.ForAll(
		func(ax, ay, rx, ry, rw, rh float64) bool {
			r := Obstacle{X: rx, Y: ry, Width: rw, Height: rh}
			outside := Point{X: rx - 1 - abs(ax), Y: ry - 1 - abs(ay)}
			// Approaching the top-left corner from strictly above-left
			// never enters the rectangle
			return !SegmentBlockedByRect(outside, Point{X: rx, Y: ry}, r)
		},
		coordGen(), coordGen(), coordGen(), coordGen(), extentGen(), extentGen(),
	))

	properties.TestingRun(t)
}

// TestGraphProperties verifies invariants of the built graph and the
// search over generated worlds
func TestGraphProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	worldGen := gopter.CombineGens(
		coordGen(), coordGen(), extentGen(), extentGen(),
		coordGen(), coordGen(), extentGen(), extentGen(),
		coordGen(), coordGen(), coordGen(), coordGen(),
	)

	buildWorld := func(vs []interface{}) (*Workspace, Node, Node) {
		ws := NewWorkspace(0, nil)
		ws.AddObstacle(vs[0].(float64), vs[1].(float64), vs[2].(float64), vs[3].(float64))
		ws.AddObstacle(vs[4].(float64), vs[5].(float64), vs[6].(float64), vs[7].(float64))
		start := ws.SetStart(Point{X: vs[8].(float64), Y: vs[9].(float64)})
		goal := ws.SetGoal(Point{X: vs[10].(float64), Y: vs[11].(float64)})
		return ws, start, goal
	}

	properties.Property("every edge has a reverse with equal weight", prop.ForAll(
		func(vs []interface{}) bool {
			ws, _, _ := buildWorld(vs)
			ws.Build()
			edges := ws.Edges()

			type pair struct{ from, to int }
			weights := make(map[pair]float64, len(edges))
			for _, e := range edges {
				weights[pair{e.From.ID, e.To.ID}] = e.Weight
			}
			for _, e := range edges {
				w, ok := weights[pair{e.To.ID, e.From.ID}]
				if !ok || w != e.Weight {
					return false
				}
			}
			return true
		},
		worldGen,
	))

	properties.Property("found paths are valid and never beat the heuristic", prop.ForAll(
		func(vs []interface{}) bool {
			ws, start, goal := buildWorld(vs)
			_, graph := BuildVisibilityGraph(ws.Obstacles(), ws.Nodes(), nil)

			path, found := FindPath(graph, start, goal, nil)
			if !found {
				return true
			}
			if path[0].ID != start.ID || path[len(path)-1].ID != goal.ID {
				return false
			}
			for i := 0; i < len(path)-1; i++ {
				hasEdge := false
				for _, nb := range graph.Neighbors(path[i].ID) {
					if nb.Node.ID == path[i+1].ID {
						hasEdge = true
						break
					}
				}
				if !hasEdge {
					return false
				}
			}
			// Straight-line distance never overestimates the path cost
			return start.Point.Distance(goal.Point) <= PathCost(path)+1e-9
		},
		worldGen,
	))

	properties.TestingRun(t)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
