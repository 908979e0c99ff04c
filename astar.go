package main

import (
	"container/heap"
)

// searchNode is a frontier entry in the A* search
type searchNode struct {
	node   Node
	g      float64 // cost from start
	h      float64 // heuristic cost to goal
	f      float64 // total estimated cost (g + h)
	parent *searchNode
}

// frontier implements heap.Interface ordered by f. Ties follow heap order;
// when several optimal paths tie exactly, any of them may win.
type frontier []*searchNode

func (fr frontier) Len() int { return len(fr) }

func (fr frontier) Less(i, j int) bool {
	return fr[i].f < fr[j].f
}

func (fr frontier) Swap(i, j int) {
	fr[i], fr[j] = fr[j], fr[i]
}

func (fr *frontier) Push(x interface{}) {
	*fr = append(*fr, x.(*searchNode))
}

func (fr *frontier) Pop() interface{} {
	old := *fr
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*fr = old[0 : n-1]
	return node
}

// FindPath computes the shortest path from start to goal over the given
// adjacency snapshot using A* with the Euclidean heuristic. The heuristic
// is admissible and consistent (every edge weight is the Euclidean distance
// between its endpoints), so the first goal expansion is optimal.
//
// There is no permanent closed set: relaxation re-pushes a node whenever a
// strictly cheaper route to it appears, and stale frontier entries are
// skipped on pop. An exhausted frontier means no path exists, which is a
// normal outcome reported via the second return value.
func FindPath(graph *Graph, start, goal Node, trace TraceFunc) ([]Node, bool) {
	open := &frontier{}
	heap.Init(open)

	h := start.Point.Distance(goal.Point)
	heap.Push(open, &searchNode{node: start, g: 0, h: h, f: h})

	// Best known cost from start per node id; absent means +inf
	gScore := map[int]float64{start.ID: 0}

	expanded := 0

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)

		// A cheaper route to this node was found after it was pushed
		if current.g > gScore[current.node.ID] {
			continue
		}
		expanded++

		if current.node.ID == goal.ID {
			path := []Node{}
			for sn := current; sn != nil; sn = sn.parent {
				path = append([]Node{sn.node}, path...)
			}
			tracef(trace, "path found: %d waypoints, cost %.2f, %d nodes expanded", len(path), current.g, expanded)
			return path, true
		}

		for _, nb := range graph.Neighbors(current.node.ID) {
			tentative := current.g + nb.Weight
			if best, seen := gScore[nb.Node.ID]; seen && tentative >= best {
				continue
			}
			gScore[nb.Node.ID] = tentative
			nh := nb.Node.Point.Distance(goal.Point)
			heap.Push(open, &searchNode{
				node:   nb.Node,
				g:      tentative,
				h:      nh,
				f:      tentative + nh,
				parent: current,
			})
		}
	}

	tracef(trace, "frontier exhausted after %d expansions: no path", expanded)
	return nil, false
}

// PathCost sums the Euclidean lengths of consecutive path legs
func PathCost(path []Node) float64 {
	cost := 0.0
	for i := 0; i < len(path)-1; i++ {
		cost += path[i].Point.Distance(path[i+1].Point)
	}
	return cost
}
