package main

import (
	"errors"
	"sync"
)

var (
	// ErrNoStart is returned when a route is requested before a start
	// node has been designated
	ErrNoStart = errors.New("no start node designated")
	// ErrNoGoal is returned when a route is requested before a goal
	// node has been designated
	ErrNoGoal = errors.New("no goal node designated")
	// ErrTooManyNodes is returned when a placement would exceed the
	// configured node safety limit
	ErrTooManyNodes = errors.New("node limit exceeded")
)

// Workspace owns the obstacle and node collections and the graph snapshot
// derived from them. Obstacles and their corner nodes are created together
// and cleared only by Reset; start and goal nodes are replaced
// independently. The graph is disposable state, rebuilt wholesale on each
// Build.
//
// Build and Route run to completion while holding the lock, so core calls
// never observe a mutation in progress.
type Workspace struct {
	mu sync.RWMutex

	obstacles []Obstacle
	nodes     []Node

	nextWallID int
	nextNodeID int

	startID int // node id, -1 when not designated
	goalID  int

	edges []Edge
	graph *Graph

	maxNodes int
	trace    TraceFunc
}

// NewWorkspace creates an empty workspace. maxNodes caps the node count
// (obstacle corners plus endpoints); 0 disables the cap.
func NewWorkspace(maxNodes int, trace TraceFunc) *Workspace {
	return &Workspace{
		startID:  -1,
		goalID:   -1,
		maxNodes: maxNodes,
		trace:    trace,
	}
}

// AddObstacle normalizes and stores a rectangle and spawns its four corner
// nodes tagged with the new wall id
func (w *Workspace) AddObstacle(x, y, width, height float64) (Obstacle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.maxNodes > 0 && len(w.nodes)+4 > w.maxNodes {
		return Obstacle{}, ErrTooManyNodes
	}

	o := Obstacle{ID: w.nextWallID, X: x, Y: y, Width: width, Height: height}.Normalize()
	w.nextWallID++
	w.obstacles = append(w.obstacles, o)

	for _, corner := range o.Corners() {
		w.nodes = append(w.nodes, Node{
			ID:         w.nextNodeID,
			Point:      corner,
			ParentWall: o.ID,
		})
		w.nextNodeID++
	}

	w.invalidate()
	return o, nil
}

// SetStart designates a new start node, removing the previous one
func (w *Workspace) SetStart(p Point) Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	node := w.placeEndpoint(p, &w.startID)
	return node
}

// SetGoal designates a new goal node, removing the previous one
func (w *Workspace) SetGoal(p Point) Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	node := w.placeEndpoint(p, &w.goalID)
	return node
}

// placeEndpoint replaces the node *slot points at with a fresh node at p.
// Node ids stay monotonic; the replaced node's id is never reused.
func (w *Workspace) placeEndpoint(p Point, slot *int) Node {
	if *slot >= 0 {
		w.removeNode(*slot)
	}

	node := Node{ID: w.nextNodeID, Point: p, ParentWall: -1}
	w.nextNodeID++
	w.nodes = append(w.nodes, node)
	*slot = node.ID

	w.invalidate()
	return node
}

func (w *Workspace) removeNode(id int) {
	for i, n := range w.nodes {
		if n.ID == id {
			w.nodes = append(w.nodes[:i], w.nodes[i+1:]...)
			return
		}
	}
}

// invalidate discards the derived graph snapshot; callers hold the lock
func (w *Workspace) invalidate() {
	w.edges = nil
	w.graph = nil
}

// Reset clears obstacles, nodes, endpoints, and the derived graph. Node
// and wall id counters keep running so ids stay unique within the session.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.obstacles = nil
	w.nodes = nil
	w.startID = -1
	w.goalID = -1
	w.invalidate()
}

// Build rebuilds the visibility graph from the current obstacles and
// nodes, replacing any previous snapshot. Returns node and directed edge
// counts.
func (w *Workspace) Build() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.build()
	return len(w.nodes), len(w.edges)
}

func (w *Workspace) build() {
	w.edges, w.graph = BuildVisibilityGraph(w.obstacles, w.nodes, w.trace)
}

// Route runs A* from the designated start to the designated goal. Missing
// endpoints are precondition errors; an unreachable goal is a normal
// outcome reported by the second return value. Builds the graph first if
// no current snapshot exists.
func (w *Workspace) Route() ([]Node, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.startID < 0 {
		return nil, false, ErrNoStart
	}
	if w.goalID < 0 {
		return nil, false, ErrNoGoal
	}

	if w.graph == nil {
		w.build()
	}

	start, _ := w.nodeByID(w.startID)
	goal, _ := w.nodeByID(w.goalID)

	path, found := FindPath(w.graph, start, goal, w.trace)
	return path, found, nil
}

func (w *Workspace) nodeByID(id int) (Node, bool) {
	for _, n := range w.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Obstacles returns a copy of the obstacle list
func (w *Workspace) Obstacles() []Obstacle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Obstacle, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// Nodes returns a copy of the node list
func (w *Workspace) Nodes() []Node {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Node, len(w.nodes))
	copy(out, w.nodes)
	return out
}

// Edges returns a copy of the current edge list, or nil before a build
func (w *Workspace) Edges() []Edge {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Edge, len(w.edges))
	copy(out, w.edges)
	return out
}

// EdgeLines returns the built edges as deduplicated line segments for
// visualization (each symmetric pair contributes one line)
func (w *Workspace) EdgeLines() [][]Point {
	w.mu.RLock()
	defer w.mu.RUnlock()

	lines := make([][]Point, 0, len(w.edges)/2)
	for _, e := range w.edges {
		if e.From.ID < e.To.ID {
			lines = append(lines, []Point{e.From.Point, e.To.Point})
		}
	}
	return lines
}
