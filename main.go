package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	buildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_graph_builds_total",
		Help: "Number of visibility graph builds",
	})
	routesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_routes_total",
		Help: "Number of route requests by outcome",
	}, []string{"outcome"})
	nodesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_nodes",
		Help: "Nodes in the current workspace",
	})
	edgesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_edges",
		Help: "Directed edges in the current graph snapshot",
	})
)

// server wires the workspace to the HTTP surface. This layer only feeds
// inputs to the core and displays its outputs; all routing semantics live
// in the workspace and below.
type server struct {
	ws       *Workspace
	validate *validator.Validate
}

func newServer(cfg Config) *server {
	return &server{
		ws:       NewWorkspace(cfg.MaxNodes, func(msg string) { log.Printf("   %s\n", msg) }),
		validate: validator.New(),
	}
}

type obstacleRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type routeResponse struct {
	Path     []Node  `json:"path"`
	Success  bool    `json:"success"`
	Message  string  `json:"message,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// reqTag returns a short id for correlating log lines of one request
func reqTag() string {
	return uuid.NewString()[:8]
}

func (s *server) addObstacleHandler(w http.ResponseWriter, r *http.Request) {
	tag := reqTag()
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req obstacleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] ❌ Invalid obstacle body: %v\n", tag, err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		log.Printf("[%s] ❌ Invalid obstacle: %v\n", tag, err)
		http.Error(w, "Width and height must be non-negative", http.StatusBadRequest)
		return
	}

	obstacle, err := s.ws.AddObstacle(req.X, req.Y, req.Width, req.Height)
	if err != nil {
		log.Printf("[%s] ❌ Obstacle rejected: %v\n", tag, err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	nodesGauge.Set(float64(len(s.ws.Nodes())))
	log.Printf("[%s] 🧱 Obstacle %d placed at (%.1f, %.1f) %gx%g\n",
		tag, obstacle.ID, obstacle.X, obstacle.Y, obstacle.Width, obstacle.Height)

	writeJSON(w, http.StatusOK, obstacle)
}

func (s *server) endpointHandler(name string, place func(Point) Node) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := reqTag()
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req pointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("[%s] ❌ Invalid %s body: %v\n", tag, name, err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		node := place(Point{X: req.X, Y: req.Y})
		nodesGauge.Set(float64(len(s.ws.Nodes())))
		log.Printf("[%s] 📍 %s set to node %d at (%.1f, %.1f)\n", tag, name, node.ID, node.Point.X, node.Point.Y)

		writeJSON(w, http.StatusOK, node)
	}
}

func (s *server) buildHandler(w http.ResponseWriter, r *http.Request) {
	tag := reqTag()
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	numNodes, numEdges := s.ws.Build()
	buildsTotal.Inc()
	nodesGauge.Set(float64(numNodes))
	edgesGauge.Set(float64(numEdges))

	log.Printf("[%s] 🕸️  Graph built: %d nodes, %d directed edges\n", tag, numNodes, numEdges)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"numNodes": numNodes,
		"numEdges": numEdges,
	})
}

func (s *server) edgesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lines := s.ws.EdgeLines()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines":    lines,
		"numEdges": len(lines),
	})
}

func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	tag := reqTag()
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("[%s] 🔍 Route request\n", tag)

	path, found, err := s.ws.Route()
	if err != nil {
		// Missing start or goal is a precondition violation, distinct
		// from an unreachable goal
		routesTotal.WithLabelValues("precondition").Inc()
		log.Printf("[%s] ❌ Cannot search: %v\n", tag, err)
		writeJSON(w, http.StatusConflict, routeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if !found {
		routesTotal.WithLabelValues("not_found").Inc()
		log.Printf("[%s] ❌ No path found\n", tag)
		writeJSON(w, http.StatusOK, routeResponse{
			Success: false,
			Message: "no path found",
		})
		return
	}

	distance := PathCost(path)
	routesTotal.WithLabelValues("found").Inc()
	log.Printf("[%s] ✅ Path found: %d waypoints, distance %.2f\n", tag, len(path), distance)

	writeJSON(w, http.StatusOK, routeResponse{
		Path:     path,
		Success:  true,
		Distance: distance,
	})
}

func (s *server) resetHandler(w http.ResponseWriter, r *http.Request) {
	tag := reqTag()
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.ws.Reset()
	nodesGauge.Set(0)
	edgesGauge.Set(0)
	log.Printf("[%s] 🧹 Workspace reset\n", tag)

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"numObstacles": len(s.ws.Obstacles()),
		"numNodes":     len(s.ws.Nodes()),
	})
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/obstacles", corsMiddleware(s.addObstacleHandler))
	mux.HandleFunc("/start", corsMiddleware(s.endpointHandler("start", s.ws.SetStart)))
	mux.HandleFunc("/goal", corsMiddleware(s.endpointHandler("goal", s.ws.SetGoal)))
	mux.HandleFunc("/buildGraph", corsMiddleware(s.buildHandler))
	mux.HandleFunc("/edges", corsMiddleware(s.edgesHandler))
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/reset", corsMiddleware(s.resetHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func main() {
	log.Println("========================================")
	log.Println("🚀 Rectangle Route Planner")
	log.Println("========================================")

	validate := validator.New()
	cfg, err := LoadConfig("config.yaml", validate)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	srv := newServer(cfg)

	// Pre-seed the workspace from bundled obstacle sets, if any
	if obstacles, err := LoadObstacleSets(cfg.ObstacleDir); err == nil && len(obstacles) > 0 {
		for _, o := range obstacles {
			if _, err := srv.ws.AddObstacle(o.X, o.Y, o.Width, o.Height); err != nil {
				log.Printf("⚠️  Skipping obstacle: %v\n", err)
			}
		}
		log.Printf("✅ Pre-seeded %d obstacles\n", len(srv.ws.Obstacles()))
	}

	log.Printf("Server starting on %s\n", cfg.ListenAddr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /obstacles   - Place a rectangle obstacle (spawns corner nodes)")
	log.Println("  POST /start       - Designate the start point")
	log.Println("  POST /goal        - Designate the goal point")
	log.Println("  POST /buildGraph  - Rebuild the visibility graph")
	log.Println("  GET  /edges       - Graph edges for visualization")
	log.Println("  POST /route       - Compute shortest path with A*")
	log.Println("  POST /reset       - Clear obstacles and endpoints")
	log.Println("  GET  /health      - Server status")
	log.Println("  GET  /metrics     - Prometheus metrics")
	log.Println("========================================")

	if err := http.ListenAndServe(cfg.ListenAddr, srv.routes()); err != nil {
		log.Fatal(err)
	}
}
