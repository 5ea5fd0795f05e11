package api

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/dd0wney/cluso-codemap/pkg/graph"
	"github.com/dd0wney/cluso-codemap/pkg/layout"
	"github.com/dd0wney/cluso-codemap/pkg/logging"
)

// handleLayout builds a graph from the posted hits, runs a full layout run
// synchronously, and returns the final node positions.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, cfg, maxTicks, err := s.decodeLayoutRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g := s.buildGraph(req, cfg)
	engine := layout.NewEngine(cfg, g)
	sched := layout.NewScheduler(engine, maxTicks, nil)

	s.runToCompletion(sched)

	s.writeJSON(w, http.StatusOK, s.layoutResponse(g, sched))
}

// handleLayoutStream is the SSE variant: one event per published snapshot,
// then a terminal "done" event carrying the run status.
func (s *Server) handleLayoutStream(w http.ResponseWriter, r *http.Request) {
	req, cfg, maxTicks, err := s.decodeLayoutRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	g := s.buildGraph(req, cfg)
	engine := layout.NewEngine(cfg, g)

	animator := layout.NewAnimator(s.bus)
	sched := animator.Start(engine, maxTicks)

	// Subscribe before the first tick so no snapshot is missed. The buffer
	// covers a full run; publishes never block the simulation.
	sub := s.bus.Subscribe(sched.ID().String(), maxTicks+8)
	if sub == nil {
		s.writeError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}
	defer sub.Unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	s.metrics.LayoutActiveRuns.Inc()
	defer s.metrics.LayoutActiveRuns.Dec()

	for {
		// Cooperative cancellation at the tick boundary: a closed client
		// connection stops the run instead of finishing 120 ticks nobody
		// will see.
		select {
		case <-r.Context().Done():
			sched.Stop()
		default:
		}

		start := time.Now()
		more := sched.Tick()
		if sched.Status() == layout.StatusRunning || sched.Status() == layout.StatusCompleted {
			s.metrics.RecordTick(time.Since(start))
		}

		// The snapshot published by this tick is already buffered.
		select {
		case snap := <-sub.C():
			s.writeEvent(w, "snapshot", snap)
			flusher.Flush()
		default:
		}

		if !more {
			break
		}
	}

	s.metrics.RecordRunFinished(sched.Status().String(), sched.Ticks())
	s.writeEvent(w, "done", map[string]any{
		"run_id": sched.ID().String(),
		"status": sched.Status().String(),
		"ticks":  sched.Ticks(),
	})
	flusher.Flush()

	s.logger.Info("layout stream finished",
		logging.RunID(sched.ID().String()),
		logging.String("status", sched.Status().String()),
		logging.Ticks(sched.Ticks()),
	)
}

// decodeLayoutRequest parses the body and resolves the effective simulation
// config for this request.
func (s *Server) decodeLayoutRequest(r *http.Request) (LayoutRequest, layout.Config, int, error) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return LayoutRequest{}, layout.Config{}, 0, fmt.Errorf("invalid request body: %w", err)
	}

	cfg := s.cfg.LayoutConfig()
	maxTicks := s.cfg.Simulation.MaxTicks

	if req.Canvas != nil {
		if req.Canvas.Width <= 0 || req.Canvas.Height <= 0 || req.Canvas.Margin < 0 ||
			2*req.Canvas.Margin >= req.Canvas.Width || 2*req.Canvas.Margin >= req.Canvas.Height {
			return LayoutRequest{}, layout.Config{}, 0, fmt.Errorf("invalid canvas override")
		}
		cfg.Width = req.Canvas.Width
		cfg.Height = req.Canvas.Height
		cfg.Margin = req.Canvas.Margin
	}

	if t := req.Simulation; t != nil {
		if t.Repulsion > 0 {
			cfg.Repulsion = t.Repulsion
		}
		if t.Attraction > 0 {
			cfg.Attraction = t.Attraction
		}
		if t.Damping != 0 {
			if t.Damping <= 0 || t.Damping >= 1 {
				return LayoutRequest{}, layout.Config{}, 0, fmt.Errorf("damping must be in (0, 1)")
			}
			cfg.Damping = t.Damping
		}
		if t.CenterForce > 0 {
			cfg.CenterForce = t.CenterForce
		}
		if t.MaxTicks > 0 {
			maxTicks = t.MaxTicks
		}
	}

	return req, cfg, maxTicks, nil
}

// buildGraph runs the builder with a per-request randomness source.
func (s *Server) buildGraph(req LayoutRequest, cfg layout.Config) *graph.Graph {
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	start := time.Now()
	g := graph.NewBuilder(cfg.Geometry(), rng).Build(req.Hits)
	s.metrics.RecordGraphBuild(g.NodeCount(), g.EdgeCount(), time.Since(start))

	s.logger.Debug("graph built",
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
	)
	return g
}

// runToCompletion drives a scheduler synchronously, recording per-tick and
// terminal metrics.
func (s *Server) runToCompletion(sched *layout.Scheduler) {
	s.metrics.LayoutActiveRuns.Inc()
	defer s.metrics.LayoutActiveRuns.Dec()

	for {
		start := time.Now()
		more := sched.Tick()
		s.metrics.LayoutTicksTotal.Inc()
		s.metrics.LayoutTickDuration.Observe(time.Since(start).Seconds())
		if !more {
			break
		}
	}

	s.metrics.RecordRunFinished(sched.Status().String(), sched.Ticks())
}

func (s *Server) layoutResponse(g *graph.Graph, sched *layout.Scheduler) LayoutResponse {
	nodes := make([]NodeResult, 0, g.NodeCount())
	for _, n := range g.Nodes {
		nodes = append(nodes, NodeResult{
			ID:        n.ID,
			Label:     n.Label,
			Kind:      n.Kind,
			FilePath:  n.FilePath,
			StartLine: n.StartLine,
			X:         n.X,
			Y:         n.Y,
		})
	}
	edges := g.Edges
	if edges == nil {
		edges = []graph.Edge{}
	}
	return LayoutResponse{
		RunID:  sched.ID().String(),
		Status: sched.Status().String(),
		Ticks:  sched.Ticks(),
		Nodes:  nodes,
		Edges:  edges,
	}
}

func (s *Server) writeEvent(w http.ResponseWriter, event string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("encoding event", logging.Error(err))
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
