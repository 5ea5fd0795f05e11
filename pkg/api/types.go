package api

import (
	"time"

	"github.com/dd0wney/cluso-codemap/pkg/graph"
)

// LayoutRequest is the body of POST /layout. Hits come from the upstream
// code-search collaborator; the optional sections override the configured
// canvas geometry and simulation constants for this request only.
type LayoutRequest struct {
	Hits       []graph.Hit        `json:"hits"`
	Canvas     *CanvasOverride    `json:"canvas,omitempty"`
	Simulation *SimulationTuning  `json:"simulation,omitempty"`
	Seed       *int64             `json:"seed,omitempty"`
}

// CanvasOverride replaces the configured canvas geometry.
type CanvasOverride struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// SimulationTuning overrides individual simulation constants. Zero-valued
// fields keep the configured value.
type SimulationTuning struct {
	Repulsion   float64 `json:"repulsion,omitempty"`
	Attraction  float64 `json:"attraction,omitempty"`
	Damping     float64 `json:"damping,omitempty"`
	CenterForce float64 `json:"center_force,omitempty"`
	MaxTicks    int     `json:"max_ticks,omitempty"`
}

// NodeResult is one positioned node in a layout response.
type NodeResult struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Kind      graph.Kind `json:"kind"`
	FilePath  string     `json:"file_path"`
	StartLine int        `json:"start_line"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
}

// LayoutResponse is the body of a completed POST /layout.
type LayoutResponse struct {
	RunID  string       `json:"run_id"`
	Status string       `json:"status"`
	Ticks  int          `json:"ticks"`
	Nodes  []NodeResult `json:"nodes"`
	Edges  []graph.Edge `json:"edges"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
