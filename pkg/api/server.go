// Package api exposes the layout service over HTTP: it accepts ranked
// code-search hits and responds with rendered node coordinates, either as a
// single completed layout or as a per-tick snapshot stream.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-codemap/pkg/config"
	"github.com/dd0wney/cluso-codemap/pkg/layout"
	"github.com/dd0wney/cluso-codemap/pkg/logging"
	"github.com/dd0wney/cluso-codemap/pkg/metrics"
	"github.com/dd0wney/cluso-codemap/pkg/pubsub"
)

// maxRequestBody caps POST bodies. Low hundreds of hits fit comfortably.
const maxRequestBody int64 = 4 << 20

// Server handles the HTTP collaborator boundary.
type Server struct {
	cfg       config.Config
	logger    logging.Logger
	metrics   *metrics.Registry
	bus       *pubsub.Bus[layout.Snapshot]
	startTime time.Time
	version   string
}

// NewServer creates an API server over the given configuration.
func NewServer(cfg config.Config, logger logging.Logger, registry *metrics.Registry) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger.With(logging.Component("api")),
		metrics:   registry,
		bus:       pubsub.NewBus[layout.Snapshot](),
		startTime: time.Now(),
		version:   "1.0.0",
	}
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /layout", s.handleLayout)
	mux.HandleFunc("POST /layout/stream", s.handleLayoutStream)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{}))

	var h http.Handler = mux
	h = s.bodySizeLimitMiddleware(h, maxRequestBody)
	h = s.metricsMiddleware(h)
	h = s.corsMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.panicRecoveryMiddleware(h)
	return h
}

// Close releases the snapshot bus.
func (s *Server) Close() {
	s.bus.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
