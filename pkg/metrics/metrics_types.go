package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Registry holds all metrics for the layout service
type Registry struct {
	// Graph build metrics
	GraphBuildsTotal   prometheus.Counter
	GraphBuildDuration prometheus.Histogram
	GraphNodesPerBuild prometheus.Histogram
	GraphEdgesPerBuild prometheus.Histogram

	// Layout run metrics
	LayoutTicksTotal        prometheus.Counter
	LayoutTickDuration      prometheus.Histogram
	LayoutRunsTotal         *prometheus.CounterVec
	LayoutActiveRuns        prometheus.Gauge
	LayoutSnapshotsTotal    prometheus.Counter
	LayoutRunTicksPerformed prometheus.Histogram

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initLayoutMetrics()
	r.initHTTPMetrics()
	return r
}

// Gatherer exposes the underlying prometheus registry for the /metrics
// handler.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Gather collects the current metric families. Used by tests.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	return r.registry.Gather()
}
