package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordGraphBuild records one graph build with its size and duration
func (r *Registry) RecordGraphBuild(nodes, edges int, duration time.Duration) {
	r.GraphBuildsTotal.Inc()
	r.GraphBuildDuration.Observe(duration.Seconds())
	r.GraphNodesPerBuild.Observe(float64(nodes))
	r.GraphEdgesPerBuild.Observe(float64(edges))
}

// RecordTick records one simulation tick and its published snapshot
func (r *Registry) RecordTick(duration time.Duration) {
	r.LayoutTicksTotal.Inc()
	r.LayoutTickDuration.Observe(duration.Seconds())
	r.LayoutSnapshotsTotal.Inc()
}

// RecordRunFinished records a run reaching a terminal status
func (r *Registry) RecordRunFinished(status string, ticks int) {
	r.LayoutRunsTotal.WithLabelValues(status).Inc()
	r.LayoutRunTicksPerformed.Observe(float64(ticks))
}
