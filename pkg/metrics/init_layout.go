package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.GraphBuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "codemap_graph_builds_total",
			Help: "Total number of graphs built from search hits",
		},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codemap_graph_build_duration_seconds",
			Help:    "Graph build latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.GraphNodesPerBuild = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codemap_graph_nodes_per_build",
			Help:    "Node count of each built graph",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 150, 300},
		},
	)

	r.GraphEdgesPerBuild = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codemap_graph_edges_per_build",
			Help:    "Edge count of each built graph",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 150, 300},
		},
	)

	r.LayoutTicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "codemap_layout_ticks_total",
			Help: "Total number of simulation ticks performed",
		},
	)

	r.LayoutTickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codemap_layout_tick_duration_seconds",
			Help:    "Simulation tick latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	r.LayoutRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "codemap_layout_runs_total",
			Help: "Total layout runs by terminal status",
		},
		[]string{"status"},
	)

	r.LayoutActiveRuns = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "codemap_layout_active_runs",
			Help: "Current number of in-flight layout runs",
		},
	)

	r.LayoutSnapshotsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "codemap_layout_snapshots_total",
			Help: "Total position snapshots published to observers",
		},
	)

	r.LayoutRunTicksPerformed = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codemap_layout_run_ticks",
			Help:    "Ticks performed per run before reaching a terminal status",
			Buckets: []float64{1, 10, 30, 60, 90, 120},
		},
	)
}
