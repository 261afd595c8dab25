// Package metrics exposes Prometheus collectors for layout runs.
//
// Collectors live on a private registry rather than the global default, so
// several runners can coexist in one process and tests see clean counters.
// A CLI run writes the registry in text exposition format with [Metrics.WriteFile],
// ready for the node_exporter textfile collector.
//
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forcetower"

// Cache outcome labels.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Metrics holds the collectors of one runner.
type Metrics struct {
	Registry *prometheus.Registry

	LayoutRuns     *prometheus.CounterVec
	LayoutDuration prometheus.Histogram
	LayoutErrors   prometheus.Counter
	Ticks          prometheus.Counter
	Nodes          prometheus.Gauge
	Edges          prometheus.Gauge
	FinalAlpha     prometheus.Gauge
	Renders        *prometheus.CounterVec
}

// New registers a fresh set of collectors on a new registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		LayoutRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "layout_runs_total",
				Help:      "Total number of layout requests",
			},
			[]string{"cache"}, // cache: hit, miss
		),
		LayoutDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "layout_duration_seconds",
				Help:      "Duration of simulation runs in seconds",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
		),
		LayoutErrors: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "layout_errors_total",
				Help:      "Total number of failed layout requests",
			},
		),
		Ticks: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulation_ticks_total",
				Help:      "Total number of simulation ticks executed",
			},
		),
		Nodes: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_nodes",
				Help:      "Number of nodes in the last laid out graph",
			},
		),
		Edges: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_edges",
				Help:      "Number of edges in the last laid out graph",
			},
		),
		FinalAlpha: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "simulation_final_alpha",
				Help:      "Alpha at the end of the last simulation run",
			},
		),
		Renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Total number of rendered artifacts",
			},
			[]string{"format"},
		),
	}
}

// ObserveCache counts a layout request by cache outcome.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.LayoutRuns.WithLabelValues(CacheHit).Inc()
	} else {
		m.LayoutRuns.WithLabelValues(CacheMiss).Inc()
	}
}

// ObserveRun records a finished simulation.
func (m *Metrics) ObserveRun(nodes, edges, ticks int, alpha float64, d time.Duration) {
	if m == nil {
		return
	}
	m.Nodes.Set(float64(nodes))
	m.Edges.Set(float64(edges))
	m.Ticks.Add(float64(ticks))
	m.FinalAlpha.Set(alpha)
	m.LayoutDuration.Observe(d.Seconds())
}

// ObserveError counts a failed layout request.
func (m *Metrics) ObserveError() {
	if m == nil {
		return
	}
	m.LayoutErrors.Inc()
}

// ObserveRender counts a rendered artifact.
func (m *Metrics) ObserveRender(format string) {
	if m == nil {
		return
	}
	m.Renders.WithLabelValues(format).Inc()
}

// WriteFile writes the registry to path in text exposition format.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
