// Package telemetry owns the Prometheus collectors of one application
// instance. Every method is safe on a nil *Metrics, so components can be used
// without instrumentation (e.g. in unit tests).
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orbitgraph"

// Query labels for QueryDuration and QueryFailures.
const (
	QueryAncestorCount = "ancestor_count"
	QueryTransfers     = "orbital_transfers"
)

// Metrics groups the collectors updated by the pipeline.
type Metrics struct {
	registry *prometheus.Registry

	records       prometheus.Counter
	resolved      *prometheus.CounterVec
	edges         prometheus.Counter
	buildDuration prometheus.Histogram
	queryDuration *prometheus.HistogramVec
	queryFailures *prometheus.CounterVec
}

// New creates the collectors on a private registry, so that several
// instances (one per test, say) never collide on registration.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Orbit records consumed by the graph builder.",
		}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_resolved_total",
			Help:      "Identifier resolutions, by whether a new handle was allocated.",
		}, []string{"outcome"}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_total",
			Help:      "Edges committed to the graph store.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time of the build phase.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Wall time of each graph query.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"query"}),
		queryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_failures_total",
			Help:      "Graph queries that returned an error.",
		}, []string{"query"}),
	}
	reg.MustRegister(m.records, m.resolved, m.edges, m.buildDuration, m.queryDuration, m.queryFailures)
	return m
}

// Gatherer exposes the underlying registry, mostly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{})
}

// RecordConsumed counts one record taken off the stream.
func (m *Metrics) RecordConsumed() {
	if m == nil {
		return
	}
	m.records.Inc()
}

// NodeResolved counts one registry lookup.
func (m *Metrics) NodeResolved(allocated bool) {
	if m == nil {
		return
	}
	outcome := "existing"
	if allocated {
		outcome = "allocated"
	}
	m.resolved.WithLabelValues(outcome).Inc()
}

// EdgeCommitted counts one edge.
func (m *Metrics) EdgeCommitted() {
	if m == nil {
		return
	}
	m.edges.Inc()
}

// BuildFinished observes the build phase duration.
func (m *Metrics) BuildFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(d.Seconds())
}

// QueryFinished observes one query and counts it as failed when err != nil.
func (m *Metrics) QueryFinished(query string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(query).Observe(d.Seconds())
	if err != nil {
		m.queryFailures.WithLabelValues(query).Inc()
	}
}
