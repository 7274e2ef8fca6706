package persisted

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the adapter's Prometheus collectors on a private registry,
// so several adapters (or tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	Saves        *prometheus.CounterVec
	SaveDuration prometheus.Histogram
	Nodes        prometheus.Gauge
	Collections  prometheus.Gauge
}

// NewMetrics creates and registers the collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_saves_total",
				Help:      "Snapshot saves by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		SaveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "snapshot_save_duration_seconds",
				Help:      "Time spent writing a full snapshot",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Nodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "nodes",
				Help:      "Nodes currently stored",
			},
		),
		Collections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "collections",
				Help:      "Collections currently stored",
			},
		),
	}
	m.registry.MustRegister(m.Saves, m.SaveDuration, m.Nodes, m.Collections)

	return m
}

// Registry exposes the private registry, for promhttp and for callers that
// want to add their own collectors next to these.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
