// Package prometheus exposes harvest metrics through a Prometheus registry.
// Metrics are written to a node_exporter textfile at the end of a run since
// a harvest is a batch job with no scrape endpoint.
package prometheus

import (
	"github.com/fwojciec/ratedoc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ratedoc"

var _ ratedoc.HarvestMetrics = (*Metrics)(nil)

// Metrics holds the harvest collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	fetches          *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	decisions        *prometheus.CounterVec
	artifacts        prometheus.Counter
	artifactBytes    prometheus.Counter
	skipped          prometheus.Counter
	resourceFailures prometheus.Counter
}

// NewMetrics creates the collectors and registers them on a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetches_total",
				Help:      "Page fetches by fetcher and result.",
			},
			[]string{"fetcher", "result"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of page fetches.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"fetcher"},
		),
		decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_found_total",
				Help:      "Decisions parsed from year pages by layout.",
			},
			[]string{"layout"},
		),
		artifacts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_saved_total",
			Help:      "Reports written to the artifact store.",
		}),
		artifactBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_bytes_total",
			Help:      "Bytes of reports written to the artifact store.",
		}),
		skipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_skipped_total",
			Help:      "Decisions skipped because they were already recorded.",
		}),
		resourceFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resource_failures_total",
			Help:      "Resources that could not be fetched or extracted.",
		}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) DecisionsFound(layout ratedoc.Layout, n int) {
	name := string(layout)
	if layout == ratedoc.LayoutUnknown {
		name = "unknown"
	}
	m.decisions.WithLabelValues(name).Add(float64(n))
}

func (m *Metrics) ArtifactSaved(bytes int) {
	m.artifacts.Inc()
	m.artifactBytes.Add(float64(bytes))
}

func (m *Metrics) DecisionSkipped() {
	m.skipped.Inc()
}

func (m *Metrics) ResourceFailed() {
	m.resourceFailures.Inc()
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
