// Package metrics instruments the knowledge-graph load with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the load pipeline.
type Metrics struct {
	// Stage and fetch latencies by phase
	PhaseDuration *prometheus.HistogramVec

	// Rows accepted and skipped per source
	RowsParsed  *prometheus.CounterVec
	RowsSkipped *prometheus.CounterVec

	// Diagnostics by kind
	Diagnostics *prometheus.CounterVec

	// Entity counts after the most recent stage
	Entities *prometheus.GaugeVec
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PhaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "langnav_load_phase_duration_seconds",
			Help:    "Duration of load phases (source fetches and graph stages)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"phase"}),

		RowsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "langnav_rows_parsed_total",
			Help: "Input rows accepted by source",
		}, []string{"source"}),

		RowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "langnav_rows_skipped_total",
			Help: "Malformed input rows skipped by source",
		}, []string{"source"}),

		Diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "langnav_diagnostics_total",
			Help: "Diagnostics reported during the load by kind",
		}, []string{"kind"}),

		Entities: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "langnav_entities",
			Help: "Entities in the graph by object type",
		}, []string{"type"}),
	}
}

// ObservePhase records the duration of a load phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m != nil {
		m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
	}
}

// AddRows records parsed and skipped rows for a source.
func (m *Metrics) AddRows(source string, parsed, skipped int) {
	if m != nil {
		m.RowsParsed.WithLabelValues(source).Add(float64(parsed))
		m.RowsSkipped.WithLabelValues(source).Add(float64(skipped))
	}
}

// IncDiagnostic counts one diagnostic of the given kind.
func (m *Metrics) IncDiagnostic(kind string) {
	if m != nil {
		m.Diagnostics.WithLabelValues(kind).Inc()
	}
}

// SetEntities records the number of entities of an object type.
func (m *Metrics) SetEntities(objectType string, n int) {
	if m != nil {
		m.Entities.WithLabelValues(objectType).Set(float64(n))
	}
}
