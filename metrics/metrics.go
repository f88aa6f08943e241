// Package metrics exposes Prometheus instrumentation for validation and
// resolution runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kamishino/design-tokens-sub001/validate"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	TokensValidated *prometheus.CounterVec
	FindingsTotal   *prometheus.CounterVec
	BatchDuration   prometheus.Histogram
	BrandsResolved  prometheus.Counter
}

// New registers the engine collectors with reg and returns them. Pass
// prometheus.DefaultRegisterer outside tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TokensValidated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokenlint",
			Name:      "tokens_validated_total",
			Help:      "Tokens validated, partitioned by outcome.",
		}, []string{"outcome"}),
		FindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokenlint",
			Name:      "findings_total",
			Help:      "Validation findings, partitioned by code and severity.",
		}, []string{"code", "severity"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tokenlint",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of batch validation runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		BrandsResolved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tokenlint",
			Name:      "brands_resolved_total",
			Help:      "Brand inheritance resolutions performed.",
		}),
	}
}

// ObserveBatch records one batch validation run.
func (m *Metrics) ObserveBatch(batch *validate.BatchResult, elapsed time.Duration) {
	m.TokensValidated.WithLabelValues("valid").Add(float64(batch.Summary.Valid))
	m.TokensValidated.WithLabelValues("invalid").Add(float64(batch.Summary.Invalid))
	m.BatchDuration.Observe(elapsed.Seconds())

	for _, result := range batch.Results {
		for _, e := range result.Errors {
			m.FindingsTotal.WithLabelValues(string(e.Code), "error").Inc()
		}
		for _, w := range result.Warnings {
			m.FindingsTotal.WithLabelValues(string(w.Code), "warning").Inc()
		}
	}
}
