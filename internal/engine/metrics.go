package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes Prometheus instrumentation for evaluation runs.
type Metrics struct {
	evaluationsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	overallScore     *prometheus.GaugeVec
	fieldOutcomes    *prometheus.CounterVec
}

// NewMetrics registers the engine metrics with the given registerer.
// Pass prometheus.DefaultRegisterer to expose them on the default
// /metrics endpoint; tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		evaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docgrade_evaluations_total",
				Help: "Total number of evaluation runs by model and status.",
			},
			[]string{"provider", "model", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docgrade_evaluation_duration_seconds",
				Help:    "Wall-clock duration of evaluation runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model"},
		),
		overallScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "docgrade_last_overall_score",
				Help: "Overall score of the most recent evaluation per model.",
			},
			[]string{"provider", "model"},
		),
		fieldOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docgrade_field_outcomes_total",
				Help: "Field comparison outcomes by match type.",
			},
			[]string{"provider", "model", "match_type"},
		),
	}
}

func (m *Metrics) observeSuccess(provider, model string, score float64, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.evaluationsTotal.WithLabelValues(provider, model, "success").Inc()
	m.duration.WithLabelValues(provider, model).Observe(elapsed.Seconds())
	m.overallScore.WithLabelValues(provider, model).Set(score)
}

func (m *Metrics) observeFailure(provider, model string) {
	if m == nil {
		return
	}
	m.evaluationsTotal.WithLabelValues(provider, model, "error").Inc()
}

func (m *Metrics) observeOutcome(provider, model, matchType string) {
	if m == nil {
		return
	}
	m.fieldOutcomes.WithLabelValues(provider, model, matchType).Inc()
}
