// Package observability — метрики Prometheus для резолвера курса и калькулятора.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// Резолвер курса
	SourceAttempts  *prometheus.CounterVec
	SourceDuration  *prometheus.HistogramVec
	RateResolutions *prometheus.CounterVec

	// Калькулятор
	Calculations *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в собственном реестре, не в глобальном.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "arbicalc"
	}
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SourceAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_source_attempts_total",
			Help:      "Rate source attempts by source and outcome",
		}, []string{"source", "outcome"}),
		SourceDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_source_duration_seconds",
			Help:      "Duration of a single rate source attempt",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		RateResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_resolutions_total",
			Help:      "Rate resolutions by status (resolved, degraded)",
		}, []string{"status"}),
		Calculations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Transaction calculations by outcome (ok, invalid, invariant, error)",
		}, []string{"outcome"}),
	}
}

// SourceAttempt: одна попытка источника.
func (m *Metrics) SourceAttempt(source, outcome string, elapsed time.Duration) {
	m.SourceAttempts.WithLabelValues(source, outcome).Inc()
	m.SourceDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Resolution: итог поиска курса (resolved | degraded).
func (m *Metrics) Resolution(degraded bool) {
	status := "resolved"
	if degraded {
		status = "degraded"
	}
	m.RateResolutions.WithLabelValues(status).Inc()
}

func (m *Metrics) Calculation(outcome string) {
	m.Calculations.WithLabelValues(outcome).Inc()
}

// Handler для /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
