// Package metrics provides Prometheus metrics for calls to the verification backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestDuration   *prometheus.HistogramVec // by endpoint
	RequestErrors     *prometheus.CounterVec   // by endpoint and category
	CircuitOpenEvents prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caslkey_api_request_duration_seconds",
			Help:    "Duration of verification backend calls by endpoint",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),

		RequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caslkey_api_request_errors_total",
			Help: "Failed verification backend calls by endpoint and error category",
		}, []string{"endpoint", "category"}),

		CircuitOpenEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caslkey_api_circuit_open_total",
			Help: "Times the verification backend circuit breaker opened",
		}),
	}
}

func (m *Metrics) ObserveRequest(endpoint string, start time.Time) {
	m.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementError(endpoint, category string) {
	m.RequestErrors.WithLabelValues(endpoint, category).Inc()
}

func (m *Metrics) IncrementCircuitOpen() {
	m.CircuitOpenEvents.Inc()
}
