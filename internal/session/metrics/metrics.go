// Package metrics provides Prometheus metrics for hosted wizard sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Active  prometheus.Gauge
	Created prometheus.Counter
	Expired prometheus.Counter
	Resumed prometheus.Counter // sessions rebuilt from a saved snapshot
}

func New() *Metrics {
	return &Metrics{
		Active: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "caslkey_sessions_active",
			Help: "Wizard sessions currently held in memory",
		}),
		Created: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caslkey_sessions_created_total",
			Help: "Wizard sessions created",
		}),
		Expired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caslkey_sessions_expired_total",
			Help: "Wizard sessions dropped after sitting idle",
		}),
		Resumed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caslkey_sessions_resumed_total",
			Help: "Wizard sessions rebuilt from saved progress",
		}),
	}
}

func (m *Metrics) SetActive(n int) {
	m.Active.Set(float64(n))
}

func (m *Metrics) IncrementCreated() {
	m.Created.Inc()
}

func (m *Metrics) AddExpired(n int) {
	m.Expired.Add(float64(n))
}

func (m *Metrics) IncrementResumed() {
	m.Resumed.Inc()
}
