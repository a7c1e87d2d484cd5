// Package metrics provides Prometheus metrics for verification channels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Outcomes     *prometheus.CounterVec // settled channel attempts by channel and state
	PollAttempts *prometheus.CounterVec // status polls by channel
	Rejections   *prometheus.CounterVec // input refused before any network call, by channel
}

func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caslkey_channel_outcomes_total",
			Help: "Settled verification channel attempts by channel and final state",
		}, []string{"channel", "state"}),

		PollAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caslkey_channel_poll_attempts_total",
			Help: "Status polls issued by verification channels",
		}, []string{"channel"}),

		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caslkey_channel_input_rejections_total",
			Help: "Channel inputs rejected by client-side validation",
		}, []string{"channel"}),
	}
}

func (m *Metrics) RecordOutcome(channel, state string) {
	m.Outcomes.WithLabelValues(channel, state).Inc()
}

func (m *Metrics) RecordPoll(channel string) {
	m.PollAttempts.WithLabelValues(channel).Inc()
}

func (m *Metrics) RecordRejection(channel string) {
	m.Rejections.WithLabelValues(channel).Inc()
}
