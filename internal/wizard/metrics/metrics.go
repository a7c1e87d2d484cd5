// Package metrics provides Prometheus metrics for the verification wizard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Advances    *prometheus.CounterVec // completed advances by the step left
	Submissions *prometheus.CounterVec // by trust level and outcome
	Scores      prometheus.Histogram
	Lookups     *prometheus.CounterVec // user lookups by result
}

func New() *Metrics {
	return &Metrics{
		Advances: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caslkey_wizard_advances_total",
			Help: "Wizard steps completed, by the step that was left",
		}, []string{"step"}),

		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caslkey_wizard_submissions_total",
			Help: "Verification submissions by trust level and outcome",
		}, []string{"trust_level", "outcome"}),

		Scores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caslkey_wizard_trust_score",
			Help:    "Trust scores of submitted applications",
			Buckets: []float64{40, 50, 60, 70, 80, 85, 90, 95, 100},
		}),

		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caslkey_wizard_user_lookups_total",
			Help: "Existing-user lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) RecordAdvance(step string) {
	m.Advances.WithLabelValues(step).Inc()
}

func (m *Metrics) RecordSubmission(trustLevel, outcome string, score int) {
	m.Submissions.WithLabelValues(trustLevel, outcome).Inc()
	if outcome == "accepted" {
		m.Scores.Observe(float64(score))
	}
}

func (m *Metrics) RecordLookup(result string) {
	m.Lookups.WithLabelValues(result).Inc()
}
