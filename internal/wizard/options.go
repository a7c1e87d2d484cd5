package wizard

import (
	"log/slog"
	"time"

	"caslkey/internal/channels"
	chanmetrics "caslkey/internal/channels/metrics"
	"caslkey/internal/events"
	"caslkey/internal/wizard/metrics"
	id "caslkey/pkg/domain"
)

// DefaultBackgroundCheckTimeout bounds how long Advance waits on a check.
const DefaultBackgroundCheckTimeout = 2 * time.Minute

type Option func(*Wizard)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Wizard) {
		w.metrics = m
	}
}

// WithChannelMetrics is passed through to every channel adapter.
func WithChannelMetrics(m *chanmetrics.Metrics) Option {
	return func(w *Wizard) {
		w.channelMetrics = m
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(w *Wizard) {
		if p != nil {
			w.publisher = p
		}
	}
}

// WithClock sets the time source for scoring, signal timestamps and the
// submission date.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDGenerator replaces the CASL Key ID source used for new guests.
func WithIDGenerator(gen func() id.CASLKeyID) Option {
	return func(w *Wizard) {
		if gen != nil {
			w.newID = gen
		}
	}
}

func WithChannelConfig(cfg channels.Config) Option {
	return func(w *Wizard) {
		w.channelConfig = cfg
	}
}

func WithBackgroundCheckTimeout(d time.Duration) Option {
	return func(w *Wizard) {
		if d > 0 {
			w.bgTimeout = d
		}
	}
}
