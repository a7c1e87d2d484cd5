package channels

import (
	"log/slog"
	"time"

	"caslkey/internal/channels/metrics"
)

// Config holds the limits shared by every adapter.
type Config struct {
	PollInterval        time.Duration
	MaxImageBytes       int64
	AllowedImageTypes   []string
	PhoneResendCooldown time.Duration
}

// DefaultConfig matches the service defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval:        3 * time.Second,
		MaxImageBytes:       5 << 20,
		AllowedImageTypes:   []string{"image/jpeg", "image/png", "image/webp"},
		PhoneResendCooldown: 60 * time.Second,
	}
}

type options struct {
	config  Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures an adapter.
type Option func(*options)

// WithConfig replaces the defaults. Zero fields keep their default.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.PollInterval > 0 {
			o.config.PollInterval = cfg.PollInterval
		}
		if cfg.MaxImageBytes > 0 {
			o.config.MaxImageBytes = cfg.MaxImageBytes
		}
		if len(cfg.AllowedImageTypes) > 0 {
			o.config.AllowedImageTypes = cfg.AllowedImageTypes
		}
		if cfg.PhoneResendCooldown > 0 {
			o.config.PhoneResendCooldown = cfg.PhoneResendCooldown
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock overrides the time source used for signal timestamps and the
// phone resend cooldown.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		config: DefaultConfig(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
