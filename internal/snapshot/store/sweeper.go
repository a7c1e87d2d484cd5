package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Purger is a backend that keeps expired values until told to drop them.
// Redis expires keys itself and does not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// Sweeper periodically purges expired snapshots.
type Sweeper struct {
	purger   Purger
	interval time.Duration
	logger   *slog.Logger
}

type SweeperOption func(*Sweeper)

// WithSweepInterval overrides the interval when greater than zero.
func WithSweepInterval(d time.Duration) SweeperOption {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithSweepLogger(logger *slog.Logger) SweeperOption {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSweeper(purger Purger, opts ...SweeperOption) (*Sweeper, error) {
	if purger == nil {
		return nil, fmt.Errorf("purger is required")
	}
	s := &Sweeper{
		purger:   purger,
		interval: 10 * time.Minute,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start sweeps until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "snapshot sweep failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce purges once and returns how many values were dropped.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired snapshots: %w", err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "purged expired snapshots", "count", n)
	}
	return n, nil
}
