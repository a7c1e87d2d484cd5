// Package snapshot persists the guest's in-progress form and the last trust
// preview so a reload can resume where the guest left off.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"caslkey/internal/guest"
	"caslkey/internal/trust"
	"caslkey/pkg/platform/sentinel"
)

const (
	formKey    = "saved_form_data"
	previewKey = "trust_preview"

	DefaultPrefix = "casl_"
	DefaultMaxAge = 24 * time.Hour
)

// Store is the key-value port the repository writes through.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Snapshot is the saved form. Timestamp is Unix milliseconds.
type Snapshot struct {
	FormData    guest.FormData `json:"formData"`
	CurrentStep guest.Step     `json:"currentStep"`
	Timestamp   int64          `json:"timestamp"`
}

// SavedAt returns Timestamp as a time.
func (s Snapshot) SavedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Repository reads and writes one guest's snapshot under a key prefix.
type Repository struct {
	store  Store
	prefix string
	maxAge time.Duration
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Repository)

func WithPrefix(prefix string) Option {
	return func(r *Repository) { r.prefix = prefix }
}

// WithMaxAge sets how old a snapshot may get before it is discarded on load.
func WithMaxAge(d time.Duration) Option {
	return func(r *Repository) {
		if d > 0 {
			r.maxAge = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

func NewRepository(store Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		prefix: DefaultPrefix,
		maxAge: DefaultMaxAge,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) formKey() string    { return r.prefix + formKey }
func (r *Repository) previewKey() string { return r.prefix + previewKey }

// SaveForm overwrites the snapshot with form at step.
func (r *Repository) SaveForm(ctx context.Context, form guest.FormData, step guest.Step) error {
	data, err := json.Marshal(Snapshot{
		FormData:    form,
		CurrentStep: step,
		Timestamp:   r.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.store.Set(ctx, r.formKey(), data, r.maxAge); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadForm returns the saved snapshot. A stale or unreadable snapshot is
// deleted and reported as not found.
func (r *Repository) LoadForm(ctx context.Context) (Snapshot, bool, error) {
	data, err := r.store.Get(ctx, r.formKey())
	if errors.Is(err, sentinel.ErrNotFound) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil || !snap.CurrentStep.Valid() {
		r.logger.Warn("discarding unreadable snapshot", "key", r.formKey())
		return Snapshot{}, false, r.discard(ctx)
	}
	if age := r.now().Sub(snap.SavedAt()); age > r.maxAge {
		r.logger.Info("discarding stale snapshot", "key", r.formKey(), "age", age.Round(time.Second))
		return Snapshot{}, false, r.discard(ctx)
	}
	return snap, true, nil
}

func (r *Repository) discard(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.formKey()); err != nil {
		return fmt.Errorf("discard snapshot: %w", err)
	}
	return nil
}

// ClearForm removes the saved form.
func (r *Repository) ClearForm(ctx context.Context) error {
	return r.discard(ctx)
}

// SavePreview stores the latest trust preview.
func (r *Repository) SavePreview(ctx context.Context, preview trust.TrustPreview) error {
	data, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("marshal trust preview: %w", err)
	}
	if err := r.store.Set(ctx, r.previewKey(), data, r.maxAge); err != nil {
		return fmt.Errorf("save trust preview: %w", err)
	}
	return nil
}

func (r *Repository) LoadPreview(ctx context.Context) (trust.TrustPreview, bool, error) {
	data, err := r.store.Get(ctx, r.previewKey())
	if errors.Is(err, sentinel.ErrNotFound) {
		return trust.TrustPreview{}, false, nil
	}
	if err != nil {
		return trust.TrustPreview{}, false, fmt.Errorf("load trust preview: %w", err)
	}
	var preview trust.TrustPreview
	if err := json.Unmarshal(data, &preview); err != nil {
		return trust.TrustPreview{}, false, nil
	}
	return preview, true, nil
}

// Clear removes both the form and the trust preview.
func (r *Repository) Clear(ctx context.Context) error {
	return errors.Join(
		r.discard(ctx),
		r.store.Delete(ctx, r.previewKey()),
	)
}
