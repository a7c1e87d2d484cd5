// Package session hosts many wizards behind opaque session identifiers.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"caslkey/internal/session/metrics"
	"caslkey/internal/wizard"
	id "caslkey/pkg/domain"
	dErrors "caslkey/pkg/domain-errors"
	"caslkey/pkg/platform/sentinel"
)

const (
	DefaultIdleTTL         = 30 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// Factory builds the wizard for a session. Wizards built for the same ID
// must share saved progress so an evicted session can be resumed.
type Factory func(ctx context.Context, sid id.SessionID) (*wizard.Wizard, error)

// Session is one hosted wizard.
type Session struct {
	ID        id.SessionID
	Wizard    *wizard.Wizard
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen is the time of the last Get.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager keeps live sessions in memory and closes the ones left idle.
type Manager struct {
	factory  Factory
	idleTTL  time.Duration
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu       sync.Mutex
	sessions map[id.SessionID]*Session
}

type Option func(*Manager)

// WithIdleTTL overrides how long a session may sit unused.
func WithIdleTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.idleTTL = d
		}
	}
}

func WithCleanupInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

func NewManager(factory Factory, opts ...Option) (*Manager, error) {
	if factory == nil {
		return nil, fmt.Errorf("session factory is required")
	}
	m := &Manager{
		factory:  factory,
		idleTTL:  DefaultIdleTTL,
		interval: DefaultCleanupInterval,
		now:      time.Now,
		logger:   slog.Default(),
		sessions: make(map[id.SessionID]*Session),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Create starts a fresh session.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	sid := id.NewSessionID()
	w, err := m.factory(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("build wizard: %w", err)
	}
	s := m.add(sid, w)
	if m.metrics != nil {
		m.metrics.IncrementCreated()
	}
	m.logger.InfoContext(ctx, "session created", "session_id", sid.String())
	return s, nil
}

func (m *Manager) add(sid id.SessionID, w *wizard.Wizard) *Session {
	now := m.now()
	s := &Session{ID: sid, Wizard: w, CreatedAt: now, lastSeen: now}
	m.mu.Lock()
	m.sessions[sid] = s
	n := len(m.sessions)
	m.mu.Unlock()
	if m.metrics != nil {
		m.metrics.SetActive(n)
	}
	return s
}

// Get returns a live session. A session evicted from memory is rebuilt when
// its saved progress still exists; otherwise the error wraps
// sentinel.ErrNotFound.
func (m *Manager) Get(ctx context.Context, sid id.SessionID) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sid]
	m.mu.Unlock()
	if ok {
		s.touch(m.now())
		return s, nil
	}
	return m.resume(ctx, sid)
}

func (m *Manager) resume(ctx context.Context, sid id.SessionID) (*Session, error) {
	w, err := m.factory(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("build wizard: %w", err)
	}
	restored, err := w.Restore(ctx)
	if err != nil || !restored {
		w.Close()
		if err != nil {
			return nil, err
		}
		return nil, notFound(sid)
	}

	m.mu.Lock()
	if existing, ok := m.sessions[sid]; ok {
		// lost a race with a concurrent resume
		m.mu.Unlock()
		w.Close()
		existing.touch(m.now())
		return existing, nil
	}
	m.mu.Unlock()

	s := m.add(sid, w)
	if m.metrics != nil {
		m.metrics.IncrementResumed()
	}
	m.logger.InfoContext(ctx, "session resumed from saved progress", "session_id", sid.String())
	return s, nil
}

// Remove closes and forgets a session. It reports whether one existed.
func (m *Manager) Remove(sid id.SessionID) bool {
	m.mu.Lock()
	s, ok := m.sessions[sid]
	delete(m.sessions, sid)
	n := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.Wizard.Close()
	if m.metrics != nil {
		m.metrics.SetActive(n)
	}
	return true
}

// Len is the number of sessions in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start expires idle sessions periodically until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.RunOnce(m.now()); n > 0 {
				m.logger.InfoContext(ctx, "expired idle sessions", "count", n)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce closes every session idle longer than the idle TTL at now and
// returns how many were dropped. Their saved progress is left in place.
func (m *Manager) RunOnce(now time.Time) int {
	var expired []*Session
	m.mu.Lock()
	for sid, s := range m.sessions {
		if now.Sub(s.LastSeen()) > m.idleTTL {
			expired = append(expired, s)
			delete(m.sessions, sid)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, s := range expired {
		s.Wizard.Close()
	}
	if m.metrics != nil {
		m.metrics.SetActive(n)
		m.metrics.AddExpired(len(expired))
	}
	return len(expired)
}

// Close closes every session.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[id.SessionID]*Session)
	m.mu.Unlock()
	for _, s := range all {
		s.Wizard.Close()
	}
	if m.metrics != nil {
		m.metrics.SetActive(0)
	}
}

func notFound(sid id.SessionID) error {
	return dErrors.Wrap(fmt.Errorf("session %s: %w", sid, sentinel.ErrNotFound), dErrors.CodeNotFound, "Session not found")
}
