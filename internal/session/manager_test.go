package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"caslkey/internal/guest"
	"caslkey/internal/snapshot"
	"caslkey/internal/snapshot/store"
	"caslkey/internal/wizard"
	id "caslkey/pkg/domain"
	dErrors "caslkey/pkg/domain-errors"
	"caslkey/pkg/platform/sentinel"
)

type ManagerSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	store   *store.Memory
	built   int
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	s.built = 0
	clock := func() time.Time { return s.now }
	s.store = store.NewMemory().WithClock(clock)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory := func(_ context.Context, sid id.SessionID) (*wizard.Wizard, error) {
		s.built++
		repo := snapshot.NewRepository(s.store,
			snapshot.WithPrefix(snapshot.DefaultPrefix+sid.String()+":"),
			snapshot.WithClock(clock),
		)
		return wizard.New(nil, repo, wizard.WithLogger(logger), wizard.WithClock(clock)), nil
	}
	var err error
	s.manager, err = NewManager(factory, WithIdleTTL(10*time.Minute), WithClock(clock), WithLogger(logger))
	s.Require().NoError(err)
}

func (s *ManagerSuite) TearDownTest() {
	s.manager.Close()
}

func (s *ManagerSuite) TestNewManagerRequiresFactory() {
	_, err := NewManager(nil)
	s.Require().Error(err)
}

func (s *ManagerSuite) TestCreateAndGet() {
	created, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)
	s.False(created.ID.IsNil())
	s.Equal(1, s.manager.Len())

	s.now = s.now.Add(time.Minute)
	got, err := s.manager.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Same(created, got)
	s.Equal(s.now, got.LastSeen())
	s.Equal(1, s.built)
}

func (s *ManagerSuite) TestGetUnknownSession() {
	_, err := s.manager.Get(s.ctx, id.NewSessionID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.True(errors.Is(err, sentinel.ErrNotFound))
	s.Zero(s.manager.Len())
}

func (s *ManagerSuite) TestRemove() {
	created, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)

	s.True(s.manager.Remove(created.ID))
	s.False(s.manager.Remove(created.ID))
	s.Zero(s.manager.Len())
}

func (s *ManagerSuite) TestRunOnceExpiresIdleSessions() {
	idle, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)
	s.now = s.now.Add(8 * time.Minute)
	active, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)

	s.now = s.now.Add(5 * time.Minute)
	s.Equal(1, s.manager.RunOnce(s.now))
	s.Equal(1, s.manager.Len())

	_, err = s.manager.Get(s.ctx, active.ID)
	s.Require().NoError(err)
	_, err = s.manager.Get(s.ctx, idle.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound), "nothing was saved, so nothing to resume")
}

func (s *ManagerSuite) TestExpiredSessionResumesFromSavedProgress() {
	created, err := s.manager.Create(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(created.Wizard.SetField(s.ctx, guest.FieldName, "Jane Doe"))

	s.now = s.now.Add(11 * time.Minute)
	s.Require().Equal(1, s.manager.RunOnce(s.now))

	resumed, err := s.manager.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.NotSame(created, resumed)
	state := resumed.Wizard.State()
	s.Equal("Jane Doe", state.Form.Name)
	s.True(state.Restored)
	s.Equal(1, s.manager.Len())
}

func (s *ManagerSuite) TestStartStopsWithContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.manager.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.FailNow("cleanup loop did not stop")
	}
}
