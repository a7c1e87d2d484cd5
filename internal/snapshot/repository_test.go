package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"caslkey/contracts/caslapi"
	"caslkey/internal/guest"
	"caslkey/internal/snapshot/store"
	"caslkey/internal/trust"
	"caslkey/pkg/platform/sentinel"
)

type RepositorySuite struct {
	suite.Suite
	ctx   context.Context
	now   time.Time
	store *store.Memory
	repo  *Repository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }
	s.store = store.NewMemory().WithClock(clock)
	s.repo = NewRepository(s.store, WithPrefix("test_"), WithClock(clock))
}

func sampleForm() guest.FormData {
	f := guest.NewFormData()
	f.Name = "Jane Doe"
	f.Email = "jane@example.com"
	f.Platform = guest.PlatformAirbnb
	f.CheckInDate = "2026-07-01"
	f.CheckOutDate = "2026-07-05"
	f.StayPurpose = guest.PurposeOther
	f.OtherPurpose = "Film shoot"
	f.TotalGuests = 3
	return f
}

func (s *RepositorySuite) TestRoundTripWithinMaxAge() {
	form := sampleForm()
	s.Require().NoError(s.repo.SaveForm(s.ctx, form, guest.StepStayIntent))

	s.now = s.now.Add(23 * time.Hour)
	snap, found, err := s.repo.LoadForm(s.ctx)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(form, snap.FormData)
	s.Equal(guest.StepStayIntent, snap.CurrentStep)
	s.Equal(time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC), snap.SavedAt().UTC())
}

func (s *RepositorySuite) TestStaleSnapshotIsDiscarded() {
	s.Require().NoError(s.repo.SaveForm(s.ctx, sampleForm(), guest.StepBooking))

	// Bypass the backend TTL so the repository's own age check is exercised.
	raw, err := s.store.Get(s.ctx, "test_saved_form_data")
	s.Require().NoError(err)
	s.Require().NoError(s.store.Set(s.ctx, "test_saved_form_data", raw, 0))

	s.now = s.now.Add(24*time.Hour + time.Minute)
	_, found, err := s.repo.LoadForm(s.ctx)
	s.Require().NoError(err)
	s.False(found)

	_, err = s.store.Get(s.ctx, "test_saved_form_data")
	s.True(errors.Is(err, sentinel.ErrNotFound), "stale snapshot should be deleted")
}

func (s *RepositorySuite) TestCorruptSnapshotIsDiscarded() {
	s.Run("malformed JSON", func() {
		s.Require().NoError(s.store.Set(s.ctx, "test_saved_form_data", []byte("{not json"), 0))
		_, found, err := s.repo.LoadForm(s.ctx)
		s.Require().NoError(err)
		s.False(found)
		_, err = s.store.Get(s.ctx, "test_saved_form_data")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("step out of range", func() {
		body := []byte(`{"formData":{},"currentStep":9,"timestamp":` + "1781082000000" + `}`)
		s.Require().NoError(s.store.Set(s.ctx, "test_saved_form_data", body, 0))
		_, found, err := s.repo.LoadForm(s.ctx)
		s.Require().NoError(err)
		s.False(found)
	})
}

func (s *RepositorySuite) TestMissingSnapshot() {
	_, found, err := s.repo.LoadForm(s.ctx)
	s.Require().NoError(err)
	s.False(found)
}

func (s *RepositorySuite) TestWireShape() {
	s.Require().NoError(s.repo.SaveForm(s.ctx, sampleForm(), guest.StepAgreement))
	raw, err := s.store.Get(s.ctx, "test_saved_form_data")
	s.Require().NoError(err)
	s.Contains(string(raw), `"currentStep":3`)
	s.Contains(string(raw), `"formData":{`)
	s.Contains(string(raw), `"timestamp":1781082000000`)
}

func (s *RepositorySuite) TestPreview() {
	preview := trust.TrustPreview{
		CASLKeyID:  "CK7QX2M",
		TrustLevel: trust.LevelReview,
		ScoreRange: "70-84",
		Flags:      caslapi.Flags{LocalBooking: true},
	}
	s.Require().NoError(s.repo.SavePreview(s.ctx, preview))

	got, found, err := s.repo.LoadPreview(s.ctx)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(preview, got)
}

func (s *RepositorySuite) TestClearRemovesFormAndPreview() {
	s.Require().NoError(s.repo.SaveForm(s.ctx, sampleForm(), guest.StepBooking))
	s.Require().NoError(s.repo.SavePreview(s.ctx, trust.TrustPreview{CASLKeyID: trust.PendingID}))

	s.Require().NoError(s.repo.Clear(s.ctx))

	_, found, _ := s.repo.LoadForm(s.ctx)
	s.False(found)
	_, found, _ = s.repo.LoadPreview(s.ctx)
	s.False(found)
}

func (s *RepositorySuite) TestPrefixesIsolateGuests() {
	other := NewRepository(s.store, WithPrefix("other_"), WithClock(func() time.Time { return s.now }))
	s.Require().NoError(s.repo.SaveForm(s.ctx, sampleForm(), guest.StepBooking))

	_, found, err := other.LoadForm(s.ctx)
	s.Require().NoError(err)
	s.False(found)
}
