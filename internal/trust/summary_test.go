package trust

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"caslkey/contracts/caslapi"
	"caslkey/internal/guest"
)

type SummarySuite struct {
	suite.Suite
}

func TestSummarySuite(t *testing.T) {
	suite.Run(t, new(SummarySuite))
}

func (s *SummarySuite) TestPreviewPendingID() {
	form := guest.NewFormData()
	form.TotalGuests = 7
	form.UsedSTRBefore = false

	preview := Preview(form, guest.VerificationState{}, Result{Score: 72, Level: LevelReview})
	s.Equal(PendingID, preview.CASLKeyID)
	s.Equal(LevelReview, preview.TrustLevel)
	s.Equal("70-84", preview.ScoreRange)
	s.False(preview.PlatformVerified)
	s.False(preview.BackgroundCheckCompleted)
	s.Equal(caslapi.Flags{HighGuestCount: true, NoSTRHistory: true}, preview.Flags)
}

func (s *SummarySuite) TestPreviewAfterLookup() {
	form := guest.NewFormData()
	form.TravelingNearHome = true
	form.ZipCode = "94110"
	state := guest.VerificationState{
		CASLKeyID:        "CK7QX2M",
		VerificationType: guest.VerificationExisting,
		BackgroundCheck:  guest.BackgroundCheckFailed,
	}

	preview := Preview(form, state, Result{Score: 97, Level: LevelVerified})
	s.Equal("CK7QX2M", preview.CASLKeyID)
	s.True(preview.PlatformVerified)
	s.True(preview.BackgroundCheckCompleted)
	s.True(preview.Flags.LocalBooking)
	s.False(preview.Flags.HighGuestCount)
}

func (s *SummarySuite) TestHostSummaryCarriesNoContactDetails() {
	data := caslapi.VerificationData{
		CASLKeyID: "CK7QX2M",
		User: caslapi.User{
			Name:    "Jamie Rivera",
			Email:   "jamie@example.com",
			Phone:   "+14155550100",
			Address: "1 Market St",
		},
		Verification: caslapi.Verification{
			Score:                   64,
			TrustLevel:              string(LevelManualReview),
			VerificationType:        string(guest.VerificationScreenshot),
			PhoneVerificationStatus: true,
			VerificationDate:        time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		Booking: caslapi.Booking{CheckInDate: "2026-07-01", CheckOutDate: "2026-07-04"},
		StayDetails: caslapi.StayDetails{
			TotalGuests:        6,
			PreviousExperience: true,
		},
	}

	summary := HostSummary(data)
	s.Equal(caslapi.HostSummary{
		CASLKeyID:        "CK7QX2M",
		TrustLevel:       "manual_review",
		ScoreRange:       "50-69",
		PlatformVerified: true,
		PhoneVerified:    true,
		Flags:            caslapi.Flags{HighGuestCount: true},
		StayNights:       3,
		GuestCount:       6,
	}, summary)
}

func (s *SummarySuite) TestHostSummaryWithoutDates() {
	summary := HostSummary(caslapi.VerificationData{
		Verification: caslapi.Verification{Score: 40, TrustLevel: string(LevelNotEligible)},
	})
	s.Equal("Below 50", summary.ScoreRange)
	s.Zero(summary.StayNights)
	s.True(summary.Flags.NoSTRHistory)
}
