package trust

import (
	"caslkey/contracts/caslapi"
	"caslkey/internal/guest"
)

// Preview projects the current form and signals into the host-facing
// preview. It reads no PII fields.
func Preview(form guest.FormData, state guest.VerificationState, result Result) TrustPreview {
	id := state.CASLKeyID.String()
	if id == "" {
		id = PendingID
	}
	return TrustPreview{
		CASLKeyID:                id,
		TrustLevel:               result.Level,
		ScoreRange:               ScoreRange(result.Score),
		PlatformVerified:         state.VerificationType != guest.VerificationNone,
		BackgroundCheckCompleted: state.BackgroundCheck != guest.BackgroundCheckNone,
		Flags:                    flagsFor(form.TravelingNearHome, form.TotalGuests, form.UsedSTRBefore),
	}
}

// HostSummary redacts a submission record down to what a host may see: the
// trust band, channel booleans and booking flags.
func HostSummary(data caslapi.VerificationData) caslapi.HostSummary {
	v := data.Verification
	stay := data.StayDetails
	summary := caslapi.HostSummary{
		CASLKeyID:                data.CASLKeyID,
		TrustLevel:               v.TrustLevel,
		ScoreRange:               ScoreRange(v.Score),
		PlatformVerified:         v.VerificationType != "",
		BackgroundCheckCompleted: v.BackgroundCheckStatus != "",
		IDVerified:               v.IDVerificationStatus,
		PhoneVerified:            v.PhoneVerificationStatus,
		SocialVerified:           v.SocialVerificationStatus,
		Flags:                    flagsFor(stay.TravelingNearHome, stay.TotalGuests, stay.PreviousExperience),
		GuestCount:               stay.TotalGuests,
	}
	nights, ok := StayNights(guest.FormData{
		CheckInDate:  data.Booking.CheckInDate,
		CheckOutDate: data.Booking.CheckOutDate,
	})
	if ok && nights > 0 {
		summary.StayNights = nights
	}
	return summary
}

func flagsFor(nearHome bool, guests int, usedSTRBefore bool) caslapi.Flags {
	return caslapi.Flags{
		LocalBooking:   nearHome,
		HighGuestCount: guests > highGuestCount,
		NoSTRHistory:   !usedSTRBefore,
	}
}
