package trust

import (
	"strings"
	"time"

	"caslkey/internal/guest"
)

const (
	highGuestCount      = 5
	lastMinuteDays      = 2
	longStayNights      = 7
	wellReviewedReviews = 5
)

// Reason strings double as the presentation copy on the result page.
const (
	ReasonSpecialOccasion   = "Special occasion/birthday"
	ReasonLargeGroup        = "6+ guests"
	ReasonVisitors          = "Additional (non-overnight) visitors"
	ReasonNearHome          = "Booking within 20 miles of home"
	ReasonFirstTime         = "First-time STR guest"
	ReasonLastMinute        = "Booking within 48 hours of check-in"
	ReasonMinors            = "Group includes minors under 12"
	ReasonLongStay          = "Booking for over 7 nights"
	ReasonWellReviewed      = "Well-reviewed on platform"
	ReasonHasReviews        = "Has platform reviews"
	ReasonVerifiedID        = "Verified background check"
	ReasonPreviousStayLinks = "Previous stays provided with links"
)

// CalculateScore starts from 100, applies every rule that fires in a fixed
// order and clamps the total to [0, 100]. today is the evaluation date; only
// its calendar day matters.
func CalculateScore(form guest.FormData, state guest.VerificationState, today time.Time) Result {
	var adj []Adjustment
	add := func(cond bool, reason string, points int) {
		if cond {
			adj = append(adj, Adjustment{Reason: reason, Points: points})
		}
	}

	add(form.StayPurpose == guest.PurposeSpecialOccasion, ReasonSpecialOccasion, -5)
	add(form.TotalGuests > highGuestCount, ReasonLargeGroup, -3)
	add(form.NonOvernightGuests, ReasonVisitors, -2)
	add(form.TravelingNearHome, ReasonNearHome, -3)
	add(!form.UsedSTRBefore, ReasonFirstTime, -5)
	if days, ok := DaysUntilCheckIn(form, today); ok {
		add(days <= lastMinuteDays, ReasonLastMinute, -3)
	}
	add(form.ChildrenUnder12, ReasonMinors, 1)
	if nights, ok := StayNights(form); ok {
		add(nights > longStayNights, ReasonLongStay, 2)
	}
	if reviews := reviewCount(state); reviews > wellReviewedReviews {
		add(true, ReasonWellReviewed, 3)
	} else {
		add(reviews > 0, ReasonHasReviews, 1)
	}
	add(state.IDVerification.Verified, ReasonVerifiedID, 5)
	add(form.UsedSTRBefore && strings.TrimSpace(form.PreviousStayLinks) != "", ReasonPreviousStayLinks, 3)

	score := baseScore
	for _, a := range adj {
		score += a.Points
	}
	score = min(max(score, minScore), maxScore)

	if adj == nil {
		adj = []Adjustment{}
	}
	return Result{Score: score, Level: LevelFor(score), Adjustments: adj}
}

// DaysUntilCheckIn counts calendar days from today to check-in. It is false
// when no valid check-in date is set.
func DaysUntilCheckIn(form guest.FormData, today time.Time) (int, bool) {
	checkIn, ok := guest.ParseDate(form.CheckInDate)
	if !ok {
		return 0, false
	}
	return guest.DaysBetween(guest.CalendarDay(today), checkIn), true
}

// StayNights is false unless both booking dates are valid.
func StayNights(form guest.FormData) (int, bool) {
	checkIn, inOK := guest.ParseDate(form.CheckInDate)
	checkOut, outOK := guest.ParseDate(form.CheckOutDate)
	if !inOK || !outOK {
		return 0, false
	}
	return guest.DaysBetween(checkIn, checkOut), true
}

func reviewCount(state guest.VerificationState) int {
	if state.PlatformData == nil {
		return 0
	}
	return state.PlatformData.ReviewCount
}

// LevelFor maps a score to its band. Lower bounds are inclusive.
func LevelFor(score int) Level {
	switch {
	case score >= thresholdVerified:
		return LevelVerified
	case score >= thresholdReview:
		return LevelReview
	case score >= thresholdManualReview:
		return LevelManualReview
	default:
		return LevelNotEligible
	}
}

// ScoreRange renders the band of score as shown to hosts.
func ScoreRange(score int) string {
	switch LevelFor(score) {
	case LevelVerified:
		return "85-100"
	case LevelReview:
		return "70-84"
	case LevelManualReview:
		return "50-69"
	default:
		return "Below 50"
	}
}

var resultMessages = map[Level]string{
	LevelVerified:     "You're officially CASL Key Verified! Your trust badge is valid for 12 months and can be shared with any CASL Key host. Keep your badge active by booking responsibly.",
	LevelReview:       "You're almost there! While you're verified, your Trust Score indicates a few flags (e.g., local booking or large group). Hosts may ask additional questions.",
	LevelManualReview: "We're unable to approve your CASL Key Trust Pass at this time. You may reapply in 90 days or contact support to resolve outstanding concerns.",
	LevelNotEligible:  "Your application has been flagged. You cannot reapply for 90 days. Please contact CASL support for more information.",
}

// ResultMessage returns the narrative shown on the result page.
func ResultMessage(level Level) string {
	if msg, ok := resultMessages[level]; ok {
		return msg
	}
	return resultMessages[LevelNotEligible]
}

// BadgeLabel is the result-page badge text.
func BadgeLabel(level Level) string {
	switch level {
	case LevelVerified:
		return "Verified – Low Risk"
	case LevelReview:
		return "Verified – Review Recommended"
	case LevelManualReview:
		return "Not Approved"
	default:
		return "Flagged"
	}
}
