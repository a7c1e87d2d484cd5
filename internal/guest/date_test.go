package guest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-07-04")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "07/04/2026", "2026-13-01", "2026-02-30"} {
		_, ok := ParseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestDaysBetween_IgnoresTimeOfDayAndDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// Spans the March DST change, where wall-clock days are 23h long.
	late := time.Date(2026, 3, 7, 23, 30, 0, 0, ny)
	checkIn, _ := ParseDate("2026-03-09")
	assert.Equal(t, 2, DaysBetween(CalendarDay(late), checkIn))
}

func TestVerificationStateClone(t *testing.T) {
	v := VerificationState{}
	v.PhoneVerification = Signal{Verified: true, Metadata: map[string]string{"last4": "1234"}}
	c := v.Clone()
	c.PhoneVerification.Metadata["last4"] = "9999"
	assert.Equal(t, "1234", v.PhoneVerification.Metadata["last4"])
}
