package guest

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t's calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// CalendarDay maps an instant to midnight UTC of its local calendar date,
// so two days always differ by an exact multiple of 24h.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b. Both must come from
// ParseDate or CalendarDay.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
