package validation

import (
	"time"

	"caslkey/internal/guest"
)

func parseRequiredDate(errs ErrorMap, field, value, requiredMsg string) (time.Time, bool) {
	if blank(value) {
		errs[field] = requiredMsg
		return time.Time{}, false
	}
	d, ok := guest.ParseDate(value)
	if !ok {
		errs[field] = MsgDateInvalid
		return time.Time{}, false
	}
	return d, true
}
