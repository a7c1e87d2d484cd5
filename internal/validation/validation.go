// Package validation holds the per-step rules of the CASL Key wizard. Every
// function here is pure.
package validation

import (
	"regexp"
	"strings"

	"caslkey/internal/guest"
)

// ErrorMap maps a field name to its message. A missing key means valid.
type ErrorMap map[string]string

// FieldVerification keys the single proof-of-identity error on step 0.
const FieldVerification = "verification"

const (
	MsgNameRequired       = "Name is required"
	MsgEmailRequired      = "Email is required"
	MsgEmailInvalid       = "Please enter a valid email address"
	MsgPhoneRequired      = "Phone number is required"
	MsgAddressRequired    = "Address is required"
	MsgVerificationPath   = "Either a platform profile, screenshot verification, or consent to background check is required"
	MsgPlatformRequired   = "Please select a platform"
	MsgListingRequired    = "Listing link is required"
	MsgCheckInRequired    = "Check-in date is required"
	MsgCheckOutRequired   = "Check-out date is required"
	MsgDateInvalid        = "Please enter a valid date"
	MsgCheckOutOrder      = "Check-out date must be after check-in date"
	MsgPurposeRequired    = "Please select a purpose"
	MsgOtherPurpose       = "Please specify your purpose"
	MsgGuestsMin          = "At least one guest is required"
	MsgZipRequired        = "ZIP code is required"
	MsgAgreeRules         = "You must agree to follow property rules"
	MsgAgreeNoParties     = "You must agree to the no unauthorized parties policy"
	MsgUnderstandFlagging = "You must acknowledge the flagging policy"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateStep checks the fields shown on step. screenshot is the review
// status of any uploaded screenshot.
func ValidateStep(step guest.Step, form guest.FormData, state guest.VerificationState, screenshot guest.ScreenshotStatus) ErrorMap {
	errs := ErrorMap{}
	switch step {
	case guest.StepIdentification:
		validateIdentification(errs, form, state, screenshot)
	case guest.StepBooking:
		validateBooking(errs, form)
	case guest.StepStayIntent:
		validateStayIntent(errs, form)
	case guest.StepAgreement:
		validateAgreement(errs, form)
	}
	return errs
}

// IsStepValid reports whether every message in errs is empty.
func IsStepValid(errs ErrorMap) bool {
	for _, msg := range errs {
		if msg != "" {
			return false
		}
	}
	return true
}

func validateIdentification(errs ErrorMap, form guest.FormData, state guest.VerificationState, screenshot guest.ScreenshotStatus) {
	requireText(errs, guest.FieldName, form.Name, MsgNameRequired)
	switch {
	case blank(form.Email):
		errs[guest.FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(form.Email):
		errs[guest.FieldEmail] = MsgEmailInvalid
	}
	requireText(errs, guest.FieldPhone, form.Phone, MsgPhoneRequired)
	requireText(errs, guest.FieldAddress, form.Address, MsgAddressRequired)

	if !form.HasPlatformProfile() &&
		!form.ConsentToBackgroundCheck &&
		!state.IsVerified &&
		!screenshot.Accepted() {
		errs[FieldVerification] = MsgVerificationPath
	}
}

func validateBooking(errs ErrorMap, form guest.FormData) {
	if form.Platform == "" {
		errs[guest.FieldPlatform] = MsgPlatformRequired
	}
	requireText(errs, guest.FieldListingLink, form.ListingLink, MsgListingRequired)

	checkIn, inOK := parseRequiredDate(errs, guest.FieldCheckInDate, form.CheckInDate, MsgCheckInRequired)
	checkOut, outOK := parseRequiredDate(errs, guest.FieldCheckOutDate, form.CheckOutDate, MsgCheckOutRequired)
	if inOK && outOK && !checkOut.After(checkIn) {
		errs[guest.FieldCheckOutDate] = MsgCheckOutOrder
	}
}

func validateStayIntent(errs ErrorMap, form guest.FormData) {
	if form.StayPurpose == "" {
		errs[guest.FieldStayPurpose] = MsgPurposeRequired
	} else if form.StayPurpose == guest.PurposeOther && blank(form.OtherPurpose) {
		errs[guest.FieldOtherPurpose] = MsgOtherPurpose
	}
	if form.TotalGuests < 1 {
		errs[guest.FieldTotalGuests] = MsgGuestsMin
	}
	if form.TravelingNearHome && blank(form.ZipCode) {
		errs[guest.FieldZipCode] = MsgZipRequired
	}
}

func validateAgreement(errs ErrorMap, form guest.FormData) {
	if !form.AgreeToRules {
		errs[guest.FieldAgreeToRules] = MsgAgreeRules
	}
	if !form.AgreeNoParties {
		errs[guest.FieldAgreeNoParties] = MsgAgreeNoParties
	}
	if !form.UnderstandFlagging {
		errs[guest.FieldUnderstandFlagging] = MsgUnderstandFlagging
	}
}

func requireText(errs ErrorMap, field, value, msg string) {
	if blank(value) {
		errs[field] = msg
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
