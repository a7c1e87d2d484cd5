// Package guest holds the data a guest supplies to the CASL Key wizard and
// the verification signals accumulated for them during a session.
package guest

import (
	"maps"
	"time"

	"caslkey/contracts/caslapi"
	id "caslkey/pkg/domain"
)

// Step indexes the four wizard pages.
type Step int

const (
	StepIdentification Step = iota
	StepBooking
	StepStayIntent
	StepAgreement
)

// LastStep is the step whose advance triggers submission.
const LastStep = StepAgreement

var stepTitles = [...]string{
	StepIdentification: "User Identification",
	StepBooking:        "Booking Info",
	StepStayIntent:     "Stay Intent",
	StepAgreement:      "Agreement",
}

func (s Step) Valid() bool { return s >= StepIdentification && s <= LastStep }

func (s Step) Title() string {
	if !s.Valid() {
		return ""
	}
	return stepTitles[s]
}

// Steps lists every step in order.
func Steps() []Step {
	return []Step{StepIdentification, StepBooking, StepStayIntent, StepAgreement}
}

type Platform string

const (
	PlatformAirbnb  Platform = "Airbnb"
	PlatformVrbo    Platform = "Vrbo"
	PlatformBooking Platform = "Booking.com"
	PlatformOther   Platform = "Other"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformAirbnb, PlatformVrbo, PlatformBooking, PlatformOther:
		return true
	}
	return false
}

type Purpose string

const (
	PurposeBusiness        Purpose = "Business"
	PurposeFamilyVisit     Purpose = "Family Visit"
	PurposeVacation        Purpose = "Vacation"
	PurposeSpecialOccasion Purpose = "Special Occasion"
	PurposeRelocation      Purpose = "Relocation"
	PurposeMedicalStay     Purpose = "Medical Stay"
	PurposeOther           Purpose = "Other"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeBusiness, PurposeFamilyVisit, PurposeVacation, PurposeSpecialOccasion,
		PurposeRelocation, PurposeMedicalStay, PurposeOther:
		return true
	}
	return false
}

// Purposes lists the selectable stay purposes in display order.
func Purposes() []Purpose {
	return []Purpose{
		PurposeBusiness, PurposeFamilyVisit, PurposeVacation, PurposeSpecialOccasion,
		PurposeRelocation, PurposeMedicalStay, PurposeOther,
	}
}

// OtherPlatformType qualifies OtherPlatformProfile.
type OtherPlatformType string

const (
	OtherPlatformBooking     OtherPlatformType = "booking"
	OtherPlatformTripadvisor OtherPlatformType = "tripadvisor"
	OtherPlatformHomeaway    OtherPlatformType = "homeaway"
	OtherPlatformOther       OtherPlatformType = "other"
)

func (t OtherPlatformType) Valid() bool {
	switch t {
	case OtherPlatformBooking, OtherPlatformTripadvisor, OtherPlatformHomeaway, OtherPlatformOther:
		return true
	}
	return false
}

// FormData is the guest's answers. Dates are calendar dates in YYYY-MM-DD.
type FormData struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone" yaml:"phone"`
	Address string `json:"address" yaml:"address"`

	AirbnbProfile            string            `json:"airbnbProfile" yaml:"airbnbProfile"`
	VrboProfile              string            `json:"vrboProfile" yaml:"vrboProfile"`
	OtherPlatformProfile     string            `json:"otherPlatformProfile" yaml:"otherPlatformProfile"`
	OtherPlatformType        OtherPlatformType `json:"otherPlatformType" yaml:"otherPlatformType"`
	ConsentToBackgroundCheck bool              `json:"consentToBackgroundCheck" yaml:"consentToBackgroundCheck"`

	Platform     Platform `json:"platform" yaml:"platform"`
	ListingLink  string   `json:"listingLink" yaml:"listingLink"`
	CheckInDate  string   `json:"checkInDate" yaml:"checkInDate"`
	CheckOutDate string   `json:"checkOutDate" yaml:"checkOutDate"`

	StayPurpose        Purpose `json:"stayPurpose" yaml:"stayPurpose"`
	OtherPurpose       string  `json:"otherPurpose" yaml:"otherPurpose"`
	TotalGuests        int     `json:"totalGuests" yaml:"totalGuests"`
	ChildrenUnder12    bool    `json:"childrenUnder12" yaml:"childrenUnder12"`
	NonOvernightGuests bool    `json:"nonOvernightGuests" yaml:"nonOvernightGuests"`
	TravelingNearHome  bool    `json:"travelingNearHome" yaml:"travelingNearHome"`
	ZipCode            string  `json:"zipCode" yaml:"zipCode"`
	UsedSTRBefore      bool    `json:"usedSTRBefore" yaml:"usedSTRBefore"`
	PreviousStayLinks  string  `json:"previousStayLinks" yaml:"previousStayLinks"`

	AgreeToRules       bool `json:"agreeToRules" yaml:"agreeToRules"`
	AgreeNoParties     bool `json:"agreeNoParties" yaml:"agreeNoParties"`
	UnderstandFlagging bool `json:"understandFlagging" yaml:"understandFlagging"`
}

// NewFormData returns a blank form: one guest, prior STR use assumed.
func NewFormData() FormData {
	return FormData{
		TotalGuests:   1,
		UsedSTRBefore: true,
	}
}

// HasPlatformProfile reports whether any rental-platform profile link was given.
func (f FormData) HasPlatformProfile() bool {
	return f.AirbnbProfile != "" || f.VrboProfile != "" || f.OtherPlatformProfile != ""
}

type VerificationType string

const (
	VerificationNone         VerificationType = ""
	VerificationExisting     VerificationType = "existing"
	VerificationScreenshot   VerificationType = "screenshot"
	VerificationGovernmentID VerificationType = "government-id"
	VerificationPhone        VerificationType = "phone"
	VerificationSocial       VerificationType = "social"
)

type BackgroundCheckOutcome string

const (
	BackgroundCheckNone   BackgroundCheckOutcome = ""
	BackgroundCheckPassed BackgroundCheckOutcome = "passed"
	BackgroundCheckFailed BackgroundCheckOutcome = "failed"
)

// ScreenshotStatus is the backend review status of an uploaded screenshot.
type ScreenshotStatus string

const (
	ScreenshotNotSubmitted ScreenshotStatus = caslapi.StatusNotSubmitted
	ScreenshotProcessing   ScreenshotStatus = caslapi.StatusProcessing
	ScreenshotVerified     ScreenshotStatus = caslapi.StatusVerified
	ScreenshotManualReview ScreenshotStatus = caslapi.StatusManualReview
	ScreenshotRejected     ScreenshotStatus = caslapi.StatusRejected
)

// Accepted reports a status that counts as proof of identity.
func (s ScreenshotStatus) Accepted() bool {
	return s == ScreenshotVerified || s == ScreenshotManualReview
}

// Signal records the outcome of one verification channel.
type Signal struct {
	Verified bool              `json:"verified"`
	At       time.Time         `json:"at,omitzero"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// VerificationState accumulates trust signals for one session. It is never
// persisted with the form snapshot; a user lookup re-derives it.
type VerificationState struct {
	CASLKeyID          id.CASLKeyID           `json:"caslKeyId,omitempty"`
	IsExistingUser     bool                   `json:"isExistingUser"`
	IsVerified         bool                   `json:"isVerified"`
	VerificationType   VerificationType       `json:"verificationType,omitempty"`
	PlatformData       *caslapi.PlatformData  `json:"platformData,omitempty"`
	IDVerification     Signal                 `json:"idVerification"`
	PhoneVerification  Signal                 `json:"phoneVerification"`
	SocialVerification Signal                 `json:"socialVerification"`
	BackgroundCheck    BackgroundCheckOutcome `json:"backgroundCheckStatus,omitempty"`
	IsChecking         bool                   `json:"isChecking"`
	Error              string                 `json:"error,omitempty"`
}

// Clone returns a copy sharing no mutable memory with v.
func (v VerificationState) Clone() VerificationState {
	out := v
	if v.PlatformData != nil {
		pd := *v.PlatformData
		out.PlatformData = &pd
	}
	out.IDVerification = v.IDVerification.clone()
	out.PhoneVerification = v.PhoneVerification.clone()
	out.SocialVerification = v.SocialVerification.clone()
	return out
}

func (s Signal) clone() Signal {
	s.Metadata = maps.Clone(s.Metadata)
	return s
}
