// Package caslapi holds the JSON shapes exchanged with the CASL Key
// verification backend.
package caslapi

import "time"

// Screenshot review statuses reported by GET /status.
const (
	StatusNotSubmitted = "NOT_SUBMITTED"
	StatusProcessing   = "PROCESSING"
	StatusVerified     = "VERIFIED"
	StatusManualReview = "MANUAL_REVIEW"
	StatusRejected     = "REJECTED"
)

// Channel outcomes reported by the government-ID, social and background-check endpoints.
const (
	OutcomePending  = "pending"
	OutcomeVerified = "verified"
	OutcomeFailed   = "failed"
	OutcomePassed   = "passed"
)

type UserCheckRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UserCheckResponse struct {
	Found    bool      `json:"found"`
	UserData *UserData `json:"userData,omitempty"`
}

type UserData struct {
	CASLKeyID          string          `json:"caslKeyId"`
	IsVerified         bool            `json:"isVerified"`
	PlatformData       *PlatformData   `json:"platformData,omitempty"`
	IDVerificationData *IDVerification `json:"idVerificationData,omitempty"`
}

// PlatformData describes a guest's rental-platform history.
type PlatformData struct {
	Platform    string  `json:"platform,omitempty"`
	ReviewCount int     `json:"reviewCount"`
	Rating      float64 `json:"rating,omitempty"`
	MemberSince string  `json:"memberSince,omitempty"`
	ProfileName string  `json:"profileName,omitempty"`
}

type IDVerification struct {
	Verified  bool      `json:"verified"`
	Method    string    `json:"method,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

type UploadRequest struct {
	UserID    string `json:"userId"`
	ImageData string `json:"imageData"`
}

// AckResponse answers POST /upload and POST /verify. A missing accepted
// field counts as accepted.
type AckResponse struct {
	Accepted *bool  `json:"accepted,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Rejected reports an explicit accepted=false.
func (r AckResponse) Rejected() bool {
	return r.Accepted != nil && !*r.Accepted
}

type StatusResponse struct {
	Status              string        `json:"status"`
	VerificationDetails *PlatformData `json:"verificationDetails,omitempty"`
	Message             string        `json:"message,omitempty"`
}

type GovernmentIDRequest struct {
	UserID      string `json:"userId"`
	IDImage     string `json:"idImage"`
	SelfieImage string `json:"selfieImage"`
}

type ChannelResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type PhoneCodeRequest struct {
	UserID      string `json:"userId"`
	PhoneNumber string `json:"phoneNumber"`
}

type PhoneCodeResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message,omitempty"`
}

type PhoneVerifyRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

type PhoneVerifyResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

type SocialVerifyRequest struct {
	UserID     string `json:"userId"`
	Platform   string `json:"platform"`
	ProfileURL string `json:"profileUrl"`
}

type BackgroundCheckRequest struct {
	CASLKeyID string `json:"caslKeyId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type BackgroundCheckResponse struct {
	CheckID string `json:"checkId"`
	Status  string `json:"status"`
}

// ErrorBody is the backend error envelope; Message is surfaced to the guest.
type ErrorBody struct {
	Message string `json:"message"`
}

// Submission is the POST /verify payload.
type Submission struct {
	VerificationData
	HostSummary HostSummary `json:"hostSummary"`
}

// VerificationData is the complete record of one finished application.
type VerificationData struct {
	CASLKeyID    string       `json:"caslKeyId"`
	User         User         `json:"user"`
	Verification Verification `json:"verification"`
	Booking      Booking      `json:"booking"`
	StayDetails  StayDetails  `json:"stayDetails"`
}

type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Adjustment struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

type Verification struct {
	Score                    int          `json:"score"`
	TrustLevel               string       `json:"trustLevel"`
	VerificationType         string       `json:"verificationType,omitempty"`
	BackgroundCheckStatus    string       `json:"backgroundCheckStatus,omitempty"`
	IDVerificationStatus     bool         `json:"idVerificationStatus"`
	PhoneVerificationStatus  bool         `json:"phoneVerificationStatus"`
	SocialVerificationStatus bool         `json:"socialVerificationStatus"`
	Adjustments              []Adjustment `json:"adjustments"`
	VerificationDate         time.Time    `json:"verificationDate"`
}

type Booking struct {
	Platform     string `json:"platform"`
	ListingLink  string `json:"listingLink"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

type StayDetails struct {
	Purpose            string `json:"purpose"`
	TotalGuests        int    `json:"totalGuests"`
	ChildrenUnder12    bool   `json:"childrenUnder12"`
	NonOvernightGuests bool   `json:"nonOvernightGuests"`
	TravelingNearHome  bool   `json:"travelingNearHome"`
	ZipCode            string `json:"zipCode,omitempty"`
	PreviousExperience bool   `json:"previousExperience"`
	PreviousStayLinks  string `json:"previousStayLinks,omitempty"`
}

// HostSummary is the redacted view shared with hosts. It never carries
// name, email, phone or address.
type HostSummary struct {
	CASLKeyID                string `json:"caslKeyId"`
	TrustLevel               string `json:"trustLevel"`
	ScoreRange               string `json:"scoreRange"`
	PlatformVerified         bool   `json:"platformVerified"`
	BackgroundCheckCompleted bool   `json:"backgroundCheckCompleted"`
	IDVerified               bool   `json:"idVerified"`
	PhoneVerified            bool   `json:"phoneVerified"`
	SocialVerified           bool   `json:"socialVerified"`
	Flags                    Flags  `json:"flags"`
	StayNights               int    `json:"stayNights,omitempty"`
	GuestCount               int    `json:"guestCount"`
}

// Flags mirrors the booking risk signals hosts care about.
type Flags struct {
	LocalBooking   bool `json:"localBooking"`
	HighGuestCount bool `json:"highGuestCount"`
	NoSTRHistory   bool `json:"noSTRHistory"`
}
