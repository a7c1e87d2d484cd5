package wizard

import (
	"fmt"

	"caslkey/internal/guest"
	"caslkey/internal/trust"
	"caslkey/internal/validation"
)

// Progress marker statuses.
const (
	ProgressComplete = "complete"
	ProgressCurrent  = "current"
	ProgressUpcoming = "upcoming"
)

const (
	AlertInfo  = "info"
	AlertError = "error"
)

const (
	msgRestored     = "Your previous form data has been restored."
	msgNoDeductions = "No deductions applied."
	labelNext       = "Next"
	labelSubmit     = "Submit"
	labelProcessing = "Processing..."
)

// View is everything a client needs to draw the wizard. Render builds it
// from a State without side effects.
type View struct {
	Progress   []ProgressItem      `json:"progress,omitempty"`
	Alerts     []Alert             `json:"alerts"`
	Step       *StepView           `json:"step,omitempty"`
	Preview    *trust.TrustPreview `json:"trustPreview,omitempty"`
	Navigation *Navigation         `json:"navigation,omitempty"`
	Result     *ResultView         `json:"result,omitempty"`
	Channels   ChannelsState       `json:"channels"`
}

type ProgressItem struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

type Alert struct {
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Dismissable bool   `json:"dismissable"`
}

type StepView struct {
	Index             int         `json:"index"`
	Title             string      `json:"title"`
	Fields            []FieldView `json:"fields"`
	VerificationError string      `json:"verificationError,omitempty"`
}

// FieldView is one input. Hidden conditional fields are listed with
// Visible false so clients keep a stable layout.
type FieldView struct {
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Error   string `json:"error,omitempty"`
	Visible bool   `json:"visible"`
}

type Navigation struct {
	ShowBack    bool   `json:"showBack"`
	NextLabel   string `json:"nextLabel"`
	NextEnabled bool   `json:"nextEnabled"`
	Loading     bool   `json:"loading"`
}

type ResultView struct {
	Badge       string           `json:"badge"`
	TrustLevel  trust.Level      `json:"trustLevel"`
	Score       int              `json:"score"`
	Message     string           `json:"message"`
	Adjustments []AdjustmentView `json:"adjustments"`
	Note        string           `json:"note,omitempty"`
	StartOver   bool             `json:"startOver"`
}

type AdjustmentView struct {
	Reason string `json:"reason"`
	Points string `json:"points"`
}

// Render projects s into a View.
func Render(s State) View {
	v := View{Alerts: alerts(s), Channels: s.Channels}
	if s.Submitted && s.Result != nil {
		v.Result = renderResult(*s.Result)
		return v
	}

	for _, step := range guest.Steps() {
		status := ProgressUpcoming
		switch {
		case step < s.Step:
			status = ProgressComplete
		case step == s.Step:
			status = ProgressCurrent
		}
		v.Progress = append(v.Progress, ProgressItem{Index: int(step), Title: step.Title(), Status: status})
	}

	v.Step = renderStep(s)
	if s.Preview != nil {
		p := *s.Preview
		v.Preview = &p
	}

	label := labelNext
	if s.Step == guest.LastStep {
		label = labelSubmit
	}
	if s.Loading {
		label = labelProcessing
	}
	v.Navigation = &Navigation{
		ShowBack:    s.Step > guest.StepIdentification,
		NextLabel:   label,
		NextEnabled: s.Valid && !s.Loading,
		Loading:     s.Loading,
	}
	return v
}

func alerts(s State) []Alert {
	out := []Alert{}
	if s.Restored {
		out = append(out, Alert{Kind: AlertInfo, Message: msgRestored, Dismissable: true})
	}
	if s.APIError != "" {
		out = append(out, Alert{Kind: AlertError, Message: s.APIError, Dismissable: true})
	}
	return out
}

func renderStep(s State) *StepView {
	values := fieldValues(s.Form)
	visible := visibility(s.Form)

	sv := &StepView{
		Index:  int(s.Step),
		Title:  s.Step.Title(),
		Fields: []FieldView{},
	}
	for _, name := range stepFields[s.Step] {
		show, conditional := visible[name]
		sv.Fields = append(sv.Fields, FieldView{
			Name:    name,
			Value:   values[name],
			Error:   s.Errors[name],
			Visible: !conditional || show,
		})
	}
	if s.Step == guest.StepIdentification {
		sv.VerificationError = s.Errors[validation.FieldVerification]
	}
	return sv
}

func renderResult(o Outcome) *ResultView {
	rv := &ResultView{
		Badge:       trust.BadgeLabel(o.TrustLevel),
		TrustLevel:  o.TrustLevel,
		Score:       o.Score,
		Message:     o.Message,
		Adjustments: make([]AdjustmentView, 0, len(o.Adjustments)),
		StartOver:   true,
	}
	for _, a := range o.Adjustments {
		rv.Adjustments = append(rv.Adjustments, AdjustmentView{Reason: a.Reason, Points: fmt.Sprintf("%+d", a.Points)})
	}
	if len(o.Adjustments) == 0 {
		rv.Note = msgNoDeductions
	}
	return rv
}

var stepFields = map[guest.Step][]string{
	guest.StepIdentification: {
		guest.FieldName, guest.FieldEmail, guest.FieldPhone, guest.FieldAddress,
		guest.FieldAirbnbProfile, guest.FieldVrboProfile,
		guest.FieldOtherPlatformProfile, guest.FieldOtherPlatformType,
		guest.FieldConsentToBackgroundCheck,
	},
	guest.StepBooking: {
		guest.FieldPlatform, guest.FieldListingLink, guest.FieldCheckInDate, guest.FieldCheckOutDate,
	},
	guest.StepStayIntent: {
		guest.FieldStayPurpose, guest.FieldOtherPurpose, guest.FieldTotalGuests,
		guest.FieldChildrenUnder12, guest.FieldNonOvernightGuests,
		guest.FieldTravelingNearHome, guest.FieldZipCode,
		guest.FieldUsedSTRBefore, guest.FieldPreviousStayLinks,
	},
	guest.StepAgreement: {
		guest.FieldAgreeToRules, guest.FieldAgreeNoParties, guest.FieldUnderstandFlagging,
	},
}

// visibility lists the conditional fields and whether each is shown.
func visibility(f guest.FormData) map[string]bool {
	return map[string]bool{
		guest.FieldOtherPurpose:      f.StayPurpose == guest.PurposeOther,
		guest.FieldZipCode:           f.TravelingNearHome,
		guest.FieldPreviousStayLinks: f.UsedSTRBefore,
	}
}

func fieldValues(f guest.FormData) map[string]any {
	return map[string]any{
		guest.FieldName:                     f.Name,
		guest.FieldEmail:                    f.Email,
		guest.FieldPhone:                    f.Phone,
		guest.FieldAddress:                  f.Address,
		guest.FieldAirbnbProfile:            f.AirbnbProfile,
		guest.FieldVrboProfile:              f.VrboProfile,
		guest.FieldOtherPlatformProfile:     f.OtherPlatformProfile,
		guest.FieldOtherPlatformType:        string(f.OtherPlatformType),
		guest.FieldConsentToBackgroundCheck: f.ConsentToBackgroundCheck,
		guest.FieldPlatform:                 string(f.Platform),
		guest.FieldListingLink:              f.ListingLink,
		guest.FieldCheckInDate:              f.CheckInDate,
		guest.FieldCheckOutDate:             f.CheckOutDate,
		guest.FieldStayPurpose:              string(f.StayPurpose),
		guest.FieldOtherPurpose:             f.OtherPurpose,
		guest.FieldTotalGuests:              f.TotalGuests,
		guest.FieldChildrenUnder12:          f.ChildrenUnder12,
		guest.FieldNonOvernightGuests:       f.NonOvernightGuests,
		guest.FieldTravelingNearHome:        f.TravelingNearHome,
		guest.FieldZipCode:                  f.ZipCode,
		guest.FieldUsedSTRBefore:            f.UsedSTRBefore,
		guest.FieldPreviousStayLinks:        f.PreviousStayLinks,
		guest.FieldAgreeToRules:             f.AgreeToRules,
		guest.FieldAgreeNoParties:           f.AgreeNoParties,
		guest.FieldUnderstandFlagging:       f.UnderstandFlagging,
	}
}
