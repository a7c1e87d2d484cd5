package wizard

import (
	"maps"
	"slices"
	"time"

	"caslkey/internal/channels"
	"caslkey/internal/guest"
	"caslkey/internal/trust"
	"caslkey/internal/validation"
)

// State is a snapshot of one wizard. Values returned by Wizard.State share
// no memory with the wizard.
type State struct {
	Step         guest.Step              `json:"currentStep"`
	Submitted    bool                    `json:"submitted"`
	Form         guest.FormData          `json:"formData"`
	Verification guest.VerificationState `json:"verification"`
	Errors       validation.ErrorMap     `json:"errors"`
	Valid        bool                    `json:"isFormValid"`
	Loading      bool                    `json:"isLoading"`
	APIError     string                  `json:"apiError,omitempty"`
	Restored     bool                    `json:"showRestoredMessage"`
	Preview      *trust.TrustPreview     `json:"trustPreview,omitempty"`
	Result       *Outcome                `json:"result,omitempty"`
	Channels     ChannelsState           `json:"channels"`
	Generation   uint64                  `json:"generation"`
}

// Outcome is the final result shown once the application is accepted.
type Outcome struct {
	Score       int                `json:"score"`
	TrustLevel  trust.Level        `json:"trustLevel"`
	Message     string             `json:"message"`
	Adjustments []trust.Adjustment `json:"adjustments"`
}

// ChannelStatus is the live position of one verification channel.
type ChannelStatus struct {
	State   channels.State `json:"state"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

type ScreenshotState struct {
	ChannelStatus
	Staged *channels.StagedImage   `json:"staged,omitempty"`
	Status guest.ScreenshotStatus `json:"status,omitempty"`
}

type GovernmentIDState struct {
	ChannelStatus
	IDStaged     bool `json:"idStaged"`
	SelfieStaged bool `json:"selfieStaged"`
}

type PhoneState struct {
	ChannelStatus
	Number   string        `json:"number,omitempty"`
	ResendIn time.Duration `json:"resendIn"`
}

type ChannelsState struct {
	Screenshot      ScreenshotState   `json:"screenshot"`
	GovernmentID    GovernmentIDState `json:"governmentId"`
	Phone           PhoneState        `json:"phone"`
	Social          ChannelStatus     `json:"social"`
	BackgroundCheck ChannelStatus     `json:"backgroundCheck"`
}

func initialState() State {
	return State{
		Step:   guest.StepIdentification,
		Form:   guest.NewFormData(),
		Errors: validation.ErrorMap{},
	}
}

func (s State) clone() State {
	out := s
	out.Verification = s.Verification.Clone()
	out.Errors = maps.Clone(s.Errors)
	if s.Preview != nil {
		p := *s.Preview
		out.Preview = &p
	}
	if s.Result != nil {
		r := *s.Result
		r.Adjustments = slices.Clone(s.Result.Adjustments)
		out.Result = &r
	}
	if s.Channels.Screenshot.Staged != nil {
		img := *s.Channels.Screenshot.Staged
		out.Channels.Screenshot.Staged = &img
	}
	return out
}
