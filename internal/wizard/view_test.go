package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caslkey/internal/guest"
	"caslkey/internal/trust"
	"caslkey/internal/validation"
)

func TestRenderInitialState(t *testing.T) {
	s := initialState()
	s.Errors = validation.ValidateStep(s.Step, s.Form, s.Verification, "")
	v := Render(s)

	require.Len(t, v.Progress, 4)
	assert.Equal(t, ProgressCurrent, v.Progress[0].Status)
	assert.Equal(t, "User Identification", v.Progress[0].Title)
	assert.Equal(t, ProgressUpcoming, v.Progress[3].Status)

	require.NotNil(t, v.Step)
	assert.Len(t, v.Step.Fields, 9)
	assert.Equal(t, guest.FieldName, v.Step.Fields[0].Name)
	assert.Equal(t, validation.MsgNameRequired, v.Step.Fields[0].Error)
	assert.Equal(t, validation.MsgVerificationPath, v.Step.VerificationError)

	require.NotNil(t, v.Navigation)
	assert.False(t, v.Navigation.ShowBack)
	assert.False(t, v.Navigation.NextEnabled)
	assert.Equal(t, "Next", v.Navigation.NextLabel)
	assert.Empty(t, v.Alerts)
	assert.Nil(t, v.Result)
}

func TestRenderConditionalFields(t *testing.T) {
	s := initialState()
	s.Step = guest.StepStayIntent
	s.Form.StayPurpose = guest.PurposeOther
	s.Form.UsedSTRBefore = false

	visible := map[string]bool{}
	for _, f := range Render(s).Step.Fields {
		visible[f.Name] = f.Visible
	}
	assert.True(t, visible[guest.FieldOtherPurpose])
	assert.False(t, visible[guest.FieldZipCode])
	assert.False(t, visible[guest.FieldPreviousStayLinks])
	assert.True(t, visible[guest.FieldTotalGuests])
}

func TestRenderNavigation(t *testing.T) {
	s := initialState()
	s.Step = guest.LastStep
	s.Valid = true
	v := Render(s)
	assert.True(t, v.Navigation.ShowBack)
	assert.True(t, v.Navigation.NextEnabled)
	assert.Equal(t, "Submit", v.Navigation.NextLabel)
	assert.Equal(t, ProgressComplete, v.Progress[2].Status)

	s.Loading = true
	v = Render(s)
	assert.False(t, v.Navigation.NextEnabled)
	assert.Equal(t, "Processing...", v.Navigation.NextLabel)
}

func TestRenderAlerts(t *testing.T) {
	s := initialState()
	s.Restored = true
	s.APIError = "Service unavailable"

	alerts := Render(s).Alerts
	require.Len(t, alerts, 2)
	assert.Equal(t, AlertInfo, alerts[0].Kind)
	assert.Equal(t, AlertError, alerts[1].Kind)
	assert.Equal(t, "Service unavailable", alerts[1].Message)
	assert.True(t, alerts[1].Dismissable)
}

func TestRenderResult(t *testing.T) {
	s := initialState()
	s.Submitted = true
	s.Result = &Outcome{
		Score:      79,
		TrustLevel: trust.LevelReview,
		Message:    trust.ResultMessage(trust.LevelReview),
		Adjustments: []trust.Adjustment{
			{Reason: trust.ReasonNearHome, Points: -3},
			{Reason: trust.ReasonLongStay, Points: 2},
		},
	}

	v := Render(s)
	assert.Nil(t, v.Step)
	assert.Nil(t, v.Navigation)
	require.NotNil(t, v.Result)
	assert.Equal(t, "Verified – Review Recommended", v.Result.Badge)
	assert.Equal(t, 79, v.Result.Score)
	assert.Equal(t, []AdjustmentView{
		{Reason: trust.ReasonNearHome, Points: "-3"},
		{Reason: trust.ReasonLongStay, Points: "+2"},
	}, v.Result.Adjustments)
	assert.Empty(t, v.Result.Note)
	assert.True(t, v.Result.StartOver)

	s.Result.Adjustments = nil
	assert.Equal(t, "No deductions applied.", Render(s).Result.Note)
}
