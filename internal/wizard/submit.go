package wizard

import (
	"context"
	"strings"
	"time"

	"caslkey/contracts/caslapi"
	"caslkey/internal/apiclient"
	"caslkey/internal/events"
	"caslkey/internal/guest"
	"caslkey/internal/platform/logger"
	"caslkey/internal/trust"
	dErrors "caslkey/pkg/domain-errors"
)

// ErrNotFinished is returned by Submit before the last step is reached.
var ErrNotFinished = dErrors.New(dErrors.CodeValidation, "Please complete every step before submitting")

// Submit scores the application, sends it with its host summary and, once
// accepted, announces it. On failure the wizard stays on the last step so
// the guest can retry.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.state.Submitted {
		w.mu.Unlock()
		return ErrSubmitted
	}
	if w.state.Step != guest.LastStep {
		w.mu.Unlock()
		return ErrNotFinished
	}
	w.revalidateLocked()
	if !w.state.Valid {
		w.mu.Unlock()
		return ErrStepInvalid
	}
	gen, err := w.beginLocked()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if w.state.Verification.CASLKeyID.IsNil() {
		w.state.Verification.CASLKeyID = w.userIDLocked()
	}
	form := w.state.Form
	verification := w.state.Verification.Clone()
	w.mu.Unlock()

	now := w.now()
	result := trust.CalculateScore(form, verification, now)
	data := verificationData(form, verification, result, now)
	summary := trust.HostSummary(data)

	err = w.api.SubmitVerification(ctx, caslapi.Submission{VerificationData: data, HostSummary: summary})

	w.mu.Lock()
	if gen != w.state.Generation {
		w.mu.Unlock()
		return ErrSuperseded
	}
	w.endLocked(gen)
	if err != nil {
		w.surfaceLocked(err)
		w.mu.Unlock()
		outcome := "failed"
		if apiclient.CategoryOf(err) == apiclient.CategoryRejected {
			outcome = "rejected"
		}
		w.recordSubmission(result, outcome)
		w.logger.Warn("verification submission failed",
			"casl_key_id", data.CASLKeyID,
			"email_ref", logger.HashPII(form.Email),
			"error", err,
		)
		return apiclient.AsDomain(err)
	}
	w.state.Submitted = true
	w.state.Restored = false
	w.state.Result = &Outcome{
		Score:       result.Score,
		TrustLevel:  result.Level,
		Message:     trust.ResultMessage(result.Level),
		Adjustments: result.Adjustments,
	}
	w.mu.Unlock()

	w.recordSubmission(result, "accepted")
	w.logger.Info("verification submitted",
		"casl_key_id", data.CASLKeyID,
		"trust_level", result.Level,
		"score", result.Score,
	)

	if err := w.repo.ClearForm(ctx); err != nil {
		w.logger.Warn("saved progress could not be cleared", "error", err)
	}
	event := events.VerificationComplete{
		CASLKeyID:        data.CASLKeyID,
		Score:            result.Score,
		TrustLevel:       result.Level,
		VerificationData: data,
		HostSummary:      summary,
		OccurredAt:       now,
	}
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Warn("verification event not delivered", "casl_key_id", data.CASLKeyID, "error", err)
	}
	return nil
}

func (w *Wizard) recordSubmission(result trust.Result, outcome string) {
	if w.metrics != nil {
		w.metrics.RecordSubmission(string(result.Level), outcome, result.Score)
	}
}

// verificationData assembles the submission record.
func verificationData(form guest.FormData, v guest.VerificationState, result trust.Result, now time.Time) caslapi.VerificationData {
	purpose := string(form.StayPurpose)
	if form.StayPurpose == guest.PurposeOther && strings.TrimSpace(form.OtherPurpose) != "" {
		purpose = strings.TrimSpace(form.OtherPurpose)
	}
	stay := caslapi.StayDetails{
		Purpose:            purpose,
		TotalGuests:        form.TotalGuests,
		ChildrenUnder12:    form.ChildrenUnder12,
		NonOvernightGuests: form.NonOvernightGuests,
		TravelingNearHome:  form.TravelingNearHome,
		PreviousExperience: form.UsedSTRBefore,
	}
	if form.TravelingNearHome {
		stay.ZipCode = strings.TrimSpace(form.ZipCode)
	}
	if form.UsedSTRBefore {
		stay.PreviousStayLinks = strings.TrimSpace(form.PreviousStayLinks)
	}

	return caslapi.VerificationData{
		CASLKeyID: v.CASLKeyID.String(),
		User: caslapi.User{
			Name:    strings.TrimSpace(form.Name),
			Email:   strings.TrimSpace(form.Email),
			Phone:   strings.TrimSpace(form.Phone),
			Address: strings.TrimSpace(form.Address),
		},
		Verification: caslapi.Verification{
			Score:                    result.Score,
			TrustLevel:               string(result.Level),
			VerificationType:         string(v.VerificationType),
			BackgroundCheckStatus:    string(v.BackgroundCheck),
			IDVerificationStatus:     v.IDVerification.Verified,
			PhoneVerificationStatus:  v.PhoneVerification.Verified,
			SocialVerificationStatus: v.SocialVerification.Verified,
			Adjustments:              result.Wire(),
			VerificationDate:         now.UTC(),
		},
		Booking: caslapi.Booking{
			Platform:     string(form.Platform),
			ListingLink:  strings.TrimSpace(form.ListingLink),
			CheckInDate:  form.CheckInDate,
			CheckOutDate: form.CheckOutDate,
		},
		StayDetails: stay,
	}
}
