package wizard

import (
	"context"
	"strconv"
	"strings"

	"caslkey/contracts/caslapi"
	"caslkey/internal/apiclient"
	"caslkey/internal/channels"
	"caslkey/internal/guest"
	"caslkey/internal/platform/logger"
	id "caslkey/pkg/domain"
)

// Advance validates the current step and moves forward. Leaving the first
// step uploads a staged screenshot, looks the guest up and runs a consented
// background check. Advancing from the last step submits. An invalid step
// returns ErrStepInvalid with no side effects.
func (w *Wizard) Advance(ctx context.Context) error {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return ErrBusy
	}
	if w.state.Submitted {
		w.mu.Unlock()
		return ErrSubmitted
	}
	w.revalidateLocked()
	if !w.state.Valid {
		w.mu.Unlock()
		return ErrStepInvalid
	}
	if w.state.Step == guest.LastStep {
		w.mu.Unlock()
		return w.Submit(ctx)
	}
	gen, _ := w.beginLocked()
	from := w.state.Step
	w.mu.Unlock()

	if from == guest.StepIdentification {
		if err := w.identify(ctx, gen); err != nil {
			w.mu.Lock()
			w.endLocked(gen)
			w.mu.Unlock()
			return err
		}
	}

	w.mu.Lock()
	if gen != w.state.Generation {
		w.mu.Unlock()
		return ErrSuperseded
	}
	w.state.Step++
	w.endLocked(gen)
	w.revalidateLocked()
	form, step := w.state.Form, w.state.Step
	w.mu.Unlock()

	w.persistForm(ctx, form, step)
	if w.metrics != nil {
		w.metrics.RecordAdvance(strconv.Itoa(int(from)))
	}
	return nil
}

// identify runs the first-step side effects in order. Upload and lookup
// failures abort the advance; a background check failure does not.
func (w *Wizard) identify(ctx context.Context, gen uint64) error {
	w.mu.Lock()
	userID := w.userIDLocked()
	form := w.state.Form
	w.mu.Unlock()

	if _, staged := w.screenshot.Staged(); staged {
		status := w.screenshot.Status()
		if !status.Accepted() && status != guest.ScreenshotProcessing {
			if err := w.submitScreenshot(ctx, gen, userID); err != nil {
				w.surface(gen, err)
				return err
			}
		}
	}

	if err := w.lookup(ctx, gen, form, userID); err != nil {
		return err
	}

	if err := w.runBackgroundCheck(ctx, gen, form); err != nil {
		return err
	}

	w.mu.Lock()
	if gen != w.state.Generation {
		w.mu.Unlock()
		return ErrSuperseded
	}
	preview := w.refreshPreviewLocked()
	w.mu.Unlock()
	w.persistPreview(ctx, preview)
	return nil
}

func (w *Wizard) lookup(ctx context.Context, gen uint64, form guest.FormData, provisional id.CASLKeyID) error {
	w.mu.Lock()
	w.state.Verification.IsChecking = true
	w.state.Verification.Error = ""
	w.mu.Unlock()

	resp, err := w.api.CheckUser(ctx, caslapi.UserCheckRequest{
		Email:   strings.TrimSpace(form.Email),
		Name:    strings.TrimSpace(form.Name),
		Phone:   strings.TrimSpace(form.Phone),
		Address: strings.TrimSpace(form.Address),
	})

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.state.Generation {
		return ErrSuperseded
	}
	w.state.Verification.IsChecking = false
	if err != nil {
		msg := apiclient.Message(err)
		w.state.APIError = msg
		w.state.Verification.Error = msg
		w.recordLookup("error")
		w.logger.Warn("user lookup failed", "email_ref", logger.HashPII(form.Email), "error", err)
		return apiclient.AsDomain(err)
	}

	w.applyLookupLocked(resp, provisional)
	return nil
}

// applyLookupLocked merges a lookup answer into the verification state.
// Signals gathered earlier in the session are kept.
func (w *Wizard) applyLookupLocked(resp *caslapi.UserCheckResponse, provisional id.CASLKeyID) {
	v := &w.state.Verification
	if resp.Found && resp.UserData != nil && resp.UserData.CASLKeyID != "" {
		u := resp.UserData
		v.CASLKeyID = id.CASLKeyID(u.CASLKeyID)
		v.IsExistingUser = true
		if u.IsVerified {
			v.IsVerified = true
			if v.VerificationType == guest.VerificationNone {
				v.VerificationType = guest.VerificationExisting
			}
		}
		if u.PlatformData != nil {
			pd := *u.PlatformData
			v.PlatformData = &pd
		}
		if idv := u.IDVerificationData; idv != nil && idv.Verified {
			at := idv.Timestamp
			if at.IsZero() {
				at = w.now()
			}
			v.IDVerification = guest.Signal{Verified: true, At: at, Metadata: map[string]string{"method": idv.Method}}
		}
		w.recordLookup("found")
		w.logger.Info("existing guest found", "casl_key_id", v.CASLKeyID, "verified", u.IsVerified)
	} else {
		v.CASLKeyID = provisional
		v.IsExistingUser = false
		w.recordLookup("new")
		w.logger.Info("new guest", "casl_key_id", v.CASLKeyID)
	}

	if w.screenshot.Status().Accepted() && !v.IsVerified {
		v.IsVerified = true
		v.VerificationType = guest.VerificationScreenshot
	}
}

func (w *Wizard) runBackgroundCheck(ctx context.Context, gen uint64, form guest.FormData) error {
	w.mu.Lock()
	if !form.ConsentToBackgroundCheck || w.state.Verification.BackgroundCheck != guest.BackgroundCheckNone {
		w.mu.Unlock()
		return nil
	}
	subject := channels.Subject{
		CASLKeyID: w.state.Verification.CASLKeyID.String(),
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Address:   form.Address,
	}
	w.mu.Unlock()

	checkCtx, cancel := context.WithTimeout(ctx, w.bgTimeout)
	outcome, err := w.bgCheck.Run(checkCtx, subject)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.state.Generation {
		return ErrSuperseded
	}
	if err != nil {
		// Best effort: the guest may continue without a result.
		w.surfaceLocked(err)
		w.logger.Warn("background check did not complete", "casl_key_id", subject.CASLKeyID, "error", err)
		return nil
	}
	w.state.Verification.BackgroundCheck = outcome
	if outcome == guest.BackgroundCheckPassed {
		w.state.Verification.IsVerified = true
	}
	return nil
}

func (w *Wizard) recordLookup(result string) {
	if w.metrics != nil {
		w.metrics.RecordLookup(result)
	}
}

// surface shows err as the top-level alert unless gen was superseded.
func (w *Wizard) surface(gen uint64, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen == w.state.Generation {
		w.surfaceLocked(err)
	}
}
