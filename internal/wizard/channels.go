package wizard

import (
	"context"

	"caslkey/internal/apiclient"
	"caslkey/internal/channels"
	"caslkey/internal/guest"
	"caslkey/internal/trust"
	id "caslkey/pkg/domain"
)

// StageScreenshot validates a profile screenshot and keeps it for upload.
func (w *Wizard) StageScreenshot(u channels.Upload) (channels.StagedImage, error) {
	img, err := w.screenshot.Stage(u)
	w.afterChannelCall(err)
	return img, err
}

// ClearScreenshot drops the staged screenshot.
func (w *Wizard) ClearScreenshot() {
	w.screenshot.Clear()
}

// SubmitScreenshot uploads the staged screenshot without leaving the step.
// The review is polled in the background.
func (w *Wizard) SubmitScreenshot(ctx context.Context) error {
	gen, userID, err := w.channelCall()
	if err != nil {
		return err
	}
	if err := w.submitScreenshot(ctx, gen, userID); err != nil {
		w.surface(gen, err)
		return err
	}
	return nil
}

func (w *Wizard) submitScreenshot(ctx context.Context, gen uint64, userID id.CASLKeyID) error {
	bg := context.WithoutCancel(ctx)
	w.screenshot.OnSettle(func(r channels.ScreenshotResult) {
		w.onScreenshotSettled(bg, gen, r)
	})
	return w.screenshot.Submit(ctx, userID.String())
}

func (w *Wizard) onScreenshotSettled(ctx context.Context, gen uint64, r channels.ScreenshotResult) {
	w.mu.Lock()
	if gen != w.state.Generation {
		w.mu.Unlock()
		return
	}
	var preview *trust.TrustPreview
	switch {
	case r.Status == guest.ScreenshotVerified:
		v := &w.state.Verification
		v.IsVerified = true
		v.VerificationType = guest.VerificationScreenshot
		if r.Details != nil {
			pd := *r.Details
			v.PlatformData = &pd
		}
		p := w.refreshPreviewLocked()
		preview = &p
	case r.Status.Accepted():
	default:
		w.state.APIError = r.Message
	}
	w.revalidateLocked()
	w.mu.Unlock()

	if preview != nil {
		w.persistPreview(ctx, *preview)
	}
}

func (w *Wizard) StageGovernmentID(u channels.Upload) (channels.StagedImage, error) {
	img, err := w.govID.StageID(u)
	w.afterChannelCall(err)
	return img, err
}

func (w *Wizard) StageSelfie(u channels.Upload) (channels.StagedImage, error) {
	img, err := w.govID.StageSelfie(u)
	w.afterChannelCall(err)
	return img, err
}

// VerifyGovernmentID submits the staged ID and selfie. A pending answer
// settles later through the adapter's poll.
func (w *Wizard) VerifyGovernmentID(ctx context.Context) (channels.State, error) {
	gen, userID, err := w.channelCall()
	if err != nil {
		return channels.StateIdle, err
	}
	bg := context.WithoutCancel(ctx)
	w.govID.OnSettle(func(state channels.State, msg string) {
		w.settleChannel(bg, gen, guest.VerificationGovernmentID, state, msg)
	})

	state, err := w.govID.Verify(ctx, userID.String())
	if err != nil {
		w.surface(gen, err)
		return state, err
	}
	w.settleChannel(ctx, gen, guest.VerificationGovernmentID, state, w.govID.Error())
	return state, nil
}

// RequestPhoneCode sends a one-time code to phone.
func (w *Wizard) RequestPhoneCode(ctx context.Context, phone string) error {
	gen, userID, err := w.channelCall()
	if err != nil {
		return err
	}
	if err := w.phone.RequestCode(ctx, phone, userID.String()); err != nil {
		w.surface(gen, err)
		return err
	}
	return nil
}

// VerifyPhoneCode checks the code sent by RequestPhoneCode.
func (w *Wizard) VerifyPhoneCode(ctx context.Context, code string) (bool, error) {
	gen, userID, err := w.channelCall()
	if err != nil {
		return false, err
	}
	ok, err := w.phone.VerifyCode(ctx, code, userID.String())
	if err != nil {
		w.surface(gen, err)
		return false, err
	}
	if ok {
		w.settleChannel(ctx, gen, guest.VerificationPhone, channels.StateVerified, "")
	}
	return ok, nil
}

// VerifySocialProfile asks the backend to match a social profile.
func (w *Wizard) VerifySocialProfile(ctx context.Context, platform, profileURL string) (channels.State, error) {
	gen, userID, err := w.channelCall()
	if err != nil {
		return channels.StateIdle, err
	}
	state, err := w.social.Verify(ctx, platform, profileURL, userID.String())
	if err != nil {
		w.surface(gen, err)
		return state, err
	}
	w.settleChannel(ctx, gen, guest.VerificationSocial, state, w.social.Error())
	return state, nil
}

// channelCall captures what a channel request runs under.
func (w *Wizard) channelCall() (uint64, id.CASLKeyID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Submitted {
		return 0, "", ErrSubmitted
	}
	return w.state.Generation, w.userIDLocked(), nil
}

func (w *Wizard) afterChannelCall(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state.APIError = apiclient.Message(err)
	}
}

// settleChannel folds a channel outcome into the verification state. Only a
// verified outcome changes the signals; the first verified channel also
// becomes the verification type.
func (w *Wizard) settleChannel(ctx context.Context, gen uint64, kind guest.VerificationType, state channels.State, msg string) {
	w.mu.Lock()
	if gen != w.state.Generation {
		w.mu.Unlock()
		return
	}
	var preview *trust.TrustPreview
	switch state {
	case channels.StateVerified:
		signal := guest.Signal{Verified: true, At: w.now()}
		v := &w.state.Verification
		switch kind {
		case guest.VerificationGovernmentID:
			signal.Metadata = map[string]string{"method": string(kind)}
			v.IDVerification = signal
		case guest.VerificationPhone:
			v.PhoneVerification = signal
		case guest.VerificationSocial:
			v.SocialVerification = signal
		}
		if !v.IsVerified {
			v.IsVerified = true
			v.VerificationType = kind
		}
		p := w.refreshPreviewLocked()
		preview = &p
		w.logger.Info("verification channel verified", "channel", string(kind), "casl_key_id", v.CASLKeyID)
	case channels.StateFailed:
		if msg != "" {
			w.state.APIError = msg
		}
	}
	w.revalidateLocked()
	w.mu.Unlock()

	if preview != nil {
		w.persistPreview(ctx, *preview)
	}
}
