package httptransport

import (
	"context"
	"net/http"

	"caslkey/internal/channels"
	"caslkey/internal/wizard"
	"caslkey/pkg/platform/httputil"
)

func (h *Handler) handleStageScreenshot(w http.ResponseWriter, r *http.Request) {
	h.stage(w, r, "stage screenshot", (*wizard.Wizard).StageScreenshot)
}

func (h *Handler) handleStageIDImage(w http.ResponseWriter, r *http.Request) {
	h.stage(w, r, "stage id image", (*wizard.Wizard).StageGovernmentID)
}

func (h *Handler) handleStageSelfie(w http.ResponseWriter, r *http.Request) {
	h.stage(w, r, "stage selfie", (*wizard.Wizard).StageSelfie)
}

func (h *Handler) stage(w http.ResponseWriter, r *http.Request, name string, fn func(*wizard.Wizard, channels.Upload) (channels.StagedImage, error)) {
	req, ok := httputil.DecodeJSON[ImageUploadRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.act(w, r, name, func(_ context.Context, wz *wizard.Wizard) error {
		_, err := fn(wz, req.Upload())
		return err
	})
}

func (h *Handler) handleClearScreenshot(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "clear screenshot", func(_ context.Context, wz *wizard.Wizard) error {
		wz.ClearScreenshot()
		return nil
	})
}

func (h *Handler) handleSubmitScreenshot(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "submit screenshot", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.SubmitScreenshot(ctx)
	})
}

func (h *Handler) handleVerifyGovernmentID(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "verify government id", func(ctx context.Context, wz *wizard.Wizard) error {
		_, err := wz.VerifyGovernmentID(ctx)
		return err
	})
}

func (h *Handler) handleRequestPhoneCode(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[PhoneCodeRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.act(w, r, "request phone code", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.RequestPhoneCode(ctx, req.PhoneNumber)
	})
}

func (h *Handler) handleVerifyPhoneCode(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[PhoneVerifyRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.act(w, r, "verify phone code", func(ctx context.Context, wz *wizard.Wizard) error {
		_, err := wz.VerifyPhoneCode(ctx, req.Code)
		return err
	})
}

func (h *Handler) handleVerifySocial(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[SocialVerifyRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.act(w, r, "verify social profile", func(ctx context.Context, wz *wizard.Wizard) error {
		_, err := wz.VerifySocialProfile(ctx, req.Platform, req.ProfileURL)
		return err
	})
}
