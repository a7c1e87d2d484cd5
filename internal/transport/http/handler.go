// Package httptransport exposes hosted wizard sessions over HTTP. Handlers
// stay thin: they decode, call the session's wizard and render its view.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"caslkey/internal/session"
	"caslkey/internal/wizard"
	id "caslkey/pkg/domain"
	"caslkey/pkg/platform/httputil"
	"caslkey/pkg/platform/middleware/request"
)

// Sessions is the session registry the handlers drive. *session.Manager
// satisfies it.
type Sessions interface {
	Create(ctx context.Context) (*session.Session, error)
	Get(ctx context.Context, sid id.SessionID) (*session.Session, error)
	Remove(sid id.SessionID) bool
}

// TokenService issues and checks bearer session tokens. *session.Tokens
// satisfies it.
type TokenService interface {
	Issue(sid id.SessionID) (string, time.Time, error)
	Validate(token string) (id.SessionID, error)
}

// Handler serves the guest verification endpoints.
type Handler struct {
	sessions Sessions
	tokens   TokenService
	logger   *slog.Logger
}

func New(sessions Sessions, tokens TokenService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{sessions: sessions, tokens: tokens, logger: logger}
}

// Register mounts the session routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/sessions", h.handleCreate)

	r.Route("/sessions/current", func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/", h.handleGet)
		r.Delete("/", h.handleEnd)
		r.Patch("/fields", h.handleSetField)
		r.Post("/next", h.handleNext)
		r.Post("/previous", h.handlePrevious)
		r.Post("/submit", h.handleSubmit)
		r.Post("/reset", h.handleReset)
		r.Delete("/error", h.handleDismissError)
		r.Delete("/restored-notice", h.handleDismissRestored)
		r.Delete("/saved-data", h.handleClearSaved)

		r.Post("/screenshot", h.handleStageScreenshot)
		r.Delete("/screenshot", h.handleClearScreenshot)
		r.Post("/screenshot/submit", h.handleSubmitScreenshot)

		r.Post("/government-id/id-image", h.handleStageIDImage)
		r.Post("/government-id/selfie", h.handleStageSelfie)
		r.Post("/government-id/verify", h.handleVerifyGovernmentID)

		r.Post("/phone/request", h.handleRequestPhoneCode)
		r.Post("/phone/verify", h.handleVerifyPhoneCode)

		r.Post("/social/verify", h.handleVerifySocial)
	})
}

// SessionResponse is returned when a session starts.
type SessionResponse struct {
	SessionID string      `json:"sessionId"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	View      wizard.View `json:"view"`
}

// ViewResponse wraps the rendered wizard.
type ViewResponse struct {
	View wizard.View `json:"view"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.RequestIDFrom(ctx)

	s, err := h.sessions.Create(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	token, expiresAt, err := h.tokens.Issue(s.ID)
	if err != nil {
		h.sessions.Remove(s.ID)
		h.logger.ErrorContext(ctx, "failed to issue session token", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, SessionResponse{
		SessionID: s.ID.String(),
		Token:     token,
		ExpiresAt: expiresAt,
		View:      wizard.Render(s.Wizard.State()),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, currentSession(r.Context()))
}

// handleEnd discards saved progress so the session cannot be resumed.
func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := currentSession(ctx)
	if err := s.Wizard.ClearSavedData(ctx); err != nil {
		h.logger.WarnContext(ctx, "failed to clear saved progress",
			"request_id", request.RequestIDFrom(ctx),
			"session_id", s.ID.String(),
			"error", err,
		)
	}
	h.sessions.Remove(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetField(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[SetFieldRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.act(w, r, "set field", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.SetField(ctx, req.Name, req.Value)
	})
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "advance", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.Advance(ctx)
	})
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "retreat", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.Retreat(ctx)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "submit", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.Submit(ctx)
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "reset", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.Reset(ctx)
	})
}

func (h *Handler) handleDismissError(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "dismiss error", func(_ context.Context, wz *wizard.Wizard) error {
		wz.DismissError()
		return nil
	})
}

func (h *Handler) handleDismissRestored(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "dismiss restored notice", func(_ context.Context, wz *wizard.Wizard) error {
		wz.DismissRestoredNotice()
		return nil
	})
}

func (h *Handler) handleClearSaved(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "clear saved data", func(ctx context.Context, wz *wizard.Wizard) error {
		return wz.ClearSavedData(ctx)
	})
}

// act runs one wizard action for the current session and answers with the
// view it leaves behind.
func (h *Handler) act(w http.ResponseWriter, r *http.Request, name string, fn func(context.Context, *wizard.Wizard) error) {
	ctx := r.Context()
	s := currentSession(ctx)
	if err := fn(ctx, s.Wizard); err != nil {
		h.logger.WarnContext(ctx, name+" failed",
			"request_id", request.RequestIDFrom(ctx),
			"session_id", s.ID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.writeView(w, s)
}

func (h *Handler) writeView(w http.ResponseWriter, s *session.Session) {
	httputil.WriteJSON(w, http.StatusOK, ViewResponse{View: wizard.Render(s.Wizard.State())})
}
