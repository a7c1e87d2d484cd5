package httptransport

import (
	"context"
	"net/http"
	"strings"

	"caslkey/internal/session"
	dErrors "caslkey/pkg/domain-errors"
	"caslkey/pkg/platform/httputil"
	"caslkey/pkg/platform/middleware/request"
)

type sessionKey struct{}

func withSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// currentSession is set by requireSession on every /sessions/current route.
func currentSession(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}

// requireSession resolves the bearer token to a live session.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := request.RequestIDFrom(ctx)

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			h.logger.WarnContext(ctx, "session token missing", "request_id", requestID)
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
			return
		}

		sid, err := h.tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			h.logger.WarnContext(ctx, "session token rejected", "request_id", requestID, "error", err)
			httputil.WriteError(w, err)
			return
		}

		s, err := h.sessions.Get(ctx, sid)
		if err != nil {
			h.logger.WarnContext(ctx, "session unavailable",
				"request_id", requestID,
				"session_id", sid.String(),
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(ctx, s)))
	})
}
