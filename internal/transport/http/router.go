package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caslkey/internal/platform/health"
	"caslkey/pkg/platform/middleware/request"
)

// RouterConfig tunes the shared middleware.
type RouterConfig struct {
	// MaxBodyBytes caps request bodies; image uploads arrive base64-encoded.
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	Metrics        *request.Metrics
}

// NewRouter wires the session API, health probes and /metrics.
func NewRouter(h *Handler, probes *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.Latency(cfg.Metrics))

	if probes != nil {
		probes.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.MaxBodyBytes > 0 {
			r.Use(request.BodyLimit(cfg.MaxBodyBytes))
		}
		r.Use(request.Timeout(cfg.RequestTimeout))
		r.Use(request.ContentTypeJSON)
		h.Register(r)
	})
	return r
}

// UploadBodyLimit is the body cap that still admits an image of maxImage
// bytes once base64-encoded inside a JSON envelope.
func UploadBodyLimit(maxImage int64) int64 {
	return maxImage*4/3 + 64<<10
}
