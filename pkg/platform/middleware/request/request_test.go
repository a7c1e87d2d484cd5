package request

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID(t *testing.T) {
	serve := func(header string) (seen string, echoed string) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/sessions/current", nil)
		if header != "" {
			req.Header.Set(HeaderRequestID, header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return seen, w.Header().Get(HeaderRequestID)
	}

	t.Run("mints a UUID when absent", func(t *testing.T) {
		seen, echoed := serve("")
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, echoed)
	})

	t.Run("keeps a well-formed client ID", func(t *testing.T) {
		seen, echoed := serve("trace.span_1234")
		assert.Equal(t, "trace.span_1234", seen)
		assert.Equal(t, "trace.span_1234", echoed)
	})

	t.Run("replaces malformed IDs", func(t *testing.T) {
		for _, bad := range []string{
			"has space",
			"line\ninjected",
			`quote"d`,
			"semi;colon",
			strings.Repeat("a", MaxRequestIDLength+1),
		} {
			seen, _ := serve(bad)
			assert.NotEqual(t, bad, seen)
			assert.Len(t, seen, 36, "input %q", bad)
		}
	})

	t.Run("accepts exactly the max length", func(t *testing.T) {
		id := strings.Repeat("a", MaxRequestIDLength)
		seen, _ := serve(id)
		assert.Equal(t, id, seen)
	})

	t.Run("empty outside a request", func(t *testing.T) {
		assert.Empty(t, RequestIDFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
	})
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := RequestID(Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["error"])
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), w.Header().Get(HeaderRequestID))
}

func TestLoggerUsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(Logger(logger))
	r.Get("/items/{id}", okHandler)
	r.Get("/health", okHandler)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "successful probes are not logged")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "/items/{id}", entry["route"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func TestContentTypeJSON(t *testing.T) {
	cases := []struct {
		name, method, contentType string
		want                      int
	}{
		{"json post", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"no content type", http.MethodPatch, "", http.StatusOK},
		{"form post", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"garbage", http.MethodPut, ";;", http.StatusUnsupportedMediaType},
		{"get ignores header", http.MethodGet, "text/plain", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", nil)
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			w := httptest.NewRecorder()
			ContentTypeJSON(http.HandlerFunc(okHandler)).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestTimeout(t *testing.T) {
	handler := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLatencyToleratesNilMetrics(t *testing.T) {
	w := httptest.NewRecorder()
	Latency(nil)(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
