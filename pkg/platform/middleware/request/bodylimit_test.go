package request

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	t.Run("body at the limit is readable", func(t *testing.T) {
		handler := BodyLimit(100)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Len(t, data, 100)
			w.WriteHeader(http.StatusNoContent)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions/current/screenshot", strings.NewReader(strings.Repeat("x", 100))))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("declared length over the limit is refused up front", func(t *testing.T) {
		called := false
		handler := BodyLimit(100)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 200))))

		assert.False(t, called)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("unknown length over the limit fails on read", func(t *testing.T) {
		var readErr error
		handler := BodyLimit(100)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))

		req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("x", 200))))
		req.ContentLength = -1
		handler.ServeHTTP(httptest.NewRecorder(), req)

		var maxErr *http.MaxBytesError
		require.ErrorAs(t, readErr, &maxErr)
		assert.EqualValues(t, 100, maxErr.Limit)
	})

	t.Run("empty body passes", func(t *testing.T) {
		handler := BodyLimit(10)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/current", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
