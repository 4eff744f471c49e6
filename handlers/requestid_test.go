package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/routekit/router"
)

func TestRequestID(t *testing.T) {
	t.Run("generates a uuid by default", func(t *testing.T) {
		var ctxID string
		h := RequestID(RequestIDConfig{})(router.HandlerFunc(
			func(_ http.ResponseWriter, r *http.Request) error {
				ctxID = RequestIDFromContext(r.Context())
				return nil
			}))

		w := httptest.NewRecorder()
		require.NoError(t, h.ServeRoute(w, httptest.NewRequest(http.MethodGet, "/", nil)))

		headerID := w.Header().Get("X-Request-ID")
		assert.Equal(t, headerID, ctxID)
		_, err := uuid.Parse(headerID)
		assert.NoError(t, err)
	})

	t.Run("ignores the incoming header by default", func(t *testing.T) {
		h := RequestID(RequestIDConfig{})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error { return nil }))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", "incoming-id")
		require.NoError(t, h.ServeRoute(w, r))

		assert.NotEqual(t, "incoming-id", w.Header().Get("X-Request-ID"))
	})

	t.Run("reuses the incoming header when trusted", func(t *testing.T) {
		h := RequestID(RequestIDConfig{TrustIncoming: true})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error { return nil }))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", "incoming-id")
		require.NoError(t, h.ServeRoute(w, r))

		assert.Equal(t, "incoming-id", w.Header().Get("X-Request-ID"))
	})

	t.Run("custom header name and generator", func(t *testing.T) {
		h := RequestID(RequestIDConfig{
			HeaderName:   "X-Trace-ID",
			GenerateFunc: func(*http.Request) string { return "fixed-id" },
		})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error { return nil }))

		w := httptest.NewRecorder()
		require.NoError(t, h.ServeRoute(w, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, "fixed-id", w.Header().Get("X-Trace-ID"))
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDFromContext(t *testing.T) {
	t.Run("returns empty without middleware", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, RequestIDFromContext(r.Context()))
	})
}
