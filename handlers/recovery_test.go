package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/routekit/router"
)

func TestRecovery(t *testing.T) {
	t.Run("recovers from panics with a 500 page", func(t *testing.T) {
		h := Recovery(RecoveryConfig{})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error {
				panic("boom")
			}))

		w := httptest.NewRecorder()
		require.NotPanics(t, func() {
			_ = h.ServeRoute(w, httptest.NewRequest(http.MethodGet, "/", nil))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error.")
	})

	t.Run("passes the recovered value to LogFunc", func(t *testing.T) {
		var got any
		h := Recovery(RecoveryConfig{
			LogFunc: func(_ *http.Request, err any) { got = err },
		})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error {
				panic("boom")
			}))

		_ = h.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "boom", got)
	})

	t.Run("does not interfere with normal handling", func(t *testing.T) {
		h := Recovery(RecoveryConfig{})(router.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) error {
				w.WriteHeader(http.StatusTeapot)
				return nil
			}))

		w := httptest.NewRecorder()
		require.NoError(t, h.ServeRoute(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}
