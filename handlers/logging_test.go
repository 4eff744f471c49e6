package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitalvas/routekit/router"
)

func runLogged(t *testing.T, h router.Handler) string {
	t.Helper()
	var sb strings.Builder
	log := slog.New(slog.NewTextHandler(&sb, nil))

	wrapped := Logging(log)(h)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/some/path", nil)
	_ = wrapped.ServeRoute(w, r)
	return sb.String()
}

func TestLogging(t *testing.T) {
	t.Run("logs method path and status", func(t *testing.T) {
		out := runLogged(t, router.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) error {
				w.WriteHeader(http.StatusNoContent)
				return nil
			}))

		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "msg=request")
		assert.Contains(t, out, "status=204")
		assert.Contains(t, out, "method=GET")
		assert.Contains(t, out, "path=/some/path")
		assert.Contains(t, out, "latency=")
	})

	t.Run("a body write implies status 200", func(t *testing.T) {
		out := runLogged(t, router.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) error {
				_, err := w.Write([]byte("ok"))
				return err
			}))

		assert.Contains(t, out, "status=200")
	})

	t.Run("client errors log at warn level", func(t *testing.T) {
		out := runLogged(t, router.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) error {
				w.WriteHeader(http.StatusNotFound)
				return nil
			}))

		assert.Contains(t, out, "level=WARN")
	})

	t.Run("handler errors log at error level with the error", func(t *testing.T) {
		out := runLogged(t, router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error {
				return errors.New("storage failure")
			}))

		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, "storage failure")
	})

	t.Run("the handler error is passed through", func(t *testing.T) {
		sentinel := errors.New("pass me on")
		wrapped := Logging(slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))(
			router.HandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return sentinel
			}))

		err := wrapped.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, sentinel)
	})
}
