package handlers

import (
	"net/http"

	"github.com/vitalvas/routekit/pages"
	"github.com/vitalvas/routekit/response"
	"github.com/vitalvas/routekit/router"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// recovered value when a panic occurs. When nil, no logging is
	// performed.
	LogFunc func(r *http.Request, err any)
}

// Recovery returns middleware that recovers from panics in downstream
// handlers. When a panic occurs it renders a 500 Internal Server Error
// status page and optionally invokes LogFunc.
func Recovery(cfg RecoveryConfig) router.MiddlewareFunc {
	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			defer func() {
				if err := recover(); err != nil {
					if cfg.LogFunc != nil {
						cfg.LogFunc(r, err)
					}

					response.HTML(w, http.StatusInternalServerError,
						pages.HTTPStatusPage(http.StatusInternalServerError, "Internal server error."))
				}
			}()

			return next.ServeRoute(w, r)
		})
	}
}
