package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalvas/routekit/router"
)

// Logging returns middleware that logs one record per dispatched request:
// method, path, written status, latency, and the handler's error, if any.
// The record level follows the status: 5xx logs at error level, 4xx at
// warn, everything else at info. A nil logger uses slog.Default().
//
// The router applies middleware to matched handlers only, so 404 and 405
// responses produced by the router itself are not logged here.
func Logging(log *slog.Logger) router.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			err := next.ServeRoute(sw, r)
			latency := time.Since(start)

			attrs := []slog.Attr{
				slog.Int("status", sw.status),
				slog.String("method", r.Method),
				slog.String("path", router.OriginalPath(r)),
				slog.Duration("latency", latency),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			log.LogAttrs(r.Context(), level(sw.status, err), "request", attrs...)

			return err
		})
	}
}

func level(status int, err error) slog.Level {
	switch {
	case err != nil || status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
