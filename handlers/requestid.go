package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/vitalvas/routekit/router"
)

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored in the context by
// RequestID. Returns an empty string if no ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestIDConfig configures the request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the current request, allowing ID generation based on
	// request context. Defaults to GenerateUUIDv4.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestID returns middleware that generates or propagates a request ID
// header. The ID is set on both the request context (for downstream
// handlers) and the response (for the caller).
func RequestID(cfg RequestIDConfig) router.MiddlewareFunc {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			id := ""
			if trustIncoming {
				id = r.Header.Get(headerName)
			}
			if id == "" {
				id = generate(r)
			}

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			r = r.WithContext(ctx)
			r.Header.Set(headerName, id)
			w.Header().Set(headerName, id)

			return next.ServeRoute(w, r)
		})
	}
}

// GenerateUUIDv4 returns a random RFC 9562 version 4 UUID string.
func GenerateUUIDv4(_ *http.Request) string {
	return uuid.NewString()
}
