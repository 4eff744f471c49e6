package router

import (
	"context"
	"net/http"
)

// Handler is the interface implemented by route handlers. A handler writes
// its response to w and returns nil, or returns an error to hand the
// failure to the router's error translation: *args.ArgumentsError renders
// a 400 bad-arguments page, *HTTPError renders its status page, ErrNotFound
// from a mounted handler lets the parent router keep scanning, and
// anything else reaches the router's ErrorHandler.
type Handler interface {
	ServeRoute(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeRoute calls f(w, r).
func (f HandlerFunc) ServeRoute(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// HTTPHandler adapts a plain http.Handler to the Handler interface. The
// adapted handler always reports success, so it is suitable for mounting
// foreign handlers that manage their own error responses.
func HTTPHandler(h http.Handler) Handler {
	return HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	})
}

// MiddlewareFunc wraps a Handler with additional behavior. Middleware
// registered on a Router runs for matched handlers only; routing failures
// (404, 405) do not pass through it.
type MiddlewareFunc func(Handler) Handler

// dispatchContextKey is an unexported type for the single context key.
type dispatchContextKey struct{}

var dispatchKey = dispatchContextKey{}

// dispatchContext carries per-request dispatch state: the converted path
// arguments accumulated so far (including through sub-router recursion),
// the captured wildcard tail, and the original pre-mount request path.
type dispatchContext struct {
	pathArgs     []any
	wildcardPath string
	originalPath string
}

func dispatchState(r *http.Request) *dispatchContext {
	dc, _ := r.Context().Value(dispatchKey).(*dispatchContext)
	return dc
}

func withDispatchState(r *http.Request, dc *dispatchContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), dispatchKey, dc))
}

// PathArgs returns the converted path arguments for the matched route, in
// placeholder order. Arguments converted while matching a sub-router
// prefix precede those of the mounted router's own route. The returned
// slice must not be modified.
func PathArgs(r *http.Request) []any {
	if dc := dispatchState(r); dc != nil {
		return dc.pathArgs
	}
	return nil
}

// WildcardPath returns the path components consumed by a trailing
// wildcard, joined by "/". It is empty when the matched route has no
// wildcard or the wildcard consumed no components.
func WildcardPath(r *http.Request) string {
	if dc := dispatchState(r); dc != nil {
		return dc.wildcardPath
	}
	return ""
}

// OriginalPath returns the full request path as seen by the outermost
// router, before any sub-router stripped its prefix. For requests that
// did not pass through a sub-router it equals the request URL path.
func OriginalPath(r *http.Request) string {
	if dc := dispatchState(r); dc != nil && dc.originalPath != "" {
		return dc.originalPath
	}
	return r.URL.Path
}
