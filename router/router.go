package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vitalvas/routekit/args"
	"github.com/vitalvas/routekit/pages"
	"github.com/vitalvas/routekit/response"
)

// Router matches incoming requests against an ordered table of routes and
// sub-router mounts and dispatches to the first matching handler.
//
// It implements http.Handler, so it can be registered to serve requests:
//
//	r := router.New()
//	r.AddTemplateHandler("id", router.IntTemplateHandler)
//	r.AddRoute("user/{id}", http.MethodGet, showUser)
//	http.ListenAndServe(":8080", r)
//
// The route table is built during a configuration phase and must not be
// modified once dispatching has started; no locking is performed.
type Router struct {
	// ErrorHandling controls what happens when a handler returns an
	// error the router does not translate itself. When true (the
	// default for New), the error is logged and a 500 status page is
	// rendered. When false, the error is re-raised as a panic so it
	// propagates to the surrounding server.
	ErrorHandling bool

	// ErrorHandler, when non-nil, is called instead of the default
	// ErrorHandling behavior for untranslated handler errors.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	// Logger is used to report untranslated handler errors.
	// Defaults to slog.Default().
	Logger *slog.Logger

	entries     []entry
	templates   map[string]TemplateHandler
	middlewares []MiddlewareFunc
}

// RouteDescription describes one route for batch registration.
type RouteDescription struct {
	Pattern string
	Method  string
	Handler Handler
}

// entry is one element of the combined ordered route table: exactly one
// of route and mount is set. Routes and mounts share a single sequence
// because their relative registration order determines match precedence.
type entry struct {
	route *route
	mount *mount
}

type route struct {
	pattern pattern
	method  string
	handler Handler
}

type mount struct {
	prefix  pattern
	handler Handler
}

// New returns a router with an empty route table and an empty template
// handler registry.
func New() *Router {
	return &Router{
		ErrorHandling: true,
		templates:     make(map[string]TemplateHandler),
	}
}

// AddTemplateHandler registers a placeholder converter under the given
// name. Registration must happen before routes referencing the name are
// added. Re-registering a name fails with ErrDuplicateTemplateHandler.
func (rt *Router) AddTemplateHandler(name string, h TemplateHandler) error {
	if name == "" {
		return fmt.Errorf("%w: empty template handler name", ErrInvalidPattern)
	}
	if h == nil {
		return fmt.Errorf("template handler %q is nil", name)
	}
	if _, ok := rt.templates[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTemplateHandler, name)
	}
	rt.templates[name] = h
	return nil
}

// AddRoute compiles the pattern and appends a route for the given method.
// Routes are matched in registration order; the first match wins,
// regardless of specificity.
func (rt *Router) AddRoute(patternString, method string, h Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler for route %q", patternString)
	}
	p, err := compilePattern(patternString, rt.templates, true)
	if err != nil {
		return err
	}
	rt.entries = append(rt.entries, entry{route: &route{
		pattern: p,
		method:  strings.ToUpper(method),
		handler: h,
	}})
	return nil
}

// AddRoutes registers a sequence of routes, stopping at the first error.
func (rt *Router) AddRoutes(routes []RouteDescription) error {
	for _, r := range routes {
		if err := rt.AddRoute(r.Pattern, r.Method, r.Handler); err != nil {
			return err
		}
	}
	return nil
}

// AddSubRouter mounts a handler under a path prefix. When a request path
// matches the prefix, the remaining path is handed to the mounted handler,
// which is typically another Router but can be any Handler. A mounted
// handler that returns ErrNotFound does not end the parent's scan; entries
// registered after the mount are still tried.
//
// The prefix must not contain a wildcard. Mounting a Router that can
// already reach the receiver fails with ErrMountCycle.
func (rt *Router) AddSubRouter(prefix string, h Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler for mount %q", prefix)
	}
	p, err := compilePattern(prefix, rt.templates, false)
	if err != nil {
		return err
	}
	if sub, ok := h.(*Router); ok && sub.canReach(rt) {
		return fmt.Errorf("%w: mounting at %q", ErrMountCycle, prefix)
	}
	rt.entries = append(rt.entries, entry{mount: &mount{prefix: p, handler: h}})
	return nil
}

// canReach reports whether target is reachable from rt through mounts.
func (rt *Router) canReach(target *Router) bool {
	if rt == target {
		return true
	}
	for _, e := range rt.entries {
		if e.mount == nil {
			continue
		}
		if sub, ok := e.mount.handler.(*Router); ok && sub.canReach(target) {
			return true
		}
	}
	return false
}

// Use appends middleware to the chain. Middleware is applied to matched
// handlers only; 404 and 405 responses do not pass through it.
func (rt *Router) Use(mw ...MiddlewareFunc) {
	rt.middlewares = append(rt.middlewares, mw...)
}

// ServeHTTP dispatches the request and translates routing and handler
// failures into HTTP error responses. Implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Normalize the request path per RFC 3986 Section 5.2.4
	// (remove dot segments).
	if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
		u := *req.URL
		u.Path = cleaned
		u.RawPath = ""
		req = req.Clone(req.Context())
		req.URL = &u
	}

	if err := rt.ServeRoute(w, req); err != nil {
		rt.respondError(w, req, err)
	}
}

// ServeRoute dispatches the request against the route table. Routing
// outcomes are reported as errors (ErrNotFound, *MethodNotAllowedError)
// and left untranslated, which lets a parent router treat a sub-router's
// miss as non-fatal. Implements Handler, so routers nest as mounts.
func (rt *Router) ServeRoute(w http.ResponseWriter, req *http.Request) error {
	comps, trailingSlash := requestComponents(req.URL.Path)

	var prev []any
	originalPath := req.URL.Path
	if dc := dispatchState(req); dc != nil {
		prev = dc.pathArgs
		if dc.originalPath != "" {
			originalPath = dc.originalPath
		}
	}

	// Converted placeholder values are cached per dispatch pass, so a
	// component tried by several candidate routes converts only once.
	cache := make(map[conversionKey]conversion)

	var allow []string
	for i := range rt.entries {
		e := &rt.entries[i]

		if e.route != nil {
			m, ok := matchPattern(req, rt.templates, e.route.pattern, comps, false, prev, cache)
			if !ok {
				continue
			}
			if e.route.method != req.Method {
				allow = appendAllowed(allow, e.route.method)
				continue
			}

			dc := &dispatchContext{
				pathArgs:     concatArgs(prev, m.args),
				wildcardPath: wildcardTail(m.rest, trailingSlash),
				originalPath: originalPath,
			}
			return rt.wrap(e.route.handler).ServeRoute(w, withDispatchState(req, dc))
		}

		m, ok := matchPattern(req, rt.templates, e.mount.prefix, comps, true, prev, cache)
		if !ok {
			continue
		}
		err := e.mount.handler.ServeRoute(w, rt.mountRequest(req, m, trailingSlash, originalPath, prev))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return err
	}

	if len(allow) > 0 {
		return &MethodNotAllowedError{Allow: allow}
	}
	return ErrNotFound
}

// mountRequest derives the request handed to a mounted handler: the URL
// path is rewritten to the components the prefix did not consume, and the
// dispatch state carries the prefix's converted arguments and the
// original pre-mount path.
func (rt *Router) mountRequest(req *http.Request, m matchResult, trailingSlash bool, originalPath string, prev []any) *http.Request {
	subPath := "/" + strings.Join(m.rest, "/")
	if trailingSlash && len(m.rest) > 0 {
		subPath += "/"
	}

	sub := req.Clone(req.Context())
	u := *req.URL
	u.Path = subPath
	u.RawPath = ""
	sub.URL = &u

	return withDispatchState(sub, &dispatchContext{
		pathArgs:     concatArgs(prev, m.args),
		originalPath: originalPath,
	})
}

// wrap applies the middleware chain to the matched handler.
func (rt *Router) wrap(h Handler) Handler {
	for i := len(rt.middlewares) - 1; i >= 0; i-- {
		h = rt.middlewares[i](h)
	}
	return h
}

// respondError translates a dispatch failure into an HTTP error response.
// Only the router's own taxonomy is translated; other handler errors go
// to ErrorHandler or the default ErrorHandling behavior.
func (rt *Router) respondError(w http.ResponseWriter, req *http.Request, err error) {
	var (
		methodErr *MethodNotAllowedError
		argsErr   *args.ArgumentsError
		httpErr   *HTTPError
	)

	switch {
	case errors.Is(err, ErrNotFound):
		message := fmt.Sprintf("Path '%s' not found.", req.URL.Path)
		response.HTML(w, http.StatusNotFound, pages.HTTPStatusPage(http.StatusNotFound, message))

	case errors.As(err, &methodErr):
		// RFC 9110 Section 15.5.6: a 405 response must include an
		// Allow header listing the valid methods.
		w.Header().Set("Allow", strings.Join(methodErr.Allow, ", "))
		message := fmt.Sprintf("Method '%s' not allowed. Please try %s.",
			req.Method, strings.Join(methodErr.Allow, " or "))
		response.HTML(w, http.StatusMethodNotAllowed, pages.HTTPStatusPage(http.StatusMethodNotAllowed, message))

	case errors.As(err, &argsErr):
		response.HTML(w, http.StatusBadRequest, pages.BadArgumentsPage(argsErr.Arguments))

	case errors.As(err, &httpErr):
		for name, values := range httpErr.Headers {
			if strings.EqualFold(name, "Content-Type") {
				continue
			}
			for _, v := range values {
				w.Header().Add(name, v)
			}
		}
		response.HTML(w, httpErr.Status, pages.HTTPStatusPage(httpErr.Status, httpErr.Message))

	default:
		if rt.ErrorHandler != nil {
			rt.ErrorHandler(w, req, err)
			return
		}
		if !rt.ErrorHandling {
			panic(err)
		}
		rt.logger().LogAttrs(req.Context(), slog.LevelError, "error while handling request",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Any("error", err),
		)
		response.HTML(w, http.StatusInternalServerError,
			pages.HTTPStatusPage(http.StatusInternalServerError, "Internal server error."))
	}
}

func (rt *Router) logger() *slog.Logger {
	if rt.Logger != nil {
		return rt.Logger
	}
	return slog.Default()
}
