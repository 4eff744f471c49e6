// Package router implements a request router that matches incoming HTTP
// requests against an ordered table of route patterns and dispatches to
// the first matching handler.
//
// The package implements routing semantics based on:
//   - RFC 9110 (HTTP Semantics)
//   - RFC 3986 (URIs)
//
// # Routes
//
// A route is a (pattern, method, handler) registration. Patterns are
// sequences of path components: literal text, {name} placeholders, and a
// trailing "*" wildcard:
//
//	r := router.New()
//	r.AddTemplateHandler("id", router.IntTemplateHandler)
//	r.AddRoute("user/{id}", http.MethodGet, showUser)
//	r.AddRoute("static/*", http.MethodGet, serveStatic)
//
// Leading and trailing slashes in patterns are ignored; "user/{id}" and
// "/user/{id}/" register the same shape.
//
// # Template Handlers
//
// A {name} placeholder consumes exactly one path component and converts
// it through the template handler registered under that name. Handlers
// return typed values, which dispatch collects in placeholder order and
// publishes to the matched handler:
//
//	func showUser(w http.ResponseWriter, r *http.Request) error {
//		id := router.PathArgs(r)[0].(int)
//		...
//	}
//
// A conversion failure makes the candidate route a non-match; dispatch
// falls through to the next registered entry, so two routes with the same
// shape but different placeholder types can coexist.
//
// # Precedence
//
// Routes and sub-router mounts share one ordered table. The first
// registered entry that matches wins; there is no specificity-based
// reordering. When a path matches some route's shape but no route's
// method, dispatch reports 405 with an Allow header listing the methods
// registered for that path in first-seen order; when nothing matches the
// path at all, it reports 404.
//
// # Sub-Routers
//
// A router (or any Handler) can be mounted under a prefix:
//
//	api := router.New()
//	api.AddRoute("status", http.MethodGet, status)
//	r.AddSubRouter("api", api)
//
// The mounted handler sees the request path with the prefix stripped.
// Placeholder values converted while matching the prefix precede the
// mounted router's own values in PathArgs, and OriginalPath returns the
// full pre-mount path.
package router
