package router

import (
	"net/http"
	"strings"
)

// conversionKey caches one placeholder conversion within a dispatch pass.
// Keyed by handler name and component value, matching how the same
// component is retried by successive candidate routes.
type conversionKey struct {
	name  string
	value string
}

type conversion struct {
	value any
	err   error
}

// matchResult holds the outcome of a successful pattern match: the values
// converted for the pattern's placeholders and the path components the
// pattern did not consume.
type matchResult struct {
	args []any
	rest []string
}

// matchPattern matches a compiled pattern against the request path
// components. In prefix mode (sub-router mounts) leftover components are
// allowed; otherwise the shape must match exactly unless the pattern ends
// in a wildcard, which consumes all remaining components unconditionally.
//
// A placeholder conversion failure makes the whole pattern a non-match;
// the caller falls through to the next registered entry.
func matchPattern(req *http.Request, templates map[string]TemplateHandler, p pattern, comps []string, prefixMode bool, prev []any, cache map[conversionKey]conversion) (matchResult, bool) {
	if p.wildcard || prefixMode {
		if len(p.segments) > len(comps) {
			return matchResult{}, false
		}
	} else if len(p.segments) != len(comps) {
		return matchResult{}, false
	}

	var converted []any
	for i, seg := range p.segments {
		component := comps[i]
		switch seg.kind {
		case segmentLiteral:
			if seg.value != component {
				return matchResult{}, false
			}
		case segmentTemplate:
			v, err := convertComponent(req, templates[seg.value], seg.value, component, concatArgs(prev, converted), cache)
			if err != nil {
				return matchResult{}, false
			}
			converted = append(converted, v)
		}
	}

	return matchResult{args: converted, rest: comps[len(p.segments):]}, true
}

// convertComponent runs a template handler on a path component,
// consulting the per-dispatch cache first. The handler receives its own
// copy of the previously converted arguments. The compiler has already
// verified the handler name, so h is never nil for patterns compiled by
// this router.
func convertComponent(req *http.Request, h TemplateHandler, name, component string, previous []any, cache map[conversionKey]conversion) (any, error) {
	key := conversionKey{name: name, value: component}
	if c, ok := cache[key]; ok {
		return c.value, c.err
	}

	v, err := h(req, previous, component)
	cache[key] = conversion{value: v, err: err}
	return v, err
}

// requestComponents splits a request path into components, stripping
// empty trailing components and remembering whether the path ended in a
// slash so a wildcard tail can reproduce it.
func requestComponents(path string) ([]string, bool) {
	path = strings.TrimPrefix(path, "/")
	trailingSlash := false
	for strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
		trailingSlash = true
	}
	if path == "" {
		return nil, trailingSlash
	}
	return strings.Split(path, "/"), trailingSlash
}

// wildcardTail joins the components consumed by a trailing wildcard.
func wildcardTail(rest []string, trailingSlash bool) string {
	if len(rest) == 0 {
		return ""
	}
	tail := strings.Join(rest, "/")
	if trailingSlash {
		tail += "/"
	}
	return tail
}

// concatArgs returns a fresh slice holding prev followed by next. The
// result never aliases either input, keeping published argument
// sequences immutable.
func concatArgs(prev, next []any) []any {
	if len(prev) == 0 && len(next) == 0 {
		return nil
	}
	out := make([]any, 0, len(prev)+len(next))
	out = append(out, prev...)
	return append(out, next...)
}

// appendAllowed records a method for the Allow header, preserving
// first-seen order without duplicates.
func appendAllowed(allow []string, method string) []string {
	for _, m := range allow {
		if m == method {
			return allow
		}
	}
	return append(allow, method)
}
