package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TemplateHandler converts one path component matched by a {name}
// placeholder into a typed value. It receives the request, the values
// already converted for earlier placeholders on the same path (a fresh
// copy per call, safe to inspect but not shared), and the decoded path
// component. Returning a non-nil error marks the candidate route as not
// matching; dispatch then falls through to the next registered entry.
type TemplateHandler func(r *http.Request, previous []any, value string) (any, error)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentTemplate
)

// segment is one component of a compiled route pattern: either a literal
// path component or a {name} placeholder.
type segment struct {
	kind segmentKind
	// value is the decoded literal text, or the template handler name.
	value string
}

// pattern is a compiled route pattern. When wildcard is set, the pattern
// additionally matches any number of trailing path components.
type pattern struct {
	segments []segment
	wildcard bool
}

// splitPath splits a path into its components, discarding empty leading
// and trailing components so that "/foo/" and "foo" are equivalent.
func splitPath(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// compilePattern parses a route pattern string into a sequence of segment
// matchers, resolving placeholder names against the registered template
// handlers. A trailing "*" is accepted as a wildcard only when
// allowWildcard is set.
func compilePattern(s string, templates map[string]TemplateHandler, allowWildcard bool) (pattern, error) {
	parts := splitPath(s)

	var p pattern
	if len(parts) > 0 && parts[len(parts)-1] == "*" {
		if !allowWildcard {
			return pattern{}, fmt.Errorf("%w: wildcard not allowed in %q", ErrInvalidMountPattern, s)
		}
		parts = parts[:len(parts)-1]
		p.wildcard = true
	}

	p.segments = make([]segment, 0, len(parts))
	for _, part := range parts {
		seg, err := compileSegment(part, templates)
		if err != nil {
			return pattern{}, err
		}
		p.segments = append(p.segments, seg)
	}
	return p, nil
}

func compileSegment(part string, templates map[string]TemplateHandler) (segment, error) {
	if part == "*" {
		return segment{}, fmt.Errorf("%w: wildcard not at end of path", ErrInvalidPattern)
	}
	if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
		name := part[1 : len(part)-1]
		if name == "" || strings.ContainsAny(name, "{}") {
			return segment{}, fmt.Errorf("%w: malformed placeholder %q", ErrInvalidPattern, part)
		}
		if _, ok := templates[name]; !ok {
			return segment{}, fmt.Errorf("%w: %q", ErrUnknownTemplateHandler, name)
		}
		return segment{kind: segmentTemplate, value: name}, nil
	}

	decoded, err := url.PathUnescape(part)
	if err != nil {
		return segment{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, part, err)
	}
	return segment{kind: segmentLiteral, value: decoded}, nil
}

// --- Builtin template handlers ---
//
// The registry of a new Router starts empty; these are common converters
// callers can register under names of their choosing.

// IntTemplateHandler converts a path component to an int.
func IntTemplateHandler(_ *http.Request, _ []any, value string) (any, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", value)
	}
	return n, nil
}

// StringTemplateHandler passes the decoded path component through
// unchanged.
func StringTemplateHandler(_ *http.Request, _ []any, value string) (any, error) {
	return value, nil
}

// UUIDTemplateHandler converts a path component to a uuid.UUID
// (RFC 9562 textual form).
func UUIDTemplateHandler(_ *http.Request, _ []any, value string) (any, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID %q", value)
	}
	return id, nil
}
