package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is the dispatch outcome when no entry matches the
	// request path. Triggers 404 Not Found per RFC 9110 Section 15.5.5.
	ErrNotFound = errors.New("no matching route was found")

	// ErrInvalidPattern is returned when a route pattern cannot be
	// compiled, e.g. a wildcard that is not the last component or a
	// malformed placeholder.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrUnknownTemplateHandler is returned when a route pattern
	// references a placeholder name with no registered template handler.
	ErrUnknownTemplateHandler = errors.New("unknown template path handler")

	// ErrDuplicateTemplateHandler is returned when a template handler
	// name is registered twice on the same router.
	ErrDuplicateTemplateHandler = errors.New("template path handler already registered")

	// ErrInvalidMountPattern is returned when a sub-router prefix
	// contains a wildcard.
	ErrInvalidMountPattern = errors.New("invalid mount pattern")

	// ErrMountCycle is returned when mounting a router would make it
	// reachable from itself.
	ErrMountCycle = errors.New("mount cycle detected")
)

// MethodNotAllowedError is the dispatch outcome when at least one route
// matches the request path but none matches the request method. Triggers
// 405 Method Not Allowed per RFC 9110 Section 15.5.6; Allow lists the
// methods registered for the path in first-seen order.
type MethodNotAllowedError struct {
	Allow []string
}

func (e *MethodNotAllowedError) Error() string {
	return "method is not allowed, valid methods: " + strings.Join(e.Allow, ", ")
}

// HTTPError is an error with an associated HTTP status. When a handler
// returns an HTTPError, the router responds with the corresponding status
// page instead of treating it as an internal failure.
type HTTPError struct {
	// Status is the HTTP status code to respond with.
	Status int

	// Message is rendered, HTML-escaped, on the status page.
	Message string

	// Headers are added to the response. A Content-Type header is
	// ignored; the status page sets its own.
	Headers http.Header
}

// NewHTTPError returns an HTTPError with the given status and message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}
