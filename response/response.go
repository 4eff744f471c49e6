// Package response provides helpers for constructing HTTP responses:
// raw content, JSON and HTML bodies, and redirect responses with
// generated HTML pages.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vitalvas/routekit/pages"
)

// Content writes body with the given status and content type. The
// Content-Length header is always set.
func Content(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	w.Write(body)
}

// JSON writes a JSON response. A string or []byte value is written as-is
// and assumed to already be JSON; anything else is marshaled. If
// marshaling fails, an HTTP 500 Internal Server Error is written instead.
func JSON(w http.ResponseWriter, status int, v any) {
	var encoded []byte
	switch value := v.(type) {
	case []byte:
		encoded = value
	case string:
		encoded = []byte(value)
	default:
		var err error
		encoded, err = json.Marshal(value)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	Content(w, status, "application/json; charset=utf-8", encoded)
}

// HTML writes an HTML response.
func HTML(w http.ResponseWriter, status int, html string) {
	Content(w, status, "text/html; charset=utf-8", []byte(html))
}

// NoContent writes an empty 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// CreatedAt writes a 201 Created response with a Location header
// pointing at urlPart, resolved against the request URL, and a simple
// HTML body linking to it.
func CreatedAt(w http.ResponseWriter, r *http.Request, urlPart string) {
	url := AbsoluteURL(r, urlPart)
	w.Header().Set("Location", url)
	HTML(w, http.StatusCreated, pages.CreatedAtPage(url))
}

// CreatedAsJSON writes a 201 Created response with a Location header and
// a JSON body.
func CreatedAsJSON(w http.ResponseWriter, r *http.Request, urlPart string, v any) {
	w.Header().Set("Location", AbsoluteURL(r, urlPart))
	JSON(w, http.StatusCreated, v)
}

// TemporaryRedirect writes a 307 Temporary Redirect response to urlPart,
// resolved against the request URL. Per RFC 9110 Section 15.4.8 the
// client repeats the request with the same method.
func TemporaryRedirect(w http.ResponseWriter, r *http.Request, urlPart string) {
	url := AbsoluteURL(r, urlPart)
	w.Header().Set("Location", url)
	HTML(w, http.StatusTemporaryRedirect, pages.TemporaryRedirectPage(url))
}

// SeeOther writes a 303 See Other response to urlPart, resolved against
// the request URL.
func SeeOther(w http.ResponseWriter, r *http.Request, urlPart string) {
	url := AbsoluteURL(r, urlPart)
	w.Header().Set("Location", url)
	HTML(w, http.StatusSeeOther, pages.SeeOtherPage(url))
}
