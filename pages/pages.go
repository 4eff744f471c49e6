// Package pages renders standardized HTML status and error pages.
package pages

import (
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
)

// HTTPStatusPage renders an HTML page for the given status code. The
// message, when non-empty, appears in a paragraph below the heading and
// is HTML-escaped.
func HTTPStatusPage(code int, message string) string {
	var htmlMessage string
	if message != "" {
		htmlMessage = html.EscapeString(message)
	}
	return HTTPStatusPageHTML(code, htmlMessage, "")
}

// HTTPStatusPageHTML renders an HTML page for the given status code with
// a raw HTML message and raw additional content.
//
// WARNING: htmlMessage and htmlContent are pasted into the page as is.
// Do not use with unsanitized data.
func HTTPStatusPageHTML(code int, htmlMessage, htmlContent string) string {
	heading := fmt.Sprintf("%d &#x2014; %s", code, http.StatusText(code))

	var paragraph string
	if htmlMessage != "" {
		paragraph = fmt.Sprintf("\n        <p>%s</p>", htmlMessage)
	}

	var content string
	if htmlContent != "" {
		content = htmlContent + "\n"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
    <head>
        <title>%s</title>
    </head>
    <body>
        <h1>%s</h1>%s
%s    </body>
</html>
`, heading, heading, paragraph, content)
}

// CreatedAtPage renders the body of a 201 Created response linking to the
// created resource.
func CreatedAtPage(url string) string {
	escaped := html.EscapeString(url)
	message := fmt.Sprintf(`Created at <a href="%s">%s</a>.`, escaped, escaped)
	return HTTPStatusPageHTML(http.StatusCreated, message, "")
}

// TemporaryRedirectPage renders the body of a 307 Temporary Redirect
// response linking to the redirect target.
func TemporaryRedirectPage(url string) string {
	escaped := html.EscapeString(url)
	message := fmt.Sprintf(`Please see <a href="%s">%s</a>.`, escaped, escaped)
	return HTTPStatusPageHTML(http.StatusTemporaryRedirect, message, "")
}

// SeeOtherPage renders the body of a 303 See Other response linking to
// the redirect target.
func SeeOtherPage(url string) string {
	escaped := html.EscapeString(url)
	message := fmt.Sprintf(`Please see <a href="%s">%s</a>.`, escaped, escaped)
	return HTTPStatusPageHTML(http.StatusSeeOther, message, "")
}

// BadArgumentsPage renders the body of a 400 Bad Request response listing
// invalid arguments. Keys are argument names, values describe the errors;
// both are HTML-escaped.
func BadArgumentsPage(arguments map[string]string) string {
	return HTTPStatusPageHTML(http.StatusBadRequest, "Invalid arguments:", BadArgumentsList(arguments))
}

// BadArgumentsList renders the argument list used by BadArgumentsPage,
// sorted by argument name. It returns an empty string for an empty map.
func BadArgumentsList(arguments map[string]string) string {
	if len(arguments) == 0 {
		return ""
	}

	names := make([]string, 0, len(arguments))
	for name := range arguments {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("<ul class=\"bad-arguments\">\n")
	for _, name := range names {
		fmt.Fprintf(&sb, `    <li class="argument">
        <span class="argument-name">%s</span>:
        <span class="error-message">%s</span>
    </li>
`, html.EscapeString(name), html.EscapeString(arguments[name]))
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}
