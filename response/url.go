package response

import (
	"net/http"
	"net/url"
)

// AbsoluteURL constructs an absolute URL using the request URL as base,
// per RFC 3986 Section 5.3 (component recomposition). The scheme is
// inferred from the request's TLS state unless the request URL carries
// one. A part that does not parse as a URL reference is resolved as an
// opaque path.
func AbsoluteURL(r *http.Request, part string) string {
	base := &url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}

	ref, err := url.Parse(part)
	if err != nil {
		ref = &url.URL{Path: part}
	}
	return base.ResolveReference(ref).String()
}

func requestScheme(r *http.Request) string {
	if r.URL.Scheme != "" {
		return r.URL.Scheme
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
