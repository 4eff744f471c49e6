// Package args parses request arguments from the query string or the
// request body into typed values, applying per-argument multiplicity
// rules. Arguments of GET and HEAD requests are read from the query
// string; arguments of POST, PUT, PATCH, and DELETE requests are read
// from the body (urlencoded or multipart form data). Other methods are
// not supported.
package args

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Multiplicity controls how many values an argument accepts and whether
// it must be supplied.
type Multiplicity int

const (
	// Any accepts zero or more values; the parsed value is a []any,
	// empty when the argument was not supplied.
	Any Multiplicity = iota

	// RequiredAny works like Any but requires at least one value.
	RequiredAny

	// Required accepts exactly one value, which must be supplied.
	Required

	// Optional accepts one value; when the argument was not supplied,
	// the result contains no entry for it.
	Optional
)

func (m Multiplicity) String() string {
	switch m {
	case Any:
		return "0+"
	case RequiredAny:
		return "1+"
	case Required:
		return "1"
	case Optional:
		return "0-1"
	}
	return fmt.Sprintf("Multiplicity(%d)", int(m))
}

// Template describes one expected argument.
type Template struct {
	// Name is the argument name expected in the query string or body.
	Name string

	// Parse converts the supplied value. See ParserFunc for plain
	// string parsers and FileParser for file uploads.
	Parse ValueParser

	Multiplicity Multiplicity
}

var errMissingArgument = errors.New("mandatory argument missing")

var formMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// argument is one supplied argument: a list of string values or a file.
type argument struct {
	values []string
	file   *FileArgument
}

// Parser parses request arguments. As opposed to the package-level Parse,
// Parse on a Parser can be called multiple times for the same request;
// the request input is consumed once and cached.
type Parser struct {
	arguments map[string]argument
	notFound  map[string]bool
}

// NewParser reads the request's arguments. It returns an error when the
// request method is unsupported or the body cannot be parsed as a form.
func NewParser(r *http.Request) (*Parser, error) {
	arguments, err := readArguments(r)
	if err != nil {
		return nil, err
	}

	notFound := make(map[string]bool, len(arguments))
	for name := range arguments {
		notFound[name] = true
	}
	return &Parser{arguments: arguments, notFound: notFound}, nil
}

func readArguments(r *http.Request) (map[string]argument, error) {
	switch {
	case r.Method == http.MethodGet || r.Method == http.MethodHead:
		values, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			return nil, fmt.Errorf("malformed query string: %w", err)
		}
		return argumentsFromValues(values, nil), nil

	case formMethods[r.Method]:
		return readFormArguments(r)

	default:
		return nil, fmt.Errorf("unsupported method: %q", r.Method)
	}
}

func readFormArguments(r *http.Request) (map[string]argument, error) {
	mediaType := r.Header.Get("Content-Type")
	if isMultipart(mediaType) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("cannot parse form data: %w", err)
		}
		files := make(map[string]*FileArgument)
		for name, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			f, err := openFileArgument(headers[0])
			if err != nil {
				return nil, err
			}
			files[name] = f
		}
		return argumentsFromValues(url.Values(r.MultipartForm.Value), files), nil
	}

	// net/http reads the body form for POST, PUT, and PATCH only;
	// DELETE bodies are parsed by hand.
	if r.Method == http.MethodDelete {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("cannot read form data: %w", err)
		}
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, fmt.Errorf("cannot parse form data: %w", err)
		}
		return argumentsFromValues(values, nil), nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("cannot parse form data: %w", err)
	}
	return argumentsFromValues(r.PostForm, nil), nil
}

const maxFormMemory = 32 << 20

func isMultipart(contentType string) bool {
	return len(contentType) >= len("multipart/") && contentType[:len("multipart/")] == "multipart/"
}

func argumentsFromValues(values url.Values, files map[string]*FileArgument) map[string]argument {
	arguments := make(map[string]argument, len(values)+len(files))
	for name, vs := range values {
		arguments[name] = argument{values: vs}
	}
	for name, f := range files {
		arguments[name] = argument{file: f}
	}
	return arguments
}

// Parse parses the supplied arguments against the templates and returns
// a map from argument name to parsed value. All failures are aggregated
// into a single *ArgumentsError.
//
// When exhaustive is true, arguments supplied by the request but not
// listed in the templates of this or a previous Parse call are errors.
func (p *Parser) Parse(templates []Template, exhaustive ...bool) (map[string]any, error) {
	errors := make(map[string]string)
	parsed := make(map[string]any)

	for _, tmpl := range templates {
		value, present, err := p.parseTemplate(tmpl)
		delete(p.notFound, tmpl.Name)
		if err != nil {
			errors[tmpl.Name] = err.Error()
			continue
		}
		if present {
			parsed[tmpl.Name] = value
		}
	}

	if len(exhaustive) > 0 && exhaustive[0] {
		for name := range p.notFound {
			errors[name] = "unknown argument"
		}
	}

	if len(errors) > 0 {
		return nil, &ArgumentsError{Arguments: errors}
	}
	return parsed, nil
}

func (p *Parser) parseTemplate(tmpl Template) (value any, present bool, err error) {
	arg, supplied := p.arguments[tmpl.Name]

	switch tmpl.Multiplicity {
	case Required:
		if !supplied {
			return nil, false, errMissingArgument
		}
		value, err = parseSingle(tmpl.Parse, arg)
		return value, err == nil, err

	case Optional:
		if !supplied {
			return nil, false, nil
		}
		value, err = parseSingle(tmpl.Parse, arg)
		return value, err == nil, err

	case Any, RequiredAny:
		values, err := parseMulti(tmpl.Parse, arg, supplied)
		if err != nil {
			return nil, false, err
		}
		if tmpl.Multiplicity == RequiredAny && len(values) == 0 {
			return nil, false, errMissingArgument
		}
		return values, true, nil
	}

	return nil, false, fmt.Errorf("invalid multiplicity %v", tmpl.Multiplicity)
}

func parseSingle(parser ValueParser, arg argument) (any, error) {
	if arg.file != nil {
		return parser.ParseFile(arg.file)
	}
	if len(arg.values) == 0 {
		return nil, errors.New("value is not a string")
	}
	return parser.ParseString(arg.values[0])
}

func parseMulti(parser ValueParser, arg argument, supplied bool) ([]any, error) {
	if !supplied {
		return []any{}, nil
	}
	if arg.file != nil {
		return nil, errors.New("value is not a list of strings")
	}
	values := make([]any, 0, len(arg.values))
	for _, v := range arg.values {
		parsed, err := parser.ParseString(v)
		if err != nil {
			return nil, err
		}
		values = append(values, parsed)
	}
	return values, nil
}

// Parse reads and parses the request's arguments in one call. The request
// input is consumed, so only one package-level Parse per request is
// possible; use a Parser for repeated parsing.
func Parse(r *http.Request, templates []Template, exhaustive ...bool) (map[string]any, error) {
	parser, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	return parser.Parse(templates, exhaustive...)
}
