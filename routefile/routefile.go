// Package routefile loads declarative route tables from YAML documents
// and applies them to a router. Handlers are referenced by name and
// resolved against a caller-supplied registry at apply time.
//
// A route file is a single ordered list, preserving match precedence
// across routes and sub-router mounts:
//
//	routes:
//	  - path: user/{id}
//	    method: GET
//	    handler: show_user
//	  - prefix: api
//	    router: api
//	  - path: static/*
//	    method: GET
//	    handler: static
package routefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vitalvas/routekit/router"
	"gopkg.in/yaml.v3"
)

// File is a parsed route file.
type File struct {
	Routes []Entry `yaml:"routes"`
}

// Entry is one element of the route list: either a route (path, method,
// handler) or a sub-router mount (prefix, router).
type Entry struct {
	// Route fields.
	Path    string
	Method  string
	Handler string

	// Mount fields.
	Prefix string
	Router string
}

// rawEntry mirrors Entry for decoding; Entry has a custom unmarshaler.
type rawEntry struct {
	Path    string `yaml:"path"`
	Method  string `yaml:"method"`
	Handler string `yaml:"handler"`
	Prefix  string `yaml:"prefix"`
	Router  string `yaml:"router"`
}

// IsMount reports whether the entry declares a sub-router mount.
func (e *Entry) IsMount() bool {
	return e.Router != ""
}

// UnmarshalYAML decodes and validates one route list element.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: route entry must be a mapping", node.Line)
	}

	var raw rawEntry
	if err := node.Decode(&raw); err != nil {
		return err
	}

	isRoute := raw.Handler != ""
	isMount := raw.Router != ""
	switch {
	case isRoute && isMount:
		return fmt.Errorf("line %d: entry declares both handler and router", node.Line)
	case !isRoute && !isMount:
		return fmt.Errorf("line %d: entry declares neither handler nor router", node.Line)
	case isRoute && raw.Method == "":
		return fmt.Errorf("line %d: route %q has no method", node.Line, raw.Path)
	case isRoute && raw.Prefix != "":
		return fmt.Errorf("line %d: route %q must use path, not prefix", node.Line, raw.Handler)
	case isMount && (raw.Path != "" || raw.Method != ""):
		return fmt.Errorf("line %d: mount %q must declare only prefix and router", node.Line, raw.Router)
	}

	if isRoute {
		method := strings.ToUpper(raw.Method)
		if !validMethods[method] {
			return fmt.Errorf("line %d: invalid method %q", node.Line, raw.Method)
		}
		raw.Method = method
	}

	*e = Entry(raw)
	return nil
}

var validMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"POST":    true,
	"PUT":     true,
	"PATCH":   true,
	"DELETE":  true,
	"OPTIONS": true,
}

// Load parses a route file from r.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("cannot parse route file: %w", err)
	}
	if len(f.Routes) == 0 {
		return nil, errors.New("route file declares no routes")
	}
	return &f, nil
}

// LoadFile parses the route file at path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Apply registers the file's routes and mounts on rt in declaration
// order. The handlers map resolves both handler and router names; a
// mount's router name must resolve to a Handler, typically a *Router.
func (f *File) Apply(rt *router.Router, handlers map[string]router.Handler) error {
	for _, e := range f.Routes {
		if e.IsMount() {
			h, ok := handlers[e.Router]
			if !ok {
				return fmt.Errorf("unknown router %q", e.Router)
			}
			if err := rt.AddSubRouter(e.Prefix, h); err != nil {
				return fmt.Errorf("mount %q: %w", e.Prefix, err)
			}
			continue
		}

		h, ok := handlers[e.Handler]
		if !ok {
			return fmt.Errorf("unknown handler %q", e.Handler)
		}
		if err := rt.AddRoute(e.Path, e.Method, h); err != nil {
			return fmt.Errorf("route %q: %w", e.Path, err)
		}
	}
	return nil
}
