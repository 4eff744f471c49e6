package args

import (
	"sort"
	"strings"
)

// ArgumentsError reports one or more invalid request arguments. Keys are
// the offending argument names, values describe the problem. A router
// translates it into a 400 Bad Request response listing the arguments.
type ArgumentsError struct {
	Arguments map[string]string
}

func (e *ArgumentsError) Error() string {
	if len(e.Arguments) == 0 {
		return "invalid arguments"
	}

	names := make([]string, 0, len(e.Arguments))
	for name := range e.Arguments {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("invalid arguments: ")
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(" (")
		sb.WriteString(e.Arguments[name])
		sb.WriteString(")")
	}
	return sb.String()
}
