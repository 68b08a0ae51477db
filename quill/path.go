package quill

import "strings"

// Path is an ordered sequence of command path segments. Lookup and equality
// are case-insensitive; segments keep their original casing for display.
type Path []string

// ParsePath splits a whitespace-separated path string into a Path.
func ParsePath(s string) Path {
	return Path(strings.Fields(s))
}

func (p Path) String() string {
	return strings.Join(p, " ")
}

// Equal reports whether two paths match segment by segment, ignoring case.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !strings.EqualFold(p[i], other[i]) {
			return false
		}
	}
	return true
}

// Name returns the last segment, the command or category's own name.
func (p Path) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// pathKey normalizes a segment for tree lookup.
func pathKey(segment string) string {
	return strings.ToLower(segment)
}
