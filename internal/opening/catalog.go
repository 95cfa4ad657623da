// Package opening maps exact move sequences to opening names.
package opening

import "strings"

// Catalog resolves the name of the opening reached by a move path.
//
// Lookup matches the full path only: a path that extends a cataloged line by
// one ply, or deviates from one, has no name even if an ancestor does.
type Catalog interface {
	Lookup(path []string) (string, bool)
}

// Static is an immutable in-memory catalog.
type Static struct {
	names map[string]string
}

// Compile-time check that Static implements Catalog.
var _ Catalog = (*Static)(nil)

// NewStatic builds a catalog from entries keyed by space-separated SAN lines,
// for example "e4 c5".
func NewStatic(entries map[string]string) *Static {
	names := make(map[string]string, len(entries))
	for line, name := range entries {
		names[key(strings.Fields(line))] = name
	}
	return &Static{names: names}
}

// Lookup returns the name cataloged for exactly path.
func (s *Static) Lookup(path []string) (string, bool) {
	if len(path) == 0 {
		return "", false
	}
	name, ok := s.names[key(path)]
	return name, ok
}

// Len returns the number of cataloged lines.
func (s *Static) Len() int {
	return len(s.names)
}

func key(path []string) string {
	return strings.Join(path, " ")
}
