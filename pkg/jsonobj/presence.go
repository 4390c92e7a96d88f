package jsonobj

import "sort"

// Presence maps a field name to whether that key appeared in the source payload.
type Presence map[string]bool

// Has reports whether field was present. Unknown fields report false.
func (p Presence) Has(field string) bool {
	return p[field]
}

// Present returns the sorted names of the fields that were present.
func (p Presence) Present() []string {
	out := make([]string, 0, len(p))
	for k, ok := range p {
		if ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
