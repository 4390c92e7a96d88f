// Package tokenset implements ordered sets of named tokens, such as requested
// Graph fields or OAuth permission scopes, that serialize to one comma-joined
// query parameter.
package tokenset

import "strings"

// Separator joins tokens when a set is serialized.
const Separator = ","

// Set is an ordered collection of unique, case-sensitive tokens.
// Methods never modify the receiver; they return a new Set.
type Set[T ~string] []T

// Of builds a set from tokens, dropping duplicates and empty names.
func Of[T ~string](tokens ...T) Set[T] {
	var s Set[T]
	return s.With(tokens...)
}

// Parse splits a comma-separated list into a set. Surrounding whitespace is trimmed.
func Parse[T ~string](csv string) Set[T] {
	parts := strings.Split(csv, Separator)
	tokens := make([]T, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, T(strings.TrimSpace(p)))
	}
	return Of(tokens...)
}

// With returns a set holding the receiver's tokens followed by any of tokens not already present.
func (s Set[T]) With(tokens ...T) Set[T] {
	out := make(Set[T], len(s), len(s)+len(tokens))
	copy(out, s)
	for _, t := range tokens {
		if t == "" || out.Contains(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Union combines two sets, preserving the receiver's order first.
func (s Set[T]) Union(other Set[T]) Set[T] {
	return s.With(other...)
}

// Contains reports whether t is a member of the set.
func (s Set[T]) Contains(t T) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// Len returns the number of tokens.
func (s Set[T]) Len() int {
	return len(s)
}

// IsEmpty reports whether the set holds no tokens.
func (s Set[T]) IsEmpty() bool {
	return len(s) == 0
}

// Strings returns the token names in order.
func (s Set[T]) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

// String serializes the set as a comma-joined list.
func (s Set[T]) String() string {
	return strings.Join(s.Strings(), Separator)
}
