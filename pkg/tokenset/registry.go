package tokenset

// Registry is a name to token lookup. It is populated once by NewRegistry and
// is read-only afterwards, so a single value can be shared between goroutines.
type Registry[T ~string] struct {
	byName map[string]T
	order  []T
}

// NewRegistry returns a registry of the given tokens.
func NewRegistry[T ~string](tokens ...T) *Registry[T] {
	r := &Registry[T]{byName: make(map[string]T, len(tokens))}
	for _, t := range tokens {
		if _, ok := r.byName[string(t)]; ok || t == "" {
			continue
		}
		r.byName[string(t)] = t
		r.order = append(r.order, t)
	}
	return r
}

// Lookup returns the registered token for name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	if r == nil {
		var zero T
		return zero, false
	}
	t, ok := r.byName[name]
	return t, ok
}

// Len returns the number of registered tokens.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// All returns every registered token in registration order.
func (r *Registry[T]) All() Set[T] {
	if r == nil {
		return nil
	}
	return Of(r.order...)
}

// Split partitions s into registered and unregistered tokens. It is advisory:
// unknown tokens are still valid members of a set.
func (r *Registry[T]) Split(s Set[T]) (known, unknown Set[T]) {
	for _, t := range s {
		if _, ok := r.Lookup(string(t)); ok {
			known = known.With(t)
		} else {
			unknown = unknown.With(t)
		}
	}
	return known, unknown
}
