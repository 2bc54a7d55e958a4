package vebmap

// EqualFunc reports whether a and b hold the same set of keys, each mapped
// to values considered equal by eq.
func EqualFunc[V any](a, b *Map[V], eq func(x, y V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k := range a.veb.All() {
		av, _ := a.table.Get(k)
		bv, ok := b.table.Get(k)
		if !ok || !eq(av, bv) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b hold the same set of keys mapped to equal
// values.
func Equal[V comparable](a, b *Map[V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// Replace returns a new Map with k's value replaced by v. Unlike Put, it
// fails with *MissingKeyError if k is not already present.
func (m *Map[V]) Replace(k uint, v V) (*Map[V], error) {
	if !m.HasKey(k) {
		return nil, &MissingKeyError{Key: k}
	}
	return m.Put(k, v)
}

// ReplaceFunc returns a new Map with k's value replaced by fn(old). It
// fails with *MissingKeyError if k is not already present; fn is not
// called in that case.
func (m *Map[V]) ReplaceFunc(k uint, fn func(old V) V) (*Map[V], error) {
	old, ok := m.table.Get(k)
	if !ok {
		return nil, &MissingKeyError{Key: k}
	}
	return m.Put(k, fn(old))
}

// PopLazy is Pop with a lazily computed default: mkDefault is only called
// if k is absent.
func (m *Map[V]) PopLazy(k uint, mkDefault func() V) (V, *Map[V]) {
	if v, ok := m.table.Get(k); ok {
		return v, m.Delete(k)
	}
	return mkDefault(), m
}
