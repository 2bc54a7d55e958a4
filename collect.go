package vebmap

// Collect builds on top of an existing Map by Put-ing every pair from
// pairs, in order, returning the result of the successive Puts. This is
// the Collectable protocol: a Map is a valid build target for any stream
// of (k, v) pairs, as long as every key fits the starting Map's capacity.
func Collect[V any](start *Map[V], pairs []Pair[V]) (*Map[V], error) {
	m := start
	for _, p := range pairs {
		var err error
		m, err = m.Put(p.Key, p.Value)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CollectFunc is Collect driven by a pull-style source instead of a slice:
// next is called repeatedly until it returns ok=false.
func CollectFunc[V any](start *Map[V], next func() (Pair[V], bool)) (*Map[V], error) {
	m := start
	for {
		p, ok := next()
		if !ok {
			return m, nil
		}
		var err error
		m, err = m.Put(p.Key, p.Value)
		if err != nil {
			return nil, err
		}
	}
}
