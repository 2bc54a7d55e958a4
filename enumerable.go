package vebmap

import "github.com/db47h/vebmap/veb"

// Enumerator is a resumable, suspendable cursor over a Map's key/value
// pairs in ascending key order, driven by a veb.Iterator: a caller may step
// through one pair at a time, pause indefinitely (holding no resources beyond the
// Enumerator value itself, since the underlying Map is immutable), and
// resume later, or halt early by simply discarding the Enumerator.
type Enumerator[V any] struct {
	m  *Map[V]
	it *veb.Iterator
}

// Enumerate returns an Enumerator positioned before the first pair.
func (m *Map[V]) Enumerate() *Enumerator[V] {
	return &Enumerator[V]{m: m, it: m.veb.Iterate()}
}

// Next advances the enumerator and returns the next key/value pair. ok is
// false once every pair has been visited.
func (e *Enumerator[V]) Next() (Pair[V], bool) {
	k, ok := e.it.Next()
	if !ok {
		return Pair[V]{}, false
	}
	v, _ := e.m.table.Get(k)
	return Pair[V]{Key: k, Value: v}, true
}

// Count returns the number of pairs, equivalent to Len.
func (m *Map[V]) Count() int { return m.Len() }

// Member reports whether k is a key of m, equivalent to HasKey.
func (m *Map[V]) Member(k uint) bool { return m.HasKey(k) }

// Reduce folds f over every pair of m in ascending key order, starting
// from init. Returning cont=false halts the reduction early; Reduce
// returns the accumulator as of that step.
func Reduce[V, R any](m *Map[V], init R, f func(acc R, p Pair[V]) (next R, cont bool)) R {
	acc := init
	e := m.Enumerate()
	for {
		p, ok := e.Next()
		if !ok {
			return acc
		}
		next, cont := f(acc, p)
		acc = next
		if !cont {
			return acc
		}
	}
}

// All returns a range-over-func iterator over the map's key/value pairs in
// ascending key order.
func (m *Map[V]) All() func(yield func(uint, V) bool) {
	return func(yield func(uint, V) bool) {
		for k := range m.veb.All() {
			v, _ := m.table.Get(k)
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns a range-over-func iterator over the map's keys in ascending
// order.
func (m *Map[V]) Keys() func(yield func(uint) bool) {
	return m.veb.All()
}

// Values returns a range-over-func iterator over the map's values, in the
// order of their keys.
func (m *Map[V]) Values() func(yield func(V) bool) {
	return func(yield func(V) bool) {
		for k := range m.veb.All() {
			v, _ := m.table.Get(k)
			if !yield(v) {
				return
			}
		}
	}
}
