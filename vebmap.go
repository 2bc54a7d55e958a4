// Copyright (c) 2016 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package vebmap implements an ordered, integer-keyed, persistent map: a
// conventional hash table for O(1) expected point lookups, kept in lockstep
// with a van Emde Boas tree (see the veb subpackage) that answers
// predecessor, successor, minimum and maximum queries in O(log log U),
// where U is the configured key universe.
//
// Every mutator returns a new *Map; the receiver is never modified.
// Substructure is shared between versions wherever the mutation didn't
// touch it — see the veb package doc for how the tree shares subtrees, and
// assoc's package doc for how the value table achieves the same guarantee
// by cloning before each mutation instead of structural sharing.
package vebmap

import (
	"github.com/db47h/vebmap/assoc"
	"github.com/db47h/vebmap/veb"
)

// Pair is a key/value pair, used by FromPairs and the Collectable stream
// protocol (see Collect).
type Pair[V any] struct {
	Key   uint
	Value V
}

// Map couples a vEB index with a key/value table. The coupling invariant
// keys(m.table) = S(m.veb) holds after every exported operation.
type Map[V any] struct {
	veb   *veb.Tree
	table *assoc.Table[V]
}

// New returns an empty Map. limit and mode are interpreted exactly as
// veb.New interprets them.
func New[V any](limit uint, mode veb.BuildMode) (*Map[V], error) {
	tr, err := veb.New(limit, mode)
	if err != nil {
		return nil, err
	}
	return &Map[V]{veb: tr, table: assoc.NewTable[V]()}, nil
}

// FromPairs builds a Map by Put-ing every pair in order. Later pairs with a
// duplicate key overwrite earlier ones. mode == veb.Auto picks the universe
// from the maximum key present (0 if pairs is empty).
func FromPairs[V any](pairs []Pair[V], limit uint, mode veb.BuildMode) (*Map[V], error) {
	if mode == veb.Auto {
		limit = 0
		for _, p := range pairs {
			if p.Key > limit {
				limit = p.Key
			}
		}
		mode = veb.ByMax
	}
	m, err := New[V](limit, mode)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		m, err = m.Put(p.Key, p.Value)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Capacity returns 2^log_u, the exclusive upper bound on keys this Map can
// hold without an UpgradeCapacity.
func (m *Map[V]) Capacity() uint { return m.veb.Capacity() }

// Len returns the number of key/value pairs in the map.
func (m *Map[V]) Len() int { return m.table.Len() }

// Get returns the value at k, or def if k is absent. Get never consults the
// vEB index; it is a plain table lookup.
func (m *Map[V]) Get(k uint, def V) V {
	if v, ok := m.table.Get(k); ok {
		return v
	}
	return def
}

// At provides read-only indexed access with the same semantics as
// Get(k, zero-value-of-V).
func (m *Map[V]) At(k uint) V {
	var zero V
	return m.Get(k, zero)
}

// Fetch returns the value at k and whether k is present.
func (m *Map[V]) Fetch(k uint) (V, bool) {
	return m.table.Get(k)
}

// MustFetch returns the value at k, or a *MissingKeyError if k is absent.
func (m *Map[V]) MustFetch(k uint) (V, error) {
	if v, ok := m.table.Get(k); ok {
		return v, nil
	}
	var zero V
	return zero, &MissingKeyError{Key: k}
}

// HasKey reports whether k is present, in O(1) expected time via the table.
func (m *Map[V]) HasKey(k uint) bool {
	_, ok := m.table.Get(k)
	return ok
}

// Put returns a new Map with k associated with v. It fails with
// *OutOfRangeError if k does not fit the current capacity; capacity is
// never implicitly grown. Put is idempotent: re-putting an existing key
// updates its value without disturbing the vEB's element set.
func (m *Map[V]) Put(k uint, v V) (*Map[V], error) {
	if k >= m.Capacity() {
		return nil, &OutOfRangeError{Key: k, Capacity: m.Capacity()}
	}
	tbl := m.table.Clone()
	tbl.Set(k, v)
	return &Map[V]{veb: m.veb.Insert(k), table: tbl}, nil
}

// Delete returns a new Map with k removed. Deleting an absent key returns a
// Map with the same contents as m.
func (m *Map[V]) Delete(k uint) *Map[V] {
	if !m.HasKey(k) {
		return m
	}
	tbl := m.table.Clone()
	tbl.Delete(k)
	return &Map[V]{veb: m.veb.Delete(k), table: tbl}
}

// Drop returns a new Map with every key in ks removed (absent keys are
// ignored), equivalent to folding Delete over ks.
func (m *Map[V]) Drop(ks []uint) *Map[V] {
	out := m
	for _, k := range ks {
		out = out.Delete(k)
	}
	return out
}

// Pop returns the value at k (or d if absent) together with a new Map that
// no longer contains k.
func (m *Map[V]) Pop(k uint, d V) (V, *Map[V]) {
	v := m.Get(k, d)
	return v, m.Delete(k)
}

// MinKey returns the smallest key, or ok=false if m is empty.
func (m *Map[V]) MinKey() (uint, bool) { return m.veb.Min() }

// MaxKey returns the largest key, or ok=false if m is empty.
func (m *Map[V]) MaxKey() (uint, bool) { return m.veb.Max() }

// PredKey returns the largest key strictly less than k, or ok=false if none.
func (m *Map[V]) PredKey(k uint) (uint, bool) { return m.veb.Predecessor(k) }

// SuccKey returns the smallest key strictly greater than k, or ok=false if
// none.
func (m *Map[V]) SuccKey(k uint) (uint, bool) { return m.veb.Successor(k) }

// UpgradeCapacity rebuilds the vEB index at veb.ByMax with newLimit,
// returning a new Map whose contents are unchanged but whose capacity has
// grown. It fails with *OutOfRangeError if newLimit would shrink the
// universe below m's current capacity.
func (m *Map[V]) UpgradeCapacity(newLimit uint) (*Map[V], error) {
	tr, err := veb.New(newLimit, veb.ByMax)
	if err != nil {
		return nil, err
	}
	if tr.Capacity() < m.Capacity() {
		return nil, &OutOfRangeError{Key: newLimit, Capacity: m.Capacity()}
	}
	keys := m.veb.ToSlice()
	for _, k := range keys {
		tr = tr.Insert(k)
	}
	return &Map[V]{veb: tr, table: m.table.Clone()}, nil
}

// Slice returns a new Map containing up to count key/value pairs starting
// at ordinal position start (0-based) in ascending key order. The returned
// Map retains m's capacity.
func (m *Map[V]) Slice(start uint, count int) *Map[V] {
	keys := m.veb.Slice(start, count)
	tbl := assoc.NewTable[V](assoc.WithCapacity(len(keys)))
	tr, _ := veb.New(m.veb.LogU(), veb.ByLogU)
	for _, k := range keys {
		v, _ := m.table.Get(k)
		tbl.Set(k, v)
		tr = tr.Insert(k)
	}
	return &Map[V]{veb: tr, table: tbl}
}

// Merge returns a new Map containing the union of a's and b's keys, with
// b's values winning on conflict. The result's capacity is
// max(a.Capacity(), b.Capacity()).
func Merge[V any](a, b *Map[V]) *Map[V] {
	return MergeFunc(a, b, func(_ uint, _, bv V) V { return bv })
}

// MergeFunc is Merge with an explicit conflict resolver: resolve(k, av, bv)
// decides the value stored at k when both a and b contain k.
func MergeFunc[V any](a, b *Map[V], resolve func(k uint, av, bv V) V) *Map[V] {
	big, small, aIsBig := a, b, true
	if b.veb.LogU() > a.veb.LogU() {
		big, small, aIsBig = b, a, false
	}

	tr := big.veb
	tbl := big.table.Clone()
	for k := range small.veb.All() {
		sv, _ := small.table.Get(k)
		if existing, ok := tbl.Get(k); ok {
			if aIsBig {
				sv = resolve(k, existing, sv)
			} else {
				sv = resolve(k, sv, existing)
			}
		}
		tbl.Set(k, sv)
		tr = tr.Insert(k)
	}
	return &Map[V]{veb: tr, table: tbl}
}

// Split partitions m into (withKeys, withoutKeys) according to membership
// in ks. Both results share m's capacity.
func Split[V any](m *Map[V], ks []uint) (withKeys, withoutKeys *Map[V]) {
	want := make(map[uint]bool, len(ks))
	for _, k := range ks {
		want[k] = true
	}

	in, _ := veb.New(m.veb.LogU(), veb.ByLogU)
	out, _ := veb.New(m.veb.LogU(), veb.ByLogU)
	inTbl := assoc.NewTable[V]()
	outTbl := assoc.NewTable[V]()

	for k := range m.veb.All() {
		v, _ := m.table.Get(k)
		if want[k] {
			in = in.Insert(k)
			inTbl.Set(k, v)
		} else {
			out = out.Insert(k)
			outTbl.Set(k, v)
		}
	}
	return &Map[V]{veb: in, table: inTbl}, &Map[V]{veb: out, table: outTbl}
}

// Take returns a new Map containing only the intersection of m's keys with
// ks.
func Take[V any](m *Map[V], ks []uint) *Map[V] {
	tr, _ := veb.New(m.veb.LogU(), veb.ByLogU)
	tbl := assoc.NewTable[V](assoc.WithCapacity(len(ks)))
	for _, k := range ks {
		if v, ok := m.table.Get(k); ok {
			tr = tr.Insert(k)
			tbl.Set(k, v)
		}
	}
	return &Map[V]{veb: tr, table: tbl}
}
