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

// Package assoc implements the opaque key/value table that backs a VebMap's
// point lookups. It is a generic open-addressing hash table using a
// swiss-table-style control byte layout (8-wide SIMD-friendly groups,
// quadratic group probing) for O(1) expected Get/Set/Delete.
//
// Table itself is an ordinary mutable structure; the persistence guarantee
// VebMap exposes to its callers comes from always mutating a freshly
// [Table.Clone]'d receiver, never one a caller might still hold a reference
// to. This mirrors the classic copy-on-write discipline used by persistent
// wrappers over otherwise-mutable storage engines.
package assoc

import "math"

// element is a single key/value slot. A slot's occupancy (empty / deleted /
// set) is tracked out-of-band in Table.meta, not in the element itself.
type element[V any] struct {
	key   uint
	value V
}

// Table is a hash table keyed by uint (every VebMap key fits in a uint,
// since log_u never exceeds bits.UintSize).
type Table[V any] struct {
	hash func(uint) uint64
	meta []uint8
	elms []element[V]
	sizeInfo
	active  int
	deleted int
}

// NewTable returns a new, empty Table.
func NewTable[V any](opts ...Option) *Table[V] {
	var t Table[V]
	t.init(opts...)
	return &t
}

func (t *Table[V]) init(opts ...Option) {
	o := getOpts(opts)
	t.hash = o.hasher
	t.resize(roundSizeUp(o.capacity))
}

// Get returns the value associated with key, or the zero value and false if
// key is absent.
func (t *Table[V]) Get(key uint) (V, bool) {
	if _, i := t.find(key); i != 0 {
		return t.elms[i].value, true
	}
	var zero V
	return zero, false
}

// Set associates value with key, returning the previous value and true if
// key already existed.
func (t *Table[V]) Set(key uint, value V) (prev V, replaced bool) {
	hash, i := t.find(key)
	if i != 0 {
		e := &t.elms[i]
		prev, e.value = e.value, value
		return prev, true
	}
	t.insert(hash, key, value)
	return prev, false
}

// Delete removes key, returning its value and true if it was present.
func (t *Table[V]) Delete(key uint) (V, bool) {
	if _, i := t.find(key); i != 0 {
		v := t.elms[i].value
		t.del(i)
		return v, true
	}
	var zero V
	return zero, false
}

// Range calls yield for every key/value pair in the table, in unspecified
// order, stopping early if yield returns false. Ordering is the combiner's
// job (via the vEB index), not the table's.
func (t *Table[V]) Range(yield func(key uint, value V) bool) {
	for i := 1; i <= t.capacity; i++ {
		if t.meta[i]&setMask == 0 {
			continue
		}
		if !yield(t.elms[i].key, t.elms[i].value) {
			return
		}
	}
}

// Len returns the number of keys currently in the table.
func (t *Table[V]) Len() int { return t.active }

// Capacity returns the number of slots currently allocated.
func (t *Table[V]) Capacity() int { return t.capacity }

// Load returns the table's load factor.
func (t *Table[V]) Load() float64 {
	if t.capacity == 0 {
		return 0
	}
	return float64(t.active) / float64(t.capacity)
}

// Clone returns a deep copy of t. The returned Table shares no mutable state
// with t; mutating one never affects the other.
func (t *Table[V]) Clone() *Table[V] {
	cp := &Table[V]{hash: t.hash, sizeInfo: t.sizeInfo, active: t.active, deleted: t.deleted}
	cp.meta = append([]uint8(nil), t.meta...)
	cp.elms = append([]element[V](nil), t.elms...)
	return cp
}

func (t *Table[V]) insert(hash uint64, key uint, value V) {
	if t.needRehashOrGrow() {
		t.rehashOrGrow()
		hash = t.hash(key)
	}
	i := t.findFirstNotSet(hash)
	t.active++
	t.updateH2(i, h2(hash))
	e := &t.elms[i]
	e.key = key
	e.value = value
}

// find returns the hash for key and its slot index in t.elms. If key is not
// found, the returned index is 0.
func (t *Table[V]) find(key uint) (uint64, int) {
	if t.capacity == 0 {
		t.init()
	}
	hash := t.hash(key)
	p := t.probe(hash)
	hh2 := h2(hash)
	for {
		s := newBitset(&t.meta[p.offset])
		for mb := s.matchByte(hh2); mb != 0; {
			i := p.index(mb.next())
			if t.elms[i].key == key {
				return hash, i
			}
		}
		if s.matchEmpty() != 0 {
			return hash, 0
		}
		p = p.next()
	}
}

func (t *Table[V]) del(i int) {
	var zero element[V]
	t.elms[i] = zero

	sz := t.capacity
	t.active--
	// if there is no probe window around index i that has ever been seen as a
	// full group, we can mark index i as empty instead of deleted; see
	// bits.go's matchEmpty for the bit trick this relies on.
	if after := newBitset(&t.meta[i]).matchEmpty(); after != 0 {
		if before := newBitset(&t.meta[subModulo(i, groupSize, sz)]).matchEmpty(); before != 0 {
			if before.firstFromEnd()+after.first() < groupSize {
				t.setH2(i, empty)
				return
			}
		}
	}
	t.setH2(i, deleted)
	t.deleted++
}

func (t *Table[V]) resize(si sizeInfo) {
	t.sizeInfo = si
	t.elms = make([]element[V], t.capacity+1)
	t.meta = make([]uint8, t.capacity+1+groupSize-1)
	t.active = 0
	t.deleted = 0
}

// rehashInPlace clears all deleted markers. An LRU-ordered variant could
// walk a recency list to visit only live slots; this table has none, so it
// scans the control-byte groups directly (same asymptotic cost).
func (t *Table[V]) rehashInPlace() {
	for i := 1; i < len(t.meta)-groupSize; i += groupSize {
		markDeletedAsEmptyAndSetAsDeleted(&t.meta[i])
	}
	copy(t.meta[t.capacity+1:], t.meta[1:groupSize])

	for i := 1; i <= t.capacity; i += groupSize {
		s := newBitset(&t.meta[i])
		for md := s.matchDeleted(); md != 0; {
			off := md.next()
			t.rehashElement(i + off)
		}
	}
	t.deleted = 0
}

func (t *Table[V]) rehashElement(i int) {
	for {
		it := &t.elms[i]
		hash := t.hash(it.key)
		p := t.probe(hash)
		target := t.findFirstNotSet(hash)

		if p.distance(i)/groupSize == p.distance(target)/groupSize {
			t.setH2(i, h2(hash))
			return
		}
		if t.meta[target] == empty {
			t.setH2(i, empty)
			t.setH2(target, h2(hash))
			t.elms[target] = t.elms[i]
			var zero element[V]
			t.elms[i] = zero
			return
		}
		t.setH2(target, h2(hash))
		t.elms[i], t.elms[target] = t.elms[target], t.elms[i]
		i = target
	}
}

func (t *Table[V]) rehashOrGrow() {
	// Same growth tuning as abseil-cpp: rehash in place while at most 25/32 =
	// 0.78 of the slots are active, otherwise grow the table to about 50/32 of
	// its current capacity.
	if t.active*32 <= t.capacity*25 {
		t.rehashInPlace()
		return
	}

	srcElms, srcMeta, srcCap := t.elms, t.meta, t.capacity
	t.resize(roundSizeUp(int(math.Ceil(float64(t.capacity) * 50 / 32))))

	for i := 1; i <= srcCap; i += groupSize {
		s := newBitset(&srcMeta[i])
		for ms := s.matchSet(); ms != 0; {
			off := ms.next()
			e := &srcElms[i+off]
			t.insert(t.hash(e.key), e.key, e.value)
		}
	}
}

// needRehashOrGrow returns true if there are less than 2/16 free slots.
func (t *Table[V]) needRehashOrGrow() bool {
	return t.capacity-t.active-t.deleted < t.capacity>>3
}

func (t *Table[V]) probe(hash uint64) probe {
	return newProbe(h1(hash), &t.sizeInfo)
}

func (t *Table[V]) updateH2(index int, hh2 uint8) {
	c := &t.meta[index]
	t.deleted -= int(*c >> 1)
	*c = hh2
	if index < groupSize {
		t.meta[index+t.capacity] = hh2
	}
}

func (t *Table[V]) setH2(index int, hh2 uint8) {
	t.meta[index] = hh2
	if index < groupSize {
		t.meta[index+t.capacity] = hh2
	}
}

func (t *Table[V]) findFirstNotSet(hash uint64) int {
	for p := t.probe(hash); ; p = p.next() {
		if e := newBitset(&t.meta[p.offset]).matchNotSet(); e != 0 {
			return p.index(e.next())
		}
	}
}
