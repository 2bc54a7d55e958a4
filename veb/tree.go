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

// Package veb implements a persistent van Emde Boas tree: an ordered set of
// uint keys over a universe [0, 2^logU) supporting Insert, Delete,
// Successor, Predecessor, Min and Max in O(log log U), plus ordered
// iteration and bulk construction.
//
// Every mutator (Insert, Delete) returns a new *Tree; the receiver is never
// modified. Unchanged subtrees are shared between the old and new value by
// path copying: only the nodes on the root-to-leaf path being mutated are
// copied, everything else (cluster entries untouched by the mutation,
// summary subtrees of clusters that didn't change) is shared by pointer.
// Go's garbage collector plays the role a non-GC host would give to
// reference counting: a subtree is freed only once the last Tree value
// referencing it is gone.
package veb

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrNotPowerOfTwo is returned by New when mode is ByU and limit is not a
// power of two.
var ErrNotPowerOfTwo = errors.New("veb: limit must be a power of two for ByU")

// ErrKeyOutOfRange is returned by FromSlice when a key does not fit in the
// requested universe.
var ErrKeyOutOfRange = errors.New("veb: key out of range for universe")

// BuildMode selects how New (and FromSlice) interpret their limit argument.
type BuildMode int

const (
	// ByLogU: logU = limit directly.
	ByLogU BuildMode = iota
	// ByU: limit must be a power of two; logU = log2(limit).
	ByU
	// ByMax: logU is the smallest integer such that 2^logU > limit (minimum 1).
	ByMax
	// Auto is only valid for FromSlice: behaves as ByMax with limit set to
	// the maximum of the supplied keys (0 if the slice is empty).
	Auto
)

// Tree is a persistent van Emde Boas tree over [0, 2^logU).
type Tree struct {
	logU    uint
	present bool // false iff the set is empty; min/max/cluster/summary are meaningless then
	min     uint
	max     uint
	cluster map[uint]*Tree // sparse: only non-empty clusters are materialized
	summary *Tree          // nil when logU <= 1 or no cluster is materialized yet; may be an empty Tree
}

// New creates an empty Tree. See BuildMode for how limit is interpreted.
func New(limit uint, mode BuildMode) (*Tree, error) {
	logU, err := resolveLogU(limit, mode)
	if err != nil {
		return nil, err
	}
	return newEmpty(logU), nil
}

func resolveLogU(limit uint, mode BuildMode) (uint, error) {
	switch mode {
	case ByLogU:
		return limit, nil
	case ByU:
		if limit == 0 || limit&(limit-1) != 0 {
			return 0, ErrNotPowerOfTwo
		}
		return uint(bits.Len(limit)) - 1, nil
	case ByMax:
		logU := ceilLog2(limit + 1)
		if logU < 1 {
			logU = 1
		}
		return logU, nil
	default:
		return 0, fmt.Errorf("veb: unknown build mode %v", mode)
	}
}

// ceilLog2 returns the smallest k such that 2^k >= n.
func ceilLog2(n uint) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(n - 1))
}

func newEmpty(logU uint) *Tree {
	return &Tree{logU: logU}
}

// FromSlice builds a Tree from a slice of keys by repeated insertion.
// Duplicate keys are idempotent. A key outside the resulting universe makes
// FromSlice fail with ErrKeyOutOfRange.
func FromSlice(keys []uint, limit uint, mode BuildMode) (*Tree, error) {
	if mode == Auto {
		limit = 0
		for _, k := range keys {
			if k > limit {
				limit = k
			}
		}
		mode = ByMax
	}
	t, err := New(limit, mode)
	if err != nil {
		return nil, err
	}
	cap := t.Capacity()
	for _, k := range keys {
		if k >= cap {
			return nil, ErrKeyOutOfRange
		}
		t = t.Insert(k)
	}
	return t, nil
}

// LogU returns the universe exponent: the tree holds keys in [0, 2^LogU()).
func (t *Tree) LogU() uint { return t.logU }

// Capacity returns 2^LogU().
func (t *Tree) Capacity() uint { return uint(1) << t.logU }

// IsEmpty reports whether the set is empty.
func (t *Tree) IsEmpty() bool { return t == nil || !t.present }

// Min returns the smallest element, or ok=false if the set is empty.
func (t *Tree) Min() (uint, bool) {
	if t == nil || !t.present {
		return 0, false
	}
	return t.min, true
}

// Max returns the largest element, or ok=false if the set is empty.
func (t *Tree) Max() (uint, bool) {
	if t == nil || !t.present {
		return 0, false
	}
	return t.max, true
}

// Len returns the number of elements in the set. It runs in O(n log log U)
// by walking Successor; callers tracking counts on the hot path (the
// VebMap combiner) should maintain their own counter instead.
func (t *Tree) Len() int {
	n := 0
	for range t.All() {
		n++
	}
	return n
}

// Contains reports whether x is in the set.
func (t *Tree) Contains(x uint) bool {
	if t == nil || !t.present {
		return false
	}
	if x == t.min || x == t.max {
		return true
	}
	if t.logU <= 1 {
		return false
	}
	_, loBits := splitLogU(t.logU)
	h := high(x, loBits)
	child, ok := t.cluster[h]
	if !ok {
		return false
	}
	return child.Contains(low(x, loBits))
}

// splitLogU returns the bit widths of the high and low halves of a key: for
// odd logU the high half gets the extra bit (ceil(logU/2) high,
// floor(logU/2) low).
func splitLogU(logU uint) (hiBits, loBits uint) {
	loBits = logU / 2
	hiBits = logU - loBits
	return
}

func high(x, loBits uint) uint { return x >> loBits }
func low(x, loBits uint) uint  { return x & ((uint(1) << loBits) - 1) }
func join(h, l, loBits uint) uint {
	return (h << loBits) | l
}

func cloneClusterWith(old map[uint]*Tree, h uint, child *Tree) map[uint]*Tree {
	n := make(map[uint]*Tree, len(old)+1)
	for k, v := range old {
		n[k] = v
	}
	n[h] = child
	return n
}

func cloneClusterWithout(old map[uint]*Tree, h uint) map[uint]*Tree {
	n := make(map[uint]*Tree, len(old))
	for k, v := range old {
		if k != h {
			n[k] = v
		}
	}
	return n
}

// Insert returns a new Tree containing x in addition to t's elements.
// Inserting an element already present yields a Tree with the same element
// set (idempotent).
func (t *Tree) Insert(x uint) *Tree {
	cp := *t

	if !cp.present {
		cp.present = true
		cp.min, cp.max = x, x
		return &cp
	}
	if x == cp.min {
		return t
	}
	if x < cp.min {
		x, cp.min = cp.min, x
	}

	if cp.logU > 1 {
		hiBits, loBits := splitLogU(cp.logU)
		h, l := high(x, loBits), low(x, loBits)

		child, ok := cp.cluster[h]
		if !ok {
			child = newEmpty(loBits)
		}
		newChild := child.Insert(l)
		cp.cluster = cloneClusterWith(cp.cluster, h, newChild)

		if !ok {
			summary := cp.summary
			if summary == nil {
				summary = newEmpty(hiBits)
			}
			cp.summary = summary.Insert(h)
		}
	}

	if x > cp.max {
		cp.max = x
	}
	return &cp
}

// Delete returns a new Tree without x. Deleting an absent element returns a
// Tree with the same element set as t.
func (t *Tree) Delete(x uint) *Tree {
	if !t.present {
		return t
	}
	if t.min == t.max {
		if x == t.min {
			return newEmpty(t.logU)
		}
		return t
	}

	cp := *t

	if cp.logU <= 1 {
		// exactly the two elements {0, 1}; min != max here.
		switch x {
		case cp.min:
			cp.min = cp.max
		case cp.max:
			cp.max = cp.min
		}
		return &cp
	}

	hiBits, loBits := splitLogU(cp.logU)

	if x == cp.min {
		hMin, ok := cp.summary.Min()
		if !ok {
			// invariant violation guard: min != max implies a non-empty summary.
			return &cp
		}
		childMin, _ := cp.cluster[hMin].Min()
		newMin := join(hMin, childMin, loBits)
		cp.min = newMin
		x = newMin
	}

	h, l := high(x, loBits), low(x, loBits)
	if child, ok := cp.cluster[h]; ok {
		newChild := child.Delete(l)
		if newChild.IsEmpty() {
			cp.cluster = cloneClusterWithout(cp.cluster, h)
			cp.summary = cp.summary.Delete(h)
		} else {
			cp.cluster = cloneClusterWith(cp.cluster, h, newChild)
		}
	}

	if x == cp.max {
		if hp, ok := cp.summary.Max(); ok {
			m, _ := cp.cluster[hp].Max()
			cp.max = join(hp, m, loBits)
		} else {
			cp.max = cp.min
		}
	}
	return &cp
}

// Successor returns the smallest element strictly greater than x, or
// ok=false if none exists.
func (t *Tree) Successor(x uint) (uint, bool) {
	if t == nil || !t.present {
		return 0, false
	}
	if t.logU <= 1 {
		if x < t.min {
			return t.min, true
		}
		if x < t.max {
			return t.max, true
		}
		return 0, false
	}
	if x < t.min {
		return t.min, true
	}

	_, loBits := splitLogU(t.logU)
	h, l := high(x, loBits), low(x, loBits)

	if child, ok := t.cluster[h]; ok {
		if cmax, ok2 := child.Max(); ok2 && l < cmax {
			succ, _ := child.Successor(l)
			return join(h, succ, loBits), true
		}
	}
	hp, ok := t.summary.Successor(h)
	if !ok {
		return 0, false
	}
	m, _ := t.cluster[hp].Min()
	return join(hp, m, loBits), true
}

// Predecessor returns the largest element strictly less than x, or
// ok=false if none exists.
func (t *Tree) Predecessor(x uint) (uint, bool) {
	if t == nil || !t.present {
		return 0, false
	}
	if t.logU <= 1 {
		if x > t.max {
			return t.max, true
		}
		if x > t.min {
			return t.min, true
		}
		return 0, false
	}
	if x > t.max {
		return t.max, true
	}

	_, loBits := splitLogU(t.logU)
	h, l := high(x, loBits), low(x, loBits)

	if child, ok := t.cluster[h]; ok {
		if cmin, ok2 := child.Min(); ok2 && l > cmin {
			pred, _ := child.Predecessor(l)
			return join(h, pred, loBits), true
		}
	}
	if hp, ok := t.summary.Predecessor(h); ok {
		m, _ := t.cluster[hp].Max()
		return join(hp, m, loBits), true
	}
	// min itself is never stored in a cluster, so it can still be the
	// predecessor even when no earlier cluster holds one.
	if x > t.min {
		return t.min, true
	}
	return 0, false
}
