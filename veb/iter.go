package veb

// Iterator is a resumable, suspendable cursor over a Tree's elements in
// ascending order. Unlike All, it lets a caller pull one element at a time
// across independent calls instead of committing to a single yield loop.
type Iterator struct {
	t       *Tree
	cur     uint
	started bool
	done    bool
}

// Iterate returns a fresh Iterator positioned before the first element.
func (t *Tree) Iterate() *Iterator {
	return &Iterator{t: t}
}

// Next advances the iterator and returns the next key in ascending order.
// Once ok is false the iterator is halted; all further calls return
// ok=false without touching t again.
func (it *Iterator) Next() (uint, bool) {
	if it.done {
		return 0, false
	}
	if !it.started {
		it.started = true
		m, ok := it.t.Min()
		if !ok {
			it.done = true
			return 0, false
		}
		it.cur = m
		return it.cur, true
	}
	nxt, ok := it.t.Successor(it.cur)
	if !ok {
		it.done = true
		return 0, false
	}
	it.cur = nxt
	return it.cur, true
}

// All returns a range-over-func iterator walking the set in ascending
// order. Returning false from the yield function halts the walk early
// without visiting the remaining elements.
func (t *Tree) All() func(yield func(uint) bool) {
	return func(yield func(uint) bool) {
		it := t.Iterate()
		for {
			x, ok := it.Next()
			if !ok {
				return
			}
			if !yield(x) {
				return
			}
		}
	}
}

// ToSlice collects every element into a new slice in ascending order.
func (t *Tree) ToSlice() []uint {
	out := make([]uint, 0, 16)
	for x := range t.All() {
		out = append(out, x)
	}
	return out
}

// Slice returns up to count elements starting at position start (0-based)
// in ascending order: the element sequence is obtained by skipping start
// elements via repeated Successor and then collecting up to count more.
func (t *Tree) Slice(start uint, count int) []uint {
	if count <= 0 {
		return nil
	}
	it := t.Iterate()
	for i := uint(0); i < start; i++ {
		if _, ok := it.Next(); !ok {
			return nil
		}
	}
	out := make([]uint, 0, count)
	for len(out) < count {
		x, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, x)
	}
	return out
}
