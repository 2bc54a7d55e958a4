package vebmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/db47h/vebmap/veb"
)

func TestMap_PutGetDelete(t *testing.T) {
	m, err := New[string](16, veb.ByLogU)
	require.NoError(t, err)

	_, ok := m.Fetch(3)
	require.False(t, ok)
	require.Equal(t, "nope", m.Get(3, "nope"))

	m2, err := m.Put(3, "three")
	require.NoError(t, err)
	require.False(t, m.HasKey(3), "Put must not mutate the receiver")
	require.True(t, m2.HasKey(3))
	require.Equal(t, "three", m2.Get(3, ""))

	m3 := m2.Delete(3)
	require.False(t, m3.HasKey(3))
	require.True(t, m2.HasKey(3), "Delete must not mutate the receiver")
}

func TestMap_PutOutOfRange(t *testing.T) {
	m, err := New[int](16384, veb.ByU)
	require.NoError(t, err)
	_, err = m.Put(16384, 1)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	require.Equal(t, uint(16384), oor.Key)
}

func TestMap_MustFetchMissing(t *testing.T) {
	m, err := New[int](16, veb.ByLogU)
	require.NoError(t, err)
	_, err = m.MustFetch(5)
	var mk *MissingKeyError
	require.ErrorAs(t, err, &mk)
	require.Equal(t, uint(5), mk.Key)
}

// scenario 1: build 0..10000 mapped to themselves.
func TestMap_BuildZeroToTenThousand(t *testing.T) {
	pairs := make([]Pair[int], 10001)
	for i := range pairs {
		pairs[i] = Pair[int]{Key: uint(i), Value: i}
	}
	m, err := FromPairs(pairs, 10000, veb.ByMax)
	require.NoError(t, err)

	require.Equal(t, uint(16384), m.Capacity())
	minK, _ := m.MinKey()
	maxK, _ := m.MaxKey()
	require.Equal(t, uint(0), minK)
	require.Equal(t, uint(10000), maxK)

	i := 0
	for k, v := range m.All() {
		require.Equal(t, uint(i), k)
		require.Equal(t, i, v)
		i++
	}
	require.Equal(t, 10001, i)
}

// scenario 4: successor of max and predecessor of min are absent.
func TestMap_BoundarySuccPred(t *testing.T) {
	pairs := []Pair[int]{{1, 10}, {5, 50}, {9, 90}}
	m, err := FromPairs(pairs, 0, veb.Auto)
	require.NoError(t, err)

	maxK, _ := m.MaxKey()
	_, ok := m.SuccKey(maxK)
	require.False(t, ok)

	minK, _ := m.MinKey()
	_, ok = m.PredKey(minK)
	require.False(t, ok)
}

// scenario 5: merge two maps with disjoint keys from different universes.
func TestMap_MergeDisjointDifferentUniverses(t *testing.T) {
	a, err := New[string](16, veb.ByU)
	require.NoError(t, err)
	a, _ = a.Put(1, "a1")
	a, _ = a.Put(2, "a2")

	b, err := New[string](64, veb.ByU)
	require.NoError(t, err)
	b, _ = b.Put(40, "b40")
	b, _ = b.Put(50, "b50")

	merged := Merge(a, b)
	require.Equal(t, uint(64), merged.Capacity())
	require.Equal(t, 4, merged.Len())
	for k, v := range map[uint]string{1: "a1", 2: "a2", 40: "b40", 50: "b50"} {
		got, ok := merged.Fetch(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}

func TestMap_MergeConflictBWins(t *testing.T) {
	a, _ := New[int](16, veb.ByLogU)
	a, _ = a.Put(1, 100)
	b, _ := New[int](16, veb.ByLogU)
	b, _ = b.Put(1, 200)

	merged := Merge(a, b)
	v, _ := merged.Fetch(1)
	require.Equal(t, 200, v)
}

func TestMap_MergeIdentity(t *testing.T) {
	empty, _ := New[int](16, veb.ByLogU)
	m, _ := New[int](16, veb.ByLogU)
	m, _ = m.Put(3, 30)
	m, _ = m.Put(7, 70)

	require.True(t, Equal(m, Merge(m, empty)))
	require.True(t, Equal(m, Merge(empty, m)))
}

// scenario 6: build from pairs out of order; enumerate; check pred/succ.
func TestMap_EnumerateOrderedPairs(t *testing.T) {
	pairs := []Pair[string]{{5, "a"}, {1, "b"}, {9, "c"}}
	m, err := FromPairs(pairs, 0, veb.Auto)
	require.NoError(t, err)

	var got []Pair[string]
	for k, v := range m.All() {
		got = append(got, Pair[string]{Key: k, Value: v})
	}
	require.Equal(t, []Pair[string]{{1, "b"}, {5, "a"}, {9, "c"}}, got)

	pred, ok := m.PredKey(5)
	require.True(t, ok)
	require.Equal(t, uint(1), pred)

	succ, ok := m.SuccKey(5)
	require.True(t, ok)
	require.Equal(t, uint(9), succ)

	_, ok = m.SuccKey(9)
	require.False(t, ok)
}

func TestMap_DropPopPopLazy(t *testing.T) {
	m, _ := New[int](16, veb.ByLogU)
	m, _ = m.Put(1, 10)
	m, _ = m.Put(2, 20)
	m, _ = m.Put(3, 30)

	m2 := m.Drop([]uint{1, 3, 99})
	require.Equal(t, 1, m2.Len())
	require.True(t, m2.HasKey(2))

	v, m3 := m.Pop(2, -1)
	require.Equal(t, 20, v)
	require.False(t, m3.HasKey(2))
	require.True(t, m.HasKey(2), "Pop must not mutate the receiver")

	called := false
	v2, m4 := m3.PopLazy(2, func() int { called = true; return -99 })
	require.Equal(t, -99, v2)
	require.True(t, called)
	require.Equal(t, m3.Len(), m4.Len())
}

func TestMap_SplitTake(t *testing.T) {
	m, _ := New[int](16, veb.ByU)
	for i := uint(0); i < 10; i++ {
		m, _ = m.Put(i, int(i)*10)
	}

	in, out := Split(m, []uint{1, 3, 5})
	require.Equal(t, 3, in.Len())
	require.Equal(t, 7, out.Len())
	require.Equal(t, uint(16), in.Capacity())
	require.Equal(t, uint(16), out.Capacity())
	for _, k := range []uint{1, 3, 5} {
		require.True(t, in.HasKey(k))
		require.False(t, out.HasKey(k))
	}

	taken := Take(m, []uint{1, 3, 5, 100})
	require.Equal(t, 3, taken.Len())
	require.False(t, taken.HasKey(100))
}

func TestMap_UpgradeCapacity(t *testing.T) {
	m, _ := New[int](16, veb.ByU)
	m, _ = m.Put(5, 50)

	grown, err := m.UpgradeCapacity(1000)
	require.NoError(t, err)
	require.Greater(t, grown.Capacity(), m.Capacity())
	v, ok := grown.Fetch(5)
	require.True(t, ok)
	require.Equal(t, 50, v)

	_, err = grown.UpgradeCapacity(1)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
}

func TestMap_Slice(t *testing.T) {
	m, _ := New[int](1024, veb.ByU)
	for i := uint(0); i < 10; i++ {
		m, _ = m.Put(i, int(i))
	}

	sub := m.Slice(2, 3)
	require.Equal(t, 3, sub.Len())
	require.Equal(t, uint(1024), sub.Capacity())
	var got []uint
	for k := range sub.Keys() {
		got = append(got, k)
	}
	require.Equal(t, []uint{2, 3, 4}, got)
}

func TestMap_ReplaceReplaceFunc(t *testing.T) {
	m, _ := New[int](16, veb.ByLogU)
	m, _ = m.Put(1, 10)

	_, err := m.Replace(99, 1)
	var mk *MissingKeyError
	require.ErrorAs(t, err, &mk)

	m2, err := m.Replace(1, 20)
	require.NoError(t, err)
	v, _ := m2.Fetch(1)
	require.Equal(t, 20, v)

	m3, err := m2.ReplaceFunc(1, func(old int) int { return old + 1 })
	require.NoError(t, err)
	v, _ = m3.Fetch(1)
	require.Equal(t, 21, v)
}

func TestMap_Reduce(t *testing.T) {
	m, _ := New[int](16, veb.ByLogU)
	for i := uint(0); i < 5; i++ {
		m, _ = m.Put(i, int(i))
	}
	sum := Reduce(m, 0, func(acc int, p Pair[int]) (int, bool) {
		return acc + p.Value, true
	})
	require.Equal(t, 10, sum)

	// early halt
	firstTwo := Reduce(m, 0, func(acc int, p Pair[int]) (int, bool) {
		return acc + 1, acc+1 < 2
	})
	require.Equal(t, 2, firstTwo)
}

func TestMap_Collect(t *testing.T) {
	start, _ := New[int](16, veb.ByLogU)
	m, err := Collect(start, []Pair[int]{{1, 10}, {2, 20}})
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
}

func TestMap_String(t *testing.T) {
	m, _ := New[int](16, veb.ByU)
	m, _ = m.Put(5, 50)
	m, _ = m.Put(1, 10)
	require.Equal(t, "Vebmap[capacity=16, elements=[(1, 10), (5, 50)]]", m.String())
}

func TestMap_Idempotence(t *testing.T) {
	m, _ := New[int](16, veb.ByLogU)
	m1, _ := m.Put(5, 50)
	m2, _ := m1.Put(5, 50)
	require.Equal(t, m1.Len(), m2.Len())
	require.True(t, Equal(m1, m2))
}
