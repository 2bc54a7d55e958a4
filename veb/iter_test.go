package veb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator_SuspendResume(t *testing.T) {
	tr, err := New(1024, ByU)
	require.NoError(t, err)
	for _, k := range []uint{10, 20, 30, 40, 50} {
		tr = tr.Insert(k)
	}

	it := tr.Iterate()
	x, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint(10), x)

	x, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, uint(20), x)

	// a second, independent tree value derived from tr must not disturb
	// the suspended iterator: it resumes from its own captured state.
	tr.Insert(15)

	x, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, uint(30), x)

	x, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, uint(40), x)

	x, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, uint(50), x)

	_, ok = it.Next()
	require.False(t, ok)
	// halted iterators stay halted.
	_, ok = it.Next()
	require.False(t, ok)
}

func TestAll_EarlyHalt(t *testing.T) {
	tr, err := New(1024, ByU)
	require.NoError(t, err)
	for _, k := range []uint{1, 2, 3, 4, 5} {
		tr = tr.Insert(k)
	}

	var seen []uint
	for x := range tr.All() {
		seen = append(seen, x)
		if x == 3 {
			break
		}
	}
	require.Equal(t, []uint{1, 2, 3}, seen)
}

func TestAll_EmptyTree(t *testing.T) {
	tr, err := New(16, ByLogU)
	require.NoError(t, err)
	n := 0
	for range tr.All() {
		n++
	}
	require.Zero(t, n)
}
