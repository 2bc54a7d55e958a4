package assoc

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProbe_NextPrevRoundTrip(t *testing.T) {
	for range 200 {
		si := roundSizeUp(rand.N(1<<10) + minCapacity)
		p := newProbe(uint(rand.Uint64()), &si)
		for range si.capacity / groupSize {
			p0 := p
			p = p.next()
			prev := p.prev()
			require.Equal(t, p0.offset, prev.offset)
		}
	}
}

func TestProbe_VisitsWholeTable(t *testing.T) {
	si := roundSizeUp(256)
	seen := make([]bool, si.capacity+1)
	p := newProbe(uint(rand.Uint64()), &si)
	for range si.capacity / groupSize {
		seen[p.offset] = true
		p = p.next()
	}
	count := 0
	for i := 1; i <= si.capacity; i++ {
		if seen[i] {
			count++
		}
	}
	require.Equal(t, si.capacity/groupSize, count)
}

func TestRoundSizeUp_GroupAligned(t *testing.T) {
	for _, sz := range []int{1, 15, 16, 17, 1000, 100000} {
		si := roundSizeUp(sz)
		require.GreaterOrEqual(t, si.capacity, sz)
		require.Zero(t, si.capacity%groupSize)
	}
}
