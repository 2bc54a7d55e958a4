package assoc

import (
	"math"
	"math/bits"
)

type sizeInfo struct {
	capacity int
	n        int
}

type probe struct {
	*sizeInfo
	offset int
	dn     int
}

// newProbe returns a [probe] for the given hash.
func newProbe(hash uint, p *sizeInfo) probe {
	return probe{offset: reduceRange(hash, p.capacity) + 1, sizeInfo: p}
}

// next returns the next probe position using quadratic probing.
//
// Algorithm:
//
// capacity = n²
// H = hash(key) % m
// h(0) = H
// h(i) = H + i + ni²
// h(i+1) = h(i) + (2in + n) + 1
func (p probe) next() probe {
	inc := p.dn + p.n + groupSize
	if inc > p.capacity {
		p.dn -= p.capacity
		inc -= p.capacity
	}
	p.offset = addModulo(p.offset, inc, p.capacity)
	p.dn += p.n * 2
	return p
}

func (p probe) prev() probe {
	dn := p.dn - p.n*2
	offset := subModulo(p.offset, dn+p.n+groupSize, p.capacity)
	return probe{offset: offset, dn: dn, sizeInfo: p.sizeInfo}
}

func (p probe) index(i int) int {
	return addModulo(p.offset, i, p.capacity)
}

func (p probe) distance(i int) int {
	return subModulo(i, p.offset, p.capacity)
}

func roundSizeUp(sz int) sizeInfo {
	// find next size such that sz = ng² * groupSize
	n := int(math.Ceil(math.Sqrt(float64(sz) / groupSize)))
	if n < 1 {
		n = 1
	}
	return sizeInfo{capacity: n * n * groupSize, n: n * groupSize}
}

// reduceRange maps x to the range [0, n) using the multiply-high trick
// described at https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func reduceRange(x uint, n int) int {
	h, _ := bits.Mul(x, uint(n))
	return int(h)
}

// addModulo returns x + y wrapped into [1, max], for x in [1, max] and
// 0 <= y <= max.
func addModulo(x, y, max int) int {
	x += y
	if x > max {
		x -= max
	}
	return x
}

// subModulo returns x - y wrapped into [1, max], for x in [1, max] and
// 0 <= y <= max.
func subModulo(x, y, max int) int {
	x -= y
	if x < 1 {
		x += max
	}
	return x
}
