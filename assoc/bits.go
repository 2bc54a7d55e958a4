package assoc

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

func h1(hash uint64) uint  { return uint(hash) }
func h2(hash uint64) uint8 { return uint8(hash) | setMask }

const (
	empty     = 0
	deleted   = 2 // see [matchEmpty]. For in-place rehash, this must be an exponent of 2 > 0.
	setMask   = 0x80
	groupSize = 8

	loBits = 0x0101010101010101
	hiBits = 0x8080808080808080
)

// bitset provides fast match operations over a group of 8 control bytes.
// See https://graphics.stanford.edu/~seander/bithacks.html#ZeroInWord
type bitset uint64

func newBitset(c *uint8) bitset {
	b := *(*[8]uint8)(unsafe.Pointer(c))
	return bitset(binary.LittleEndian.Uint64(b[:]))
}

// matchNotSet matches slots that are either empty or deleted.
func (s bitset) matchNotSet() match { return (match(s) & hiBits) ^ hiBits }

// matchSet matches slots that are set.
func (s bitset) matchSet() match { return match(s) & hiBits }

// matchEmpty matches empty slots. Like [matchZero], [match.next] could yield false
// positives for any 0x0100 sequence. This is why [deleted] is 2.
func (s bitset) matchEmpty() match { return (match(s) - loBits) & ^match(s) & hiBits }

// matchZero returns a non zero bitset if and only if s contains any zero byte.
func (s bitset) matchZero() match { return (match(s) - loBits) & ^match(s) & hiBits }

// matchByte returns a non zero bitset if and only if s contains any byte matching b.
func (s bitset) matchByte(b uint8) match { return (s ^ (loBits * bitset(b))).matchZero() }

func markDeletedAsEmptyAndSetAsDeleted(c *uint8) {
	s := *(*uint64)(unsafe.Pointer(c))
	s ^= deleted
	*(*uint64)(unsafe.Pointer(c)) = s & hiBits / (setMask / deleted)
}

// matchDeleted matches only deleted ctrl bytes, but s must contain only
// deleted or empty entries (the state produced by
// markDeletedAsEmptyAndSetAsDeleted).
func (s bitset) matchDeleted() match {
	// do not even multiply by (setMask/deleted): match.next works as intended
	// with any non-zero byte.
	return match(s)
}

type match uint64

// next returns the offset from the start of the bitset to the next match.
func (m *match) next() int {
	n := bits.TrailingZeros64(uint64(*m))
	*m &= ^(1 << uint(n))
	return n >> 3
}

// first returns the position of the first match. Does not update m.
func (m match) first() int { return bits.TrailingZeros64(uint64(m)) >> 3 }

// firstFromEnd returns the position of the first match, counting from the end of m.
func (m match) firstFromEnd() int { return bits.LeadingZeros64(uint64(m)) >> 3 }
