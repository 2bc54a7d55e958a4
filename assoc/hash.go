package assoc

import (
	"math/bits"
	"math/rand/v2"
	"unsafe"

	dolthash "github.com/dolthub/maphash"
)

var hashkey = [...]uint64{rand.Uint64(), rand.Uint64()}

// Number returns a hasher for unsigned machine-word keys, using an algorithm
// inspired by https://github.com/Nicoshev/rapidhash. This is the default
// hasher for a Table: every VebMap key is a uint, so this is the hot path.
func Number() func(uint) uint64 {
	seed := rand.Uint64()
	seed ^= mix(seed^hashkey[0], hashkey[1]) ^ uint64(unsafe.Sizeof(uint(0)))
	return func(v uint) uint64 {
		b := uint64(v)
		a := bits.RotateLeft64(b, 32)
		b, a = bits.Mul64(a^hashkey[1], b^seed)
		return mix(a^hashkey[0]^uint64(unsafe.Sizeof(v)), b^hashkey[1])
	}
}

func mix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}

// Generic returns a hasher for any comparable key type, backed by
// github.com/dolthub/maphash. Since WithHasher takes a func(uint) uint64,
// only Generic[uint]() can be passed to it; Table itself always defaults to
// Number.
func Generic[K comparable]() func(K) uint64 {
	h := dolthash.NewHasher[K]()
	return func(k K) uint64 { return h.Hash(k) }
}
