package progpow

import "math/bits"

// kiss99 Marsaglia's KISS99 generator: two multiply-with-carry, one xorshift and one congruential generator
type kiss99 struct {
	z, w, jsr, jcong uint32
}

// next operation order is part of consensus
func (st *kiss99) next() uint32 {
	st.z = 36969*(st.z&0xffff) + (st.z >> 16)
	st.w = 18000*(st.w&0xffff) + (st.w >> 16)
	mwc := (st.z << 16) + st.w

	st.jsr ^= st.jsr << 17
	st.jsr ^= st.jsr >> 13
	st.jsr ^= st.jsr << 5

	st.jcong = 69069*st.jcong + 1234567

	return (mwc ^ st.jcong) + st.jsr
}

// fnv1a hash-combine of d into h, returns the new value of h
func fnv1a(h *uint32, d uint32) uint32 {
	*h = (*h ^ d) * fnvPrime
	return *h
}

func lower32(n uint64) uint32 {
	return uint32(n)
}

func higher32(n uint64) uint32 {
	return uint32(n >> 32)
}

func rotl32(x, n uint32) uint32 {
	return bits.RotateLeft32(x, int(n%32))
}

func rotr32(x, n uint32) uint32 {
	return bits.RotateLeft32(x, -int(n%32))
}
