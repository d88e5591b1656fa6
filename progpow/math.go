package progpow

import (
	"math/bits"

	"git.gammaspectra.live/P2Pool/progpow/utils"
)

const (
	mathAdd = iota
	mathMul
	mathMulHi
	mathMin
	mathRotl
	mathRotr
	mathAnd
	mathOr
	mathXor
	mathClz
	mathPopcount

	mathOps
)

// mathOp random math between two registers, selected by r
func mathOp(a, b, r uint32) uint32 {
	switch r % mathOps {
	case mathAdd:
		return a + b
	case mathMul:
		return a * b
	case mathMulHi:
		hi, _ := bits.Mul32(a, b)
		return hi
	case mathMin:
		return min(a, b)
	case mathRotl:
		return rotl32(a, b)
	case mathRotr:
		return rotr32(a, b)
	case mathAnd:
		return a & b
	case mathOr:
		return a | b
	case mathXor:
		return a ^ b
	case mathClz:
		return uint32(bits.LeadingZeros32(a) + bits.LeadingZeros32(b))
	case mathPopcount:
		return uint32(bits.OnesCount32(a) + bits.OnesCount32(b))
	}
	utils.Panicf("progpow: math op %d out of range", r%mathOps)
	return 0
}

// mergeRotation always in [1, 31]
func mergeRotation(r uint32) uint32 {
	return ((r >> 16) % 31) + 1
}

// merge b into a in place, keeping entropy of a
func merge(a *uint32, b, r uint32) {
	switch r % 4 {
	case 0:
		*a = (*a * 33) + b
	case 1:
		*a = (*a ^ b) * 33
	case 2:
		*a = rotl32(*a, mergeRotation(r)) ^ b
	case 3:
		*a = rotr32(*a, mergeRotation(r)) ^ b
	}
}
