package progpow

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/progpow/types"
	"git.gammaspectra.live/P2Pool/sha3"
)

// keccakF800Rounds ProgPoW runs a truncated Keccak-f[800], rounds 0 through 21
const keccakF800Rounds = 22

// keccakRoundConstants Keccak-f round constants truncated to 32 bits, used in the iota step
var keccakRoundConstants = [24]uint32{
	0x00000001, 0x00008082, 0x0000808a, 0x80008000,
	0x0000808b, 0x80000001, 0x80008081, 0x00008009,
	0x0000008a, 0x00000088, 0x80008009, 0x8000000a,
	0x8000808b, 0x0000008b, 0x00008089, 0x00008003,
	0x00008002, 0x00000080, 0x0000800a, 0x8000000a,
	0x80008081, 0x00008080, 0x80000001, 0x80008008,
}

// keccakRotationOffsets rho offsets, reduced modulo 32 on use
var keccakRotationOffsets = [24]uint32{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// keccakPiLanes pi lane walk
var keccakPiLanes = [24]uint8{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

func keccakF800Round(st *[25]uint32, r int) {
	var bc [5]uint32

	// theta
	for i := range 5 {
		bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
	}
	for i := range 5 {
		t := bc[(i+4)%5] ^ rotl32(bc[(i+1)%5], 1)
		for j := 0; j < 25; j += 5 {
			st[j+i] ^= t
		}
	}

	// rho and pi
	t := st[1]
	for i, j := range keccakPiLanes {
		bc[0] = st[j]
		st[j] = rotl32(t, keccakRotationOffsets[i])
		t = bc[0]
	}

	// chi
	for j := 0; j < 25; j += 5 {
		bc[0] = st[j+0]
		bc[1] = st[j+1]
		bc[2] = st[j+2]
		bc[3] = st[j+3]
		bc[4] = st[j+4]

		st[j+0] ^= ^bc[1] & bc[2]
		st[j+1] ^= ^bc[2] & bc[3]
		st[j+2] ^= ^bc[3] & bc[4]
		st[j+3] ^= ^bc[4] & bc[0]
		st[j+4] ^= ^bc[0] & bc[1]
	}

	// iota
	st[0] ^= keccakRoundConstants[r]
}

func keccakF800(st *[25]uint32) {
	for r := range keccakF800Rounds {
		keccakF800Round(st, r)
	}
}

// keccakF800State loads header (words 0-7), nonce (words 8-9) and result (words 10-17) with the rest zero, then permutes
func keccakF800State(header *types.Hash, nonce uint64, result *[8]uint32) (st [25]uint32) {
	for i := range 8 {
		st[i] = binary.LittleEndian.Uint32(header[i*4:])
	}

	st[8] = lower32(nonce)
	st[9] = higher32(nonce)

	copy(st[10:18], result[:])

	keccakF800(&st)

	return st
}

// keccakF800Short derives the 64-bit seed
func keccakF800Short(header *types.Hash, nonce uint64, result *[8]uint32) uint64 {
	st := keccakF800State(header, nonce, result)

	// word 0 and 1 are stored big-endian, swapped, and read back little-endian
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[4:], st[0])
	binary.BigEndian.PutUint32(buf[:4], st[1])
	return binary.LittleEndian.Uint64(buf[:])
}

// keccakF800Long derives the final digest
func keccakF800Long(header *types.Hash, nonce uint64, result *[8]uint32) types.Hash {
	st := keccakF800State(header, nonce, result)
	return types.HashFromWords((*[8]uint32)(st[:8]))
}

// HeaderHash Keccak-256 of a serialized block header, the header digest fed into Hash
func HeaderHash(header []byte) (result types.Hash) {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(header)
	h.Sum(result[:0])
	return result
}
