package progpow

import (
	"testing"

	"git.gammaspectra.live/P2Pool/progpow/types"
)

func TestKeccakF800(t *testing.T) {
	var st [25]uint32
	keccakF800(&st)

	for i, expected := range []uint32{0xe531d45d, 0xf404c6fb, 0x23a0bf99, 0xf1f8452f} {
		if st[i] != expected {
			t.Errorf("word %d = %08x, want %08x", i, st[i], expected)
		}
	}
}

func TestKeccakF800Long(t *testing.T) {
	var result [8]uint32
	expected := types.MustHashFromString("5dd431e5fbc604f499bfa0232f45f8f142d0ff5178f539e5a7800bf0643697af")

	header := types.ZeroHash
	if h := keccakF800Long(&header, 0, &result); h != expected {
		t.Errorf("keccakF800Long(0, 0, 0) = %s, want %s", h, expected)
	}
}

func TestKeccakF800Short(t *testing.T) {
	var result [8]uint32

	for _, tc := range []struct {
		Header   types.Hash
		Nonce    uint64
		Expected uint64
	}{
		{types.ZeroHash, 0, 0x5dd431e5fbc604f4},
		{types.MustHashFromString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"), 0x123456789ABCDEF0, 0x03e410fba1aaa56f},
	} {
		if seed := keccakF800Short(&tc.Header, tc.Nonce, &result); seed != tc.Expected {
			t.Errorf("keccakF800Short(%s, %x) = %016x, want %016x", tc.Header, tc.Nonce, seed, tc.Expected)
		}
	}
}

func TestHeaderHash(t *testing.T) {
	for _, tc := range []struct {
		Input    string
		Expected types.Hash
	}{
		{"", types.MustHashFromString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")},
		{"abc", types.MustHashFromString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")},
	} {
		if h := HeaderHash([]byte(tc.Input)); h != tc.Expected {
			t.Errorf("HeaderHash(%q) = %s, want %s", tc.Input, h, tc.Expected)
		}
	}
}

func BenchmarkKeccakF800(b *testing.B) {
	b.ReportAllocs()
	var st [25]uint32
	for b.Loop() {
		keccakF800(&st)
	}
}
