package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// CacheWords number of 32-bit words in a compressed cache
const CacheWords = 16 * 1024 / 4

// ReadCache reads a compressed cache stored as CacheWords little-endian 32-bit words
func ReadCache(r io.Reader) ([]uint32, error) {
	var buf [CacheWords * 4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("dataset: reading cache: %w", err)
	}

	cache := make([]uint32, CacheWords)
	for i := range cache {
		cache[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return cache, nil
}

func LoadCacheFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCache(f)
}

// AppendCache little-endian encodes cache words onto buf
func AppendCache(buf []byte, cache []uint32) []byte {
	for _, w := range cache {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return buf
}

// SequentialCache compressed cache where word i is i, the stand-in used with Synthetic
func SequentialCache() []uint32 {
	cache := make([]uint32, CacheWords)
	for i := range cache {
		cache[i] = uint32(i)
	}
	return cache
}
