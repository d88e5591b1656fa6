// Package dataset provides dataset lookups and compressed cache loading for progpow.
//
// Lookups are addressed by 32-bit word index and return 64 bytes, so the byte offset of index is index * 4.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// ChunkSize bytes returned by every lookup
	ChunkSize = 64

	// WordSize bytes per dataset index
	WordSize = 4
)

var ErrOutOfRange = errors.New("dataset: index out of range")

func byteOffset(index uint32) int64 {
	return int64(index) * WordSize
}

// Memory dataset fully resident in memory
type Memory []byte

func (m Memory) Lookup(index uint32) ([]byte, error) {
	offset := byteOffset(index)
	if offset+ChunkSize > int64(len(m)) {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, len(m))
	}
	return m[offset : offset+ChunkSize : offset+ChunkSize], nil
}

// Size in bytes
func (m Memory) Size() uint64 {
	return uint64(len(m))
}

// ReaderAt dataset read on demand, typically a dataset file on disk
type ReaderAt struct {
	r    io.ReaderAt
	size int64
}

func NewReaderAt(r io.ReaderAt, size int64) *ReaderAt {
	return &ReaderAt{
		r:    r,
		size: size,
	}
}

func (d *ReaderAt) Lookup(index uint32) ([]byte, error) {
	offset := byteOffset(index)
	if offset+ChunkSize > d.size {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, d.size)
	}
	buf := make([]byte, ChunkSize)
	// a full read may still report io.EOF on the final chunk
	if n, err := d.r.ReadAt(buf, offset); err != nil && (n != ChunkSize || !errors.Is(err, io.EOF)) {
		return nil, err
	}
	return buf, nil
}

// Size in bytes
func (d *ReaderAt) Size() uint64 {
	return uint64(d.size)
}

// File dataset file opened for ReaderAt access
type File struct {
	*ReaderAt
	f *os.File
}

func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{
		ReaderAt: NewReaderAt(f, stat.Size()),
		f:        f,
	}, nil
}

func (f *File) Close() error {
	return f.f.Close()
}

// Synthetic deterministic stand-in for a dataset, byte i of a lookup at index is (index + i) mod 256
type Synthetic struct{}

func (Synthetic) Lookup(index uint32) ([]byte, error) {
	buf := make([]byte, ChunkSize)
	for i := range buf {
		buf[i] = byte(index + uint32(i))
	}
	return buf, nil
}
