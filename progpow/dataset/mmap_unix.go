//go:build unix

package dataset

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped dataset file mapped read-only into memory
type Mapped struct {
	Memory
}

// MapFile maps a dataset file. Lookups return slices of the mapping, which are invalid after Close
func MapFile(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() < ChunkSize {
		return nil, fmt.Errorf("%w: file %s is %d bytes", ErrOutOfRange, path, stat.Size())
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("dataset: mmap %s: %w", path, err)
	}
	return &Mapped{Memory: data}, nil
}

func (m *Mapped) Close() error {
	if m.Memory == nil {
		return nil
	}
	err := unix.Munmap(m.Memory)
	m.Memory = nil
	return err
}
