//go:build unix

package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapFile(t *testing.T) {
	data := testData(4096)
	path := writeTestFile(t, data)

	m, err := MapFile(path)
	require.NoError(t, err)

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, index := range []uint32{0, 3, 512, 1008} {
		mapped, err := m.Lookup(index)
		require.NoError(t, err)
		read, err := f.Lookup(index)
		require.NoError(t, err)
		require.Equal(t, read, mapped)
	}

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err = MapFile(writeTestFile(t, data[:ChunkSize-1]))
	require.ErrorIs(t, err, ErrOutOfRange)
}
