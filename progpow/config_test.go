package progpow

import (
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/progpow/utils"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromJSON(t *testing.T) {
	c, err := NewConfigFromJSON([]byte(`{"period_length": 50, "lane_routines": 4, "sequence_cache": "map", "sequence_cache_size": 8}`))
	require.NoError(t, err)
	require.Equal(t, uint64(50), c.PeriodLength)
	require.Equal(t, 4, c.LaneRoutines)
	require.Equal(t, SequenceCacheMap, c.SequenceCache)
	require.Equal(t, 8, c.SequenceCacheSize)

	// empty object gets defaults
	c, err = NewConfigFromJSON([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig, *c)

	c, err = NewConfigFromJSON([]byte(`{"sequence_cache": "none"}`))
	require.NoError(t, err)
	require.Equal(t, SequenceCacheNone, c.SequenceCache)
	require.Equal(t, 0, c.SequenceCacheSize)
}

func TestNewConfigFromJSONErrors(t *testing.T) {
	for _, data := range []string{
		`{"lane_routines": 17}`,
		`{"lane_routines": -1}`,
		`{"sequence_cache_size": -1}`,
	} {
		_, err := NewConfigFromJSON([]byte(data))
		require.ErrorIs(t, err, ErrInvalidConfig, data)
	}

	_, err := NewConfigFromJSON([]byte(`{"sequence_cache": "disk"}`))
	require.Error(t, err)

	_, err = NewConfigFromJSON([]byte(`{`))
	require.Error(t, err)

	_, err = NewHasher(Config{SequenceCache: SequenceCacheMode(42)})
	require.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestConfigMarshalJSON(t *testing.T) {
	config := Config{
		PeriodLength:      10,
		LaneRoutines:      2,
		SequenceCache:     SequenceCacheNone,
		SequenceCacheSize: 0,
		Tracer:            LogTracer{},
	}

	data, err := utils.MarshalJSON(config)
	require.NoError(t, err)
	require.JSONEq(t, `{"period_length": 10, "lane_routines": 2, "sequence_cache": "none", "sequence_cache_size": 0}`, string(data))

	c, err := NewConfigFromJSON(data)
	require.NoError(t, err)
	config.Tracer = nil
	require.Equal(t, config, *c)
}

func TestParseSequenceCacheMode(t *testing.T) {
	for _, mode := range []SequenceCacheMode{SequenceCacheLRU, SequenceCacheMap, SequenceCacheNone} {
		parsed, err := ParseSequenceCacheMode(mode.String())
		require.NoError(t, err)
		require.Equal(t, mode, parsed)
	}

	parsed, err := ParseSequenceCacheMode("")
	require.NoError(t, err)
	require.Equal(t, SequenceCacheLRU, parsed)
}
