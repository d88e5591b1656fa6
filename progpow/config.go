package progpow

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/progpow/utils"
)

type SequenceCacheMode int

const (
	// SequenceCacheLRU keeps the most recently used periods
	SequenceCacheLRU SequenceCacheMode = iota
	// SequenceCacheMap keeps periods until the size is exceeded, then starts over
	SequenceCacheMap
	// SequenceCacheNone derives sequences again for every lane of every loop
	SequenceCacheNone
)

func (m SequenceCacheMode) String() string {
	switch m {
	case SequenceCacheLRU:
		return "lru"
	case SequenceCacheMap:
		return "map"
	case SequenceCacheNone:
		return "none"
	}
	return ""
}

func (m SequenceCacheMode) MarshalJSON() ([]byte, error) {
	return []byte("\"" + m.String() + "\""), nil
}

func (m *SequenceCacheMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := utils.UnmarshalJSON(b, &s); err != nil {
		return err
	}

	mode, err := ParseSequenceCacheMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func ParseSequenceCacheMode(s string) (SequenceCacheMode, error) {
	switch s {
	case "", "lru":
		return SequenceCacheLRU, nil
	case "map":
		return SequenceCacheMap, nil
	case "none":
		return SequenceCacheNone, nil
	}
	return 0, fmt.Errorf("unknown sequence cache mode %s", s)
}

type Config struct {
	// PeriodLength Number of blocks sharing the same register sequences. Zero selects DefaultPeriodLength
	PeriodLength uint64 `json:"period_length"`

	// LaneRoutines Number of goroutines lanes are split across within one loop. 0 or 1 runs lanes sequentially
	LaneRoutines int `json:"lane_routines"`

	SequenceCache     SequenceCacheMode `json:"sequence_cache"`
	SequenceCacheSize int               `json:"sequence_cache_size"`

	// Tracer optional, receives intermediate values
	Tracer Tracer `json:"-"`
}

const DefaultSequenceCacheSize = 4

// MaxLaneRoutines more routines than lanes cannot be used
const MaxLaneRoutines = Lanes

var DefaultConfig = Config{
	PeriodLength:      DefaultPeriodLength,
	LaneRoutines:      1,
	SequenceCache:     SequenceCacheLRU,
	SequenceCacheSize: DefaultSequenceCacheSize,
}

func NewConfigFromJSON(data []byte) (*Config, error) {
	var c Config
	if err := utils.UnmarshalJSON(data, &c); err != nil {
		return nil, err
	}

	if err := c.verify(); err != nil {
		return nil, err
	}

	return &c, nil
}

// verify fills in defaults and checks ranges
func (c *Config) verify() error {
	if c.PeriodLength == 0 {
		c.PeriodLength = DefaultPeriodLength
	}

	if c.LaneRoutines == 0 {
		c.LaneRoutines = 1
	}

	if c.LaneRoutines < 0 || c.LaneRoutines > MaxLaneRoutines {
		return fmt.Errorf("%w: lane_routines %d out of range [1, %d]", ErrInvalidConfig, c.LaneRoutines, MaxLaneRoutines)
	}

	switch c.SequenceCache {
	case SequenceCacheLRU, SequenceCacheMap:
		if c.SequenceCacheSize == 0 {
			c.SequenceCacheSize = DefaultSequenceCacheSize
		}
		if c.SequenceCacheSize < 0 {
			return fmt.Errorf("%w: sequence_cache_size %d must be positive", ErrInvalidConfig, c.SequenceCacheSize)
		}
	case SequenceCacheNone:
	default:
		return fmt.Errorf("%w: unknown sequence cache mode %d", ErrInvalidConfig, c.SequenceCache)
	}

	return nil
}
