package progpow

import (
	"crypto/subtle"
	"fmt"
	"sync"

	"git.gammaspectra.live/P2Pool/progpow/types"
	"git.gammaspectra.live/P2Pool/progpow/utils"
)

// Hasher computes ProgPoW hashes under a Config. Safe for concurrent use.
type Hasher struct {
	config Config

	sequenceCache utils.Cache[uint64, *sequences]

	statePool sync.Pool
}

func NewHasher(config Config) (*Hasher, error) {
	if err := config.verify(); err != nil {
		return nil, err
	}

	h := &Hasher{
		config: config,
	}

	switch config.SequenceCache {
	case SequenceCacheLRU:
		h.sequenceCache = utils.NewLRUCache[uint64, *sequences](config.SequenceCacheSize)
	case SequenceCacheMap:
		h.sequenceCache = utils.NewMapCache[uint64, *sequences](config.SequenceCacheSize)
	default:
		h.sequenceCache = utils.NewNilCache[uint64, *sequences]()
	}

	h.statePool.New = func() any {
		return new(State)
	}

	return h, nil
}

func (h *Hasher) Config() Config {
	return h.config
}

// Period program period of a block
func (h *Hasher) Period(blockNumber uint64) uint64 {
	return blockNumber / h.config.PeriodLength
}

// sequences returns nil when sequences must be derived per lane
func (h *Hasher) sequences(period uint64) *sequences {
	if h.config.SequenceCache == SequenceCacheNone {
		return nil
	}

	if seq, ok := h.sequenceCache.Get(period); ok {
		return seq
	}

	seq := newSequences(period)
	h.sequenceCache.Set(period, &seq)
	return &seq
}

// ClearCache drops all cached period sequences
func (h *Hasher) ClearCache() {
	h.sequenceCache.Clear()
}

func (h *Hasher) getState() *State {
	//nolint:forcetypeassert
	return h.statePool.Get().(*State)
}

func (h *Hasher) putState(s *State) {
	h.statePool.Put(s)
}

// Hash computes the mix digest and final digest of header and nonce.
// datasetSize is the full dataset size in bytes, cache must hold at least CacheWords words.
// On error both digests are zero.
func (h *Hasher) Hash(header types.Hash, nonce, datasetSize, blockNumber uint64, cache []uint32, lookup Lookup) (mix, final types.Hash, err error) {
	s := h.getState()
	defer h.putState(s)
	return s.Sum(h, header, nonce, datasetSize, blockNumber, cache, lookup)
}

// Verify recomputes the hash and checks it against the claimed mix digest, returning the final digest.
// Checking the final digest against a difficulty target is left to the caller.
func (h *Hasher) Verify(header types.Hash, nonce, datasetSize, blockNumber uint64, cache []uint32, lookup Lookup, mixDigest types.Hash) (final types.Hash, err error) {
	mix, final, err := h.Hash(header, nonce, datasetSize, blockNumber, cache, lookup)
	if err != nil {
		return types.ZeroHash, err
	}

	if subtle.ConstantTimeCompare(mix[:], mixDigest[:]) != 1 {
		return types.ZeroHash, fmt.Errorf("%w: claimed %s, computed %s", ErrMixMismatch, mixDigest, mix)
	}

	return final, nil
}

// Sum computes the hash reusing this state. See Hasher.Hash
func (s *State) Sum(h *Hasher, header types.Hash, nonce, datasetSize, blockNumber uint64, cache []uint32, lookup Lookup) (mix, final types.Hash, err error) {
	if len(cache) < CacheWords {
		return types.ZeroHash, types.ZeroHash, fmt.Errorf("%w: cache has %d words, expected at least %d", ErrInvalidInputLength, len(cache), CacheWords)
	}

	items, err := datasetItems(datasetSize)
	if err != nil {
		return types.ZeroHash, types.ZeroHash, err
	}

	// seed derivation absorbs an all-zero result
	var result [8]uint32
	seed := keccakF800Short(&header, nonce, &result)

	for laneId := range s.lanes {
		s.lanes[laneId].regs = fillMix(seed, uint32(laneId))
	}

	period := h.Period(blockNumber)
	seq := h.sequences(period)

	if h.config.Tracer != nil {
		h.config.Tracer.TraceSeed(seed, period)
	}

	for loop := range uint32(CntDag) {
		if err = s.loop(h, seq, period, loop, lookup, cache, items); err != nil {
			return types.ZeroHash, types.ZeroHash, err
		}
	}

	// reduce each lane to a single word
	var laneResults [Lanes]uint32
	for laneId := range s.lanes {
		laneResults[laneId] = fnvOffsetBasis
		for _, r := range s.lanes[laneId].regs {
			fnv1a(&laneResults[laneId], r)
		}
	}

	for i := range result {
		result[i] = fnvOffsetBasis
	}
	for laneId, r := range laneResults {
		fnv1a(&result[laneId%len(result)], r)
	}

	final = keccakF800Long(&header, seed, &result)
	mix = types.HashFromWords(&result)

	if h.config.Tracer != nil {
		h.config.Tracer.TraceResult(mix, final)
	}

	return mix, final, nil
}

var defaultHasher = sync.OnceValue(func() *Hasher {
	h, err := NewHasher(DefaultConfig)
	if err != nil {
		utils.Panicf("progpow: default config: %s", err)
	}
	return h
})

// Hash computes the mix digest and final digest with DefaultConfig. header must be exactly 32 bytes
func Hash(header []byte, nonce, datasetSize, blockNumber uint64, cache []uint32, lookup Lookup) (mix, final types.Hash, err error) {
	if len(header) != types.HashSize {
		return types.ZeroHash, types.ZeroHash, fmt.Errorf("%w: header digest has %d bytes, expected %d", ErrInvalidInputLength, len(header), types.HashSize)
	}
	return defaultHasher().Hash(types.Hash(header), nonce, datasetSize, blockNumber, cache, lookup)
}
