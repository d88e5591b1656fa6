package progpow

import "math"

const (
	// CacheBytes Total size of the compressed cache
	CacheBytes = 16 * 1024
	// CacheWords Number of 32-bit words in the compressed cache
	CacheWords = CacheBytes / 4

	// Lanes Number of parallel lanes
	Lanes = 16
	// Regs Number of registers per lane
	Regs = 32

	// DagLoads Number of uint32 loads from the dataset per lane
	DagLoads = 4

	// CntCache Number of cache accesses per loop
	CntCache = 11
	// CntMath Number of math operations per loop
	CntMath = 18
	// CntDag Number of dataset accesses, one per loop
	CntDag = 64

	// MixBytes Size of one dataset chunk fetched per loop
	MixBytes = 256

	// LookupBytes Size of a single dataset lookup
	LookupBytes = 64
	// LookupWords Stride between consecutive lookups in the same chunk
	LookupWords = LookupBytes / 4

	// DefaultPeriodLength Blocks per program period. Every realistic block maps to period 0
	DefaultPeriodLength uint64 = math.MaxUint64
)

const (
	fnvOffsetBasis = 0x811c9dc5
	fnvPrime       = 0x01000193
)

// every lane consumes exactly Regs entries of the destination sequence
const dstPerLane = CntCache + CntMath + DagLoads - 1

// make sure counters line up with the sequence length
var _ = [1]struct{}{}[dstPerLane-Regs]
