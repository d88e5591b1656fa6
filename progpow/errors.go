package progpow

import "errors"

var (
	// ErrInvalidInputLength header digest is not 32 bytes, or the compressed cache is shorter than CacheWords
	ErrInvalidInputLength = errors.New("progpow: invalid input length")

	// ErrInvalidDatasetSize dataset size yields zero dataset items, or more than fit in 32 bits
	ErrInvalidDatasetSize = errors.New("progpow: invalid dataset size")

	// ErrLookupFailure dataset lookup returned an error or a chunk of the wrong length
	ErrLookupFailure = errors.New("progpow: dataset lookup failure")

	// ErrInvalidConfig Config did not verify
	ErrInvalidConfig = errors.New("progpow: invalid config")

	// ErrMixMismatch claimed mix digest does not match the computed one
	ErrMixMismatch = errors.New("progpow: mix digest mismatch")
)
