package progpow

// Lookup read-only access to the full dataset.
// Lookup returns the LookupBytes bytes starting at 32-bit word index, and must return the same bytes for the same index every time.
// It may block; retry and deadlines are up to the implementation.
type Lookup interface {
	Lookup(index uint32) ([]byte, error)
}

// LookupFunc adapts a function to Lookup
type LookupFunc func(index uint32) ([]byte, error)

func (f LookupFunc) Lookup(index uint32) ([]byte, error) {
	return f(index)
}
