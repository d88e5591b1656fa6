//go:build purego

package progpow

// lane register file of a single lane. Lanes can be mixed from different goroutines
type lane struct {
	regs [Regs]uint32
	_    [64]byte // prevents false sharing between lanes
}

// State ProgPoW lane state, to reuse between hashes. Not thread-safe.
type State struct {
	lanes [Lanes]lane

	// chunk dataset bytes shared by all lanes for the current loop
	chunk [MixBytes]byte
}
