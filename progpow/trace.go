package progpow

import (
	"git.gammaspectra.live/P2Pool/progpow/types"
	"git.gammaspectra.live/P2Pool/progpow/utils"
)

// Tracer receives intermediate values of a hash computation. Calls happen on the hashing goroutine, in order.
type Tracer interface {
	// TraceSeed called once per hash with the derived seed and program period
	TraceSeed(seed, period uint64)
	// TraceLoop called before each loop with its shared dataset offset
	TraceLoop(loop, offset uint32)
	// TraceResult called once the digests are known
	TraceResult(mix, final types.Hash)
}

// LogTracer writes all trace events as debug log lines
type LogTracer struct {
	Prefix string
}

func (t LogTracer) prefix() string {
	if t.Prefix == "" {
		return "ProgPoW"
	}
	return t.Prefix
}

func (t LogTracer) TraceSeed(seed, period uint64) {
	utils.Debugf(t.prefix(), "seed = %016x, period = %d", seed, period)
}

func (t LogTracer) TraceLoop(loop, offset uint32) {
	utils.Debugf(t.prefix(), "loop %d: dataset offset = %d", loop, offset)
}

func (t LogTracer) TraceResult(mix, final types.Hash) {
	utils.Debugf(t.prefix(), "mix = %s, final = %s", mix, final)
}
