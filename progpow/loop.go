package progpow

import (
	"encoding/binary"
	"fmt"
	"math"

	"git.gammaspectra.live/P2Pool/progpow/utils"
)

// datasetItems Number of MixBytes chunks the shared dataset offset ranges over.
// Equal to 64 * items / (Lanes * DagLoads); sizes where that overflows 32 bits are rejected.
func datasetItems(datasetSize uint64) (uint32, error) {
	items := datasetSize / MixBytes
	if items == 0 {
		return 0, fmt.Errorf("%w: %d bytes is less than one %d byte item", ErrInvalidDatasetSize, datasetSize, MixBytes)
	}
	if items > math.MaxUint32/(Lanes*DagLoads) {
		return 0, fmt.Errorf("%w: %d bytes has too many items", ErrInvalidDatasetSize, datasetSize)
	}
	return uint32(items), nil
}

// fetch reads the dataset chunk shared by all lanes of this loop
func (s *State) fetch(lookup Lookup, loop, items uint32) (offset uint32, err error) {
	offset = s.lanes[loop%Lanes].regs[0] % items

	base := offset * Lanes * DagLoads
	for i := range uint32(MixBytes / LookupBytes) {
		index := base + i*LookupWords
		data, err := lookup.Lookup(index)
		if err != nil {
			return 0, fmt.Errorf("%w: index %d: %w", ErrLookupFailure, index, err)
		}
		if len(data) != LookupBytes {
			return 0, fmt.Errorf("%w: index %d returned %d bytes, expected %d", ErrLookupFailure, index, len(data), LookupBytes)
		}
		copy(s.chunk[i*LookupBytes:], data)
	}

	return offset, nil
}

// mixLane runs cache accesses, random math and the dataset merge for one lane.
// Only reads and writes the lane's own registers, plus the shared read-only chunk and cache.
func (s *State) mixLane(seq *sequences, laneId, loop uint32, cache []uint32) {
	mix := &s.lanes[laneId].regs

	// copy, sequences may be shared
	st := seq.state

	var srcCounter uint32
	dstCounter := laneId * dstPerLane

	for i := range CntMath {
		if i < CntCache {
			// cached memory access
			src := seq.src[srcCounter%Regs]
			srcCounter++

			data := cache[mix[src]%CacheWords]

			dst := seq.dst[dstCounter%Regs]
			dstCounter++

			merge(&mix[dst], data, st.next())
		}

		// random math, src1 != src2
		srcRnd := st.next() % (Regs * (Regs - 1))
		src1 := srcRnd % Regs
		src2 := srcRnd / Regs
		if src2 >= src1 {
			src2++
		}

		data := mathOp(mix[src1], mix[src2], st.next())

		dst := seq.dst[dstCounter%Regs]
		dstCounter++

		merge(&mix[dst], data, st.next())
	}

	// dataset merge, word 0 always goes into register 0
	index := ((laneId ^ loop) % Lanes) * DagLoads

	var dataG [DagLoads]uint32
	for i := range uint32(DagLoads) {
		dataG[i] = binary.LittleEndian.Uint32(s.chunk[4*(index+i):])
	}

	merge(&mix[0], dataG[0], st.next())

	for i := 1; i < DagLoads; i++ {
		dst := seq.dst[dstCounter%Regs]
		dstCounter++

		merge(&mix[dst], dataG[i], st.next())
	}
}

// loop one dataset access. Loops must run in order as each one reads registers left by the previous one
func (s *State) loop(h *Hasher, seq *sequences, period uint64, loop uint32, lookup Lookup, cache []uint32, items uint32) error {
	offset, err := s.fetch(lookup, loop, items)
	if err != nil {
		return err
	}

	if h.config.Tracer != nil {
		h.config.Tracer.TraceLoop(loop, offset)
	}

	doLane := func(laneId uint32) {
		if seq == nil {
			fresh := newSequences(period)
			s.mixLane(&fresh, laneId, loop, cache)
			return
		}
		s.mixLane(seq, laneId, loop, cache)
	}

	if h.config.LaneRoutines > 1 {
		return utils.SplitWork(h.config.LaneRoutines, Lanes, func(workIndex uint64, _ int) error {
			doLane(uint32(workIndex))
			return nil
		}, nil)
	}

	for laneId := range uint32(Lanes) {
		doLane(laneId)
	}
	return nil
}
