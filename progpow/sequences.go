package progpow

// sequences per-period register selection state. Value type: each lane works on its own copy of state
type sequences struct {
	state kiss99

	// dst destination register permutation, consumed cyclically
	dst [Regs]uint32
	// src cache access source register permutation, consumed cyclically
	src [Regs]uint32
}

func newKiss99(a, b, c, d uint32) (st kiss99) {
	var hash uint32 = fnvOffsetBasis
	st.z = fnv1a(&hash, a)
	st.w = fnv1a(&hash, b)
	st.jsr = fnv1a(&hash, c)
	st.jcong = fnv1a(&hash, d)
	return st
}

// newSequences derives the random state and both register permutations for a period
func newSequences(seed uint64) (s sequences) {
	s.state = newKiss99(lower32(seed), higher32(seed), lower32(seed), higher32(seed))

	for i := range uint32(Regs) {
		s.dst[i] = i
		s.src[i] = i
	}

	// Durstenfeld shuffle, dst and src draws interleaved
	for i := uint32(Regs - 1); i > 0; i-- {
		j := s.state.next() % (i + 1)
		s.dst[i], s.dst[j] = s.dst[j], s.dst[i]

		j = s.state.next() % (i + 1)
		s.src[i], s.src[j] = s.src[j], s.src[i]
	}

	return s
}

// fillMix initial register values of a lane
func fillMix(seed uint64, laneId uint32) (mix [Regs]uint32) {
	st := newKiss99(lower32(seed), higher32(seed), laneId, laneId)

	for i := range mix {
		mix[i] = st.next()
	}
	return mix
}
