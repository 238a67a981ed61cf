package decider

import (
	"math/rand/v2"
	"sync"
)

// OffsetSource supplies choice offsets for fuzzy selection, uniform in [0, 1).
type OffsetSource interface {
	Offset() float64
}

// SeededOffsets draws offsets from a PCG generator. A fixed seed makes a
// sequence of decisions reproducible.
type SeededOffsets struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededOffsets returns a source seeded with seed, or with a random seed
// when seed is negative.
func NewSeededOffsets(seed int64) *SeededOffsets {
	s := uint64(seed)
	if seed < 0 {
		s = rand.Uint64()
	}
	return &SeededOffsets{rng: rand.New(rand.NewPCG(s, s))}
}

func (s *SeededOffsets) Offset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
