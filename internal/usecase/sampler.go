package usecase

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Sampler draws random selections from a shared, seedable source.
// It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler seeded with seed; a zero seed uses the current time
func NewSampler(seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Indices returns up to k distinct indices from [0, n) in random order
func (s *Sampler) Indices(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	s.mu.Lock()
	perm := s.rng.Perm(n)
	s.mu.Unlock()
	if k < n {
		perm = perm[:k]
	}
	return perm
}

// Choice returns a random element of options, or "" when options is empty
func (s *Sampler) Choice(options []string) string {
	if len(options) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return options[s.rng.IntN(len(options))]
}
