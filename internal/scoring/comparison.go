package scoring

import (
	"math"
	"math/rand/v2"
	"sync"
)

// GlobalAverage is the fixed reference average shown next to the user's.
const GlobalAverage = 68

// betterThanFactor scales the user's average into the "better than" figure.
const betterThanFactor = 1.2

// Reference noise bounds, in percent.
const (
	referenceMin  = 65.0
	referenceSpan = 15.0
)

// Comparison is the static comparison panel for one attempt.
type Comparison struct {
	UserAverage   float64
	GlobalAverage int
	// BetterThan is round(UserAverage*1.2). It is not clamped and exceeds
	// 100 for averages above 83.3%.
	BetterThan int
}

// ComputeComparison derives the comparison panel from the user's average.
func ComputeComparison(average float64) Comparison {
	return Comparison{
		UserAverage:   average,
		GlobalAverage: GlobalAverage,
		BetterThan:    int(math.Round(average * betterThanFactor)),
	}
}

// ReferenceSampler draws the per-category reference percentages. They are
// decorative: every call returns fresh values in [65, 80).
type ReferenceSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewReferenceSampler returns a sampler backed by a randomly seeded source.
func NewReferenceSampler() *ReferenceSampler {
	return &ReferenceSampler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededReferenceSampler returns a deterministic sampler.
func NewSeededReferenceSampler(seed1, seed2 uint64) *ReferenceSampler {
	return &ReferenceSampler{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Sample returns n reference percentages.
func (s *ReferenceSampler) Sample(n int) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		out[i] = referenceMin + s.rng.Float64()*referenceSpan
	}
	return out
}
