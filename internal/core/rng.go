package core

// Rand is the random source used by weapons and AI.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// SimpleRNG is a deterministic linear congruential generator.
// Identical seeds produce identical runs.
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a generator from a seed.
func NewRNG(seed int64) *SimpleRNG {
	return &SimpleRNG{state: uint64(seed)}
}

func (r *SimpleRNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n). Non-positive n yields 0.
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.next() >> 33) % uint64(n))
}

// Float64 returns a value in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

// Between returns a uniform integer in [lo, hi], inclusive.
func Between(r Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FloatBetween returns a uniform float in [lo, hi).
func FloatBetween(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Pick returns one of the choices uniformly. An empty slice yields 0.
func Pick(r Rand, choices []int) int {
	if len(choices) == 0 {
		return 0
	}
	return choices[r.Intn(len(choices))]
}
