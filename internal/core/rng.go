package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewWorkerRNG creates a deterministic RNG for one worker rank. Distinct
// ranks draw from distinct streams of the same run seed, so workers can
// initialize their cells without exchanging any data and without producing
// correlated lattices.
func NewWorkerRNG(seed int64, rank int) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), uint64(rank)+1))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// FillDensity marks each cell of buf occupied independently with the given
// probability and clears the rest.
func (r *RNG) FillDensity(buf []uint8, density float64) {
	for i := range buf {
		if r.r.Float64() < density {
			buf[i] = 1
		} else {
			buf[i] = 0
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
