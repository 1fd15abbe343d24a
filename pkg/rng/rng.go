// Package rng isolates randomness behind a small interface so that price
// rolls and partner draws are reproducible in tests.
package rng

import (
	"math"
	"math/rand/v2"
)

// Rand is the source of randomness injected into the engine.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// New returns a seeded source. The same seed always produces the same
// sequence of draws.
func New(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Uniform draws a value in [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Round2 rounds to two decimal places. All monetary amounts in the engine
// are rounded this way.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
