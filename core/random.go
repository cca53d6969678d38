package core

import (
	"math/rand/v2"
)

// Rand is the randomness the station tree consumes. *rand.Rand satisfies it;
// tests substitute scripted sources.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source. A zero seed draws a fresh one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomBools returns count booleans with at least min(minCount, count) true
// values and, when minCount <= maxCount, at most maxCount true values. Forced
// values are placed first, the rest are fair coin flips, and the whole slice
// is shuffled so no position is biased.
func RandomBools(r Rand, count, minCount, maxCount int) []bool {
	if count <= 0 {
		return []bool{}
	}
	forcedTrue := clamp(minCount, 0, count)
	forcedFalse := clamp(count-maxCount, 0, count-forcedTrue)

	result := make([]bool, 0, count)
	for range forcedTrue {
		result = append(result, true)
	}
	for range forcedFalse {
		result = append(result, false)
	}
	for len(result) < count {
		result = append(result, r.IntN(2) == 1)
	}

	r.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result
}

// pick returns a uniform 1-based index in 1..=n.
func pick(r Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return r.IntN(n) + 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
