// SPDX-License-Identifier: MIT

// Deterministic random streams for the simulators.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Every simulator builds its own.
package simulate

import "math/rand"

// defaultRNGSeed is used when callers pass seed == 0.
const defaultRNGSeed int64 = 1

// Stream identifiers for deriveRNG; each simulator draws from its own stream
// so that the state and shock panels are not correlated under one seed.
const (
	streamMarkov uint64 = iota + 1
	streamIncome
)

// rngFromSeed returns a deterministic *rand.Rand.
// seed == 0 selects defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier with a SplitMix64
// finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG returns the stream of the given id under seed.
func deriveRNG(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rngFromSeed(deriveSeed(seed, stream))
}

// shuffle performs an in-place Fisher–Yates shuffle of a.
//
// Complexity: O(n) time, O(1) extra space.
func shuffle[T any](a []T, r *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
