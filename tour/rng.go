// SPDX-License-Identifier: MIT

package tour

import "math/rand"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// NewRNG returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// RunSeed returns the seed of run i in a batch started from seed. Run 0
// keeps seed itself, so a single run reproduces the seed the user gave;
// later runs get well-spread seeds that can be replayed one at a time.
// The result is never 0.
//
// Complexity: O(1).
func RunSeed(seed int64, run int) int64 {
	if seed == 0 {
		seed = DefaultSeed
	}
	if run == 0 {
		return seed
	}

	// SplitMix64 step over (seed, run).
	z := uint64(seed) + uint64(run)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		return DefaultSeed
	}
	return int64(z)
}

// Shuffle performs an in-place Fisher–Yates shuffle: for i from the last
// index down to 1, swap a[i] with a[j] for uniform j∈[0,i]. Every
// permutation is equally likely.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle(a []int, rng *rand.Rand) {
	var (
		i, j int
	)
	for i = len(a) - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Random returns a uniformly random permutation of 0..n-1 drawn from rng.
// n<=0 yields an empty slice.
//
// Complexity: O(n) time, O(n) space.
func Random(n int, rng *rand.Rand) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)

	var i int
	for i = 0; i < n; i++ {
		p[i] = i
	}
	Shuffle(p, rng)
	return p
}
