// SPDX-License-Identifier: MIT

package ga

import (
	"math/rand"

	"github.com/katalvlaran/tourga/tour"
)

// Select runs one tournament: k members are drawn uniformly with
// replacement and the shortest wins; ties go to the earliest draw.
// The returned Tour shares its buffer with the population member and must be
// treated as read-only.
//
// Complexity: O(k).
func Select(p Population, k int, rng *rand.Rand) tour.Tour {
	var (
		n    = len(p.Tours)
		best = p.Tours[rng.Intn(n)]
		cand tour.Tour
		i    int
	)
	for i = 1; i < k; i++ {
		cand = p.Tours[rng.Intn(n)]
		if cand.Length < best.Length {
			best = cand
		}
	}
	return best
}

// Crossover applies order crossover (OX) to two parents of equal length.
// Cut points l ≤ r are drawn uniformly from [0, n-1] (l == r allowed).
// The child is a fresh buffer; parents are not modified.
//
// Complexity: O(n).
func Crossover(p1, p2 []int, rng *rand.Rand) []int {
	var n = len(p1)
	if n == 0 {
		return []int{}
	}
	l, r := rng.Intn(n), rng.Intn(n)
	if l > r {
		l, r = r, l
	}
	return OrderCrossover(p1, p2, l, r)
}

// OrderCrossover is the deterministic core of Crossover for fixed cuts.
// Stage 1: copy p1[l..r] into the same positions of the child.
// Stage 2: walk p2 cyclically from (r+1) mod n and place every city not in
// the segment into the free slots, also cyclically from (r+1) mod n.
//
// The free slots form one cyclic run starting right after r, so the fill
// never has to skip an occupied slot. With l=0 and r=n-1 the fill places
// nothing and the child equals p1.
//
// Requires 0 ≤ l ≤ r < n and both parents permutations of 0..n-1.
//
// Complexity: O(n) time, O(n) space.
func OrderCrossover(p1, p2 []int, l, r int) []int {
	var (
		n     = len(p1)
		child = make([]int, n)
		inSeg = make([]bool, n)
		i     int
		city  int
		pos   int
	)

	for i = l; i <= r; i++ {
		child[i] = p1[i]
		inSeg[p1[i]] = true
	}

	pos = (r + 1) % n
	for i = 0; i < n; i++ {
		city = p2[(r+1+i)%n]
		if inSeg[city] {
			continue
		}
		child[pos] = city
		pos = (pos + 1) % n
	}

	return child
}

// Mutate returns a copy of perm that, with probability rate, has two
// distinct uniformly chosen positions swapped. Exactly one Bernoulli trial is
// made per call. Tours shorter than two cities are returned unchanged.
//
// Complexity: O(n) for the copy.
func Mutate(perm []int, rate float64, rng *rand.Rand) []int {
	out := make([]int, len(perm))
	copy(out, perm)
	mutateSwap(out, rate, rng)
	return out
}

// mutateSwap is the in-place form used on freshly bred children.
// It reports whether a swap happened.
func mutateSwap(p []int, rate float64, rng *rand.Rand) bool {
	if rng.Float64() >= rate {
		return false
	}
	var n = len(p)
	if n < 2 {
		return false
	}
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
	return true
}
