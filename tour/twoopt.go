// SPDX-License-Identifier: MIT

package tour

import (
	"github.com/katalvlaran/tourga/distance"
)

// twoOptEps is the minimum gain for a move to be accepted; it keeps float
// noise from cycling between equivalent tours.
const twoOptEps = 1e-12

// TwoOpt polishes perm with deterministic first-improvement 2-opt: it keeps
// reversing a segment perm[i..k] whenever replacing edges (a,b),(c,d) by
// (a,c),(b,d) shortens the cycle, until no such move exists or maxMoves
// moves were applied (maxMoves <= 0 means unlimited). perm is not modified.
//
// Δ = d(a,c) + d(b,d) − d(a,b) − d(c,d), with a=perm[i−1], b=perm[i],
// c=perm[k], d=perm[k+1] read cyclically.
//
// Complexity: O(n²) per pass, O(n) per accepted move.
func TwoOpt(m *distance.Matrix, perm []int, maxMoves int) (Tour, error) {
	n := m.N()
	if err := ValidatePermutation(perm, n); err != nil {
		return Tour{}, err
	}

	cur := make([]int, n)
	copy(cur, perm)
	if n < 4 {
		return Evaluate(m, cur), nil
	}

	accepted := 0
	for {
		improved := false

		var (
			a, b, c, d int
			delta      float64
			i, k       int
		)
	scan:
		for i = 0; i < n-1; i++ {
			for k = i + 1; k < n; k++ {
				if i == 0 && k == n-1 {
					continue // reversing everything yields the same cycle
				}
				a = cur[(i-1+n)%n]
				b = cur[i]
				c = cur[k]
				d = cur[(k+1)%n]

				delta = m.Weight(a, c) + m.Weight(b, d) - m.Weight(a, b) - m.Weight(c, d)
				if delta >= -twoOptEps {
					continue
				}
				reverse(cur, i, k)
				accepted++
				improved = true
				break scan
			}
		}

		if !improved || (maxMoves > 0 && accepted >= maxMoves) {
			break
		}
	}
	return Evaluate(m, cur), nil
}

// reverse flips a[i..k] in place.
func reverse(a []int, i, k int) {
	for i < k {
		a[i], a[k] = a[k], a[i]
		i++
		k--
	}
}
