// SPDX-License-Identifier: MIT

package tour

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/tourga/distance"
)

// ErrInvalidPermutation reports a slice that is not a permutation of 0..n-1.
// Seeing it from an operator's output is a programming defect.
var ErrInvalidPermutation = errors.New("tour: not a permutation")

// Tour is one candidate closed cycle: the visiting order and its length.
type Tour struct {
	Perm   []int   `json:"perm"`
	Length float64 `json:"length"`
}

// Evaluate wraps perm into a Tour with its length computed against m.
// The Tour takes ownership of perm; callers must not reuse the slice.
//
// Complexity: O(n).
func Evaluate(m *distance.Matrix, perm []int) Tour {
	return Tour{Perm: perm, Length: distance.TourLength(m, perm)}
}

// NewRandom draws a uniformly random tour over m's cities.
//
// Complexity: O(n).
func NewRandom(m *distance.Matrix, rng *rand.Rand) Tour {
	return Evaluate(m, Random(m.N(), rng))
}

// Clone returns a Tour with an independent copy of the permutation.
//
// Complexity: O(n).
func (t Tour) Clone() Tour {
	if t.Perm == nil {
		return t
	}
	cp := make([]int, len(t.Perm))
	copy(cp, t.Perm)
	return Tour{Perm: cp, Length: t.Length}
}

// Len returns the number of cities in the tour.
func (t Tour) Len() int {
	return len(t.Perm)
}

// ValidatePermutation checks that perm is a permutation of 0..n-1 of length n.
// The returned error wraps ErrInvalidPermutation and names the offending slot.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("length %d, want %d: %w", len(perm), n, ErrInvalidPermutation)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		if v < 0 || v >= n {
			return fmt.Errorf("perm[%d]=%d out of range [0,%d): %w", i, v, n, ErrInvalidPermutation)
		}
		if seen[v] {
			return fmt.Errorf("duplicate city %d at perm[%d]: %w", v, i, ErrInvalidPermutation)
		}
		seen[v] = true
	}
	return nil
}
