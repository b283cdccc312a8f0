// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"
	"strings"
)

// roundScale controls final length stabilization precision (1e-9).
const roundScale = 1e9

// Matrix is a read-only n×n table of pairwise city distances stored row-major
// in a flat slice. It is symmetric with a zero diagonal by construction.
type Matrix struct {
	n    int       // number of cities
	data []float64 // flat backing storage, len == n*n
}

// Build derives the distance matrix for cities.
// Stage 1 (Validate): at least two cities, finite coordinates.
// Stage 2 (Fill): compute the upper triangle once and mirror it, so
// a[i][j] and a[j][i] are bit-identical.
//
// Complexity: O(n²) time and memory.
func Build(cities []City) (*Matrix, error) {
	if err := validateCities(cities); err != nil {
		return nil, err
	}

	var (
		n    = len(cities)
		data = make([]float64, n*n)
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = cities[i].Dist(cities[j])
			data[i*n+j] = d
			data[j*n+i] = d
		}
	}

	return &Matrix{n: n, data: data}, nil
}

// N returns the number of cities (matrix order).
// Complexity: O(1).
func (m *Matrix) N() int {
	return m.n
}

// At returns the distance between cities i and j.
// Complexity: O(1).
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("Matrix.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	return m.data[i*m.n+j], nil
}

// Weight is the unchecked form of At for hot loops over indices already
// known to be in [0, N()). Out-of-range indices panic.
// Complexity: O(1).
func (m *Matrix) Weight(i, j int) float64 {
	return m.data[i*m.n+j]
}

// String renders the matrix row by row for debugging.
// Complexity: O(n²).
func (m *Matrix) String() string {
	var (
		sb   strings.Builder
		i, j int
	)
	for i = 0; i < m.n; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.n; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.Weight(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// TourLength returns the total length of the closed cycle perm[0] → perm[1]
// → … → perm[n-1] → perm[0]. A single city yields 0; two cities yield the
// go-and-return distance 2·d(0,1).
//
// perm must be a permutation of 0..m.N()-1; indices are not re-checked.
//
// Complexity: O(n).
func TourLength(m *Matrix, perm []int) float64 {
	var n = len(perm)
	if n < 2 {
		return 0
	}

	var (
		sum float64
		i   int
	)
	for i = 0; i < n-1; i++ {
		sum += m.Weight(perm[i], perm[i+1])
	}
	sum += m.Weight(perm[n-1], perm[0]) // closing edge

	return round1e9(sum)
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
