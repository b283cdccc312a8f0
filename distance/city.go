// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"
	"math/rand"
)

// City is an immutable point of the instance. ID is informational only;
// algorithms address cities by their index in the slice passed to Build.
type City struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Dist returns the Euclidean distance between a and b.
// Complexity: O(1).
func (a City) Dist(b City) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// RandomCities scatters n cities uniformly over [0,width)×[0,height).
// IDs are "c0".."c{n-1}". The result depends only on rng's state.
//
// Complexity: O(n).
func RandomCities(n int, width, height float64, rng *rand.Rand) []City {
	if n <= 0 {
		return nil
	}
	out := make([]City, n)

	var i int
	for i = 0; i < n; i++ {
		out[i] = City{
			ID: fmt.Sprintf("c%d", i),
			X:  rng.Float64() * width,
			Y:  rng.Float64() * height,
		}
	}
	return out
}

// validateCities checks the count and that every coordinate is finite.
func validateCities(cities []City) error {
	if len(cities) < 2 {
		return fmt.Errorf("got %d: %w", len(cities), ErrTooFewCities)
	}
	for i, c := range cities {
		if math.IsNaN(c.X) || math.IsInf(c.X, 0) || math.IsNaN(c.Y) || math.IsInf(c.Y, 0) {
			return fmt.Errorf("city %d (%q): %w", i, c.ID, ErrBadCoordinate)
		}
	}
	return nil
}
