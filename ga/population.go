// SPDX-License-Identifier: MIT

package ga

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/tour"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Population is one generation of tours. Its size is fixed for a run.
type Population struct {
	Tours []tour.Tour
}

// InitPopulation builds size independent random tours over m, each evaluated.
//
// Complexity: O(size·n).
func InitPopulation(size int, m *distance.Matrix, rng *rand.Rand) Population {
	p := Population{Tours: make([]tour.Tour, size)}

	var i int
	for i = 0; i < size; i++ {
		p.Tours[i] = tour.NewRandom(m, rng)
	}
	return p
}

// Size returns the number of members.
func (p Population) Size() int {
	return len(p.Tours)
}

// Best returns the shortest member; the first one wins ties. An empty
// population yields the zero Tour. The result aliases the member's buffer.
//
// Complexity: O(size).
func (p Population) Best() tour.Tour {
	if len(p.Tours) == 0 {
		return tour.Tour{}
	}
	var (
		best = 0
		i    int
	)
	for i = 1; i < len(p.Tours); i++ {
		if p.Tours[i].Length < p.Tours[best].Length {
			best = i
		}
	}
	return p.Tours[best]
}

// Lengths returns the cached lengths in member order.
func (p Population) Lengths() []float64 {
	out := make([]float64, len(p.Tours))
	for i := range p.Tours {
		out[i] = p.Tours[i].Length
	}
	return out
}

// PopulationStats summarizes the length distribution of one generation.
type PopulationStats struct {
	Best   float64 `json:"best"`
	Worst  float64 `json:"worst"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// Stats computes best/worst/mean/sample standard deviation of the lengths.
// Undefined values (empty or single-member populations) are reported as 0.
//
// Complexity: O(size).
func (p Population) Stats() PopulationStats {
	if len(p.Tours) == 0 {
		return PopulationStats{}
	}
	xs := p.Lengths()
	mean, std := stat.MeanStdDev(xs, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return PopulationStats{
		Best:   floats.Min(xs),
		Worst:  floats.Max(xs),
		Mean:   mean,
		StdDev: std,
	}
}
