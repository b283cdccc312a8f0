// SPDX-License-Identifier: MIT

package ga

import (
	"math"

	"github.com/katalvlaran/tourga/tour"
)

// BestTracker keeps an independent copy of the shortest tour observed so far.
// Its length never increases between Reset calls.
type BestTracker struct {
	best       tour.Tour
	ok         bool
	generation int
}

// Observe records t if it is strictly shorter than the current best (or if
// nothing was recorded yet) and reports whether it did.
func (b *BestTracker) Observe(t tour.Tour, generation int) bool {
	if b.ok && t.Length >= b.best.Length {
		return false
	}
	b.best = t.Clone()
	b.ok = true
	b.generation = generation
	return true
}

// Best returns a copy of the tracked tour and whether one exists.
func (b *BestTracker) Best() (tour.Tour, bool) {
	return b.best.Clone(), b.ok
}

// Length returns the tracked length, or +Inf before the first observation.
func (b *BestTracker) Length() float64 {
	if !b.ok {
		return math.Inf(1)
	}
	return b.best.Length
}

// Generation returns the generation index at which the best was found.
func (b *BestTracker) Generation() int {
	return b.generation
}

// Reset forgets the tracked tour.
func (b *BestTracker) Reset() {
	*b = BestTracker{}
}
