// SPDX-License-Identifier: MIT

// Package distance models the geometry of a closed-tour instance: a fixed set
// of 2-D cities, the symmetric Euclidean distance matrix derived from them,
// and the length of a closed tour over that matrix.
//
// Contract:
//   - Build requires at least two cities with finite coordinates; otherwise it
//     returns ErrTooFewCities or ErrBadCoordinate (check with errors.Is).
//   - A *Matrix is immutable once built: no exported setters, safe for
//     concurrent readers without synchronization.
//   - TourLength is pure and O(n); it assumes a valid permutation and does not
//     re-validate it on the hot path (see tour.ValidatePermutation).
//
// Costs are stabilized to 1e-9 absolute precision so that the same cycle read
// from a different starting city or in the opposite direction yields the
// identical float64.
package distance
