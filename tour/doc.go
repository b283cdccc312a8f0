// SPDX-License-Identifier: MIT

// Package tour provides the individual of the genetic search: a permutation of
// city indices together with its cached closed-cycle length, plus the
// deterministic random sources every stochastic operator draws from.
//
// Invariants:
//   - Tour.Perm is a permutation of 0..n-1 (each index exactly once).
//   - Tour.Length equals distance.TourLength(m, Tour.Perm) for the matrix the
//     tour was evaluated against; it is never updated independently of Perm.
//   - A Tour owns its Perm buffer; Clone is the only sanctioned way to share.
//
// Randomness is always explicit: NewRNG(seed) returns a *rand.Rand that is
// NOT goroutine-safe. Each run gets its own generator; RunSeed spreads one
// batch seed over many runs.
package tour
