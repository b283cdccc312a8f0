// SPDX-License-Identifier: MIT

// Package ga implements a generational genetic algorithm for the shortest
// closed tour over a fixed set of cities.
//
// Building blocks (all pure functions over an explicit *rand.Rand):
//
//   - InitPopulation: size independent uniformly random tours.
//   - Select: tournament selection with replacement (default k=5).
//   - Crossover: order-preserving crossover (OX); always yields a valid
//     permutation when both parents are valid.
//   - Mutate: swap mutation with one Bernoulli trial per call.
//   - BestTracker: best tour observed across generations. Elitism is by
//     observation only: the best is never reinserted into the population, so
//     the population average may regress while the tracked best cannot.
//
// Scheduler drives a run through Idle → Running → {Completed, Stopped} → Idle.
// One Tick is one full, atomic population replacement; Stop is cooperative
// and honoured at the top of the next Tick; Clear discards everything. The
// host decides the cadence, either by calling Tick itself or through Driver.
//
// Errors: Start fails with ErrInvalidInput (fewer than two usable cities) or
// ErrInvalidConfig (a bound violated); match with errors.Is. Stopping is a
// state transition and never an error.
package ga
