// SPDX-License-Identifier: MIT

package ga

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
)

// Option customizes a Scheduler before its first run.
// Option constructors panic on meaningless input (nil values); the
// scheduler itself never panics on user input.
type Option func(*Scheduler)

// WithReporter routes progress and termination events to r.
func WithReporter(r Reporter) Option {
	if r == nil {
		panic("ga: WithReporter(nil)")
	}
	return func(s *Scheduler) {
		s.reporter = r
	}
}

// WithLogger attaches a structured logger for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("ga: WithLogger(nil)")
	}
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithRand supplies the random stream explicitly, overriding Config.Seed.
// The stream is owned by the scheduler from now on and is only drawn under
// its lock, so Start may replace a run that a Driver is still ticking. Do
// not share it with other schedulers.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("ga: WithRand(nil)")
	}
	return func(s *Scheduler) {
		s.rng = r
	}
}

// WithIDFunc overrides how run IDs are generated (default: random UUID).
func WithIDFunc(fn func() string) Option {
	if fn == nil {
		panic("ga: WithIDFunc(nil)")
	}
	return func(s *Scheduler) {
		s.newID = fn
	}
}

// WithInvariantChecks validates every bred child and panics on a corrupted
// permutation. Meant for tests and debugging; it costs O(n) per child.
func WithInvariantChecks() Option {
	return func(s *Scheduler) {
		s.checks = true
	}
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}
