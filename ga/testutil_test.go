// Package ga_test holds small helpers shared by the ga test files.
package ga_test

import (
	"math"
	"sync"
	"time"

	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/ga"
)

// seedDet is the fixed seed used wherever a test needs randomness.
const seedDet = int64(7)

// unitSquare returns the four unit-square corners (optimal tour length 4).
func unitSquare() []distance.City {
	return []distance.City{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 1, Y: 0},
		{ID: "c", X: 1, Y: 1},
		{ID: "d", X: 0, Y: 1},
	}
}

// circle places n cities on a circle of radius r with a small deterministic
// ripple to avoid exact ties.
func circle(n int, r float64) []distance.City {
	out := make([]distance.City, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		rr := r * (1 + 0.02*float64((i*5)%7))
		out[i] = distance.City{X: rr * math.Cos(th), Y: rr * math.Sin(th)}
	}
	return out
}

// smallConfig is a fast configuration for scheduler tests.
func smallConfig(pop, gens int) ga.Config {
	cfg := ga.DefaultConfig()
	cfg.PopulationSize = pop
	cfg.MaxGenerations = gens
	cfg.GenerationInterval = 0
	cfg.Seed = seedDet
	return cfg
}

// recorder captures events in arrival order.
type recorder struct {
	mu           sync.Mutex
	progress     []ga.Progress
	terminations []ga.Termination
	order        []string
}

func (r *recorder) OnProgress(p ga.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, p)
	r.order = append(r.order, "progress")
}

func (r *recorder) OnTermination(t ga.Termination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminations = append(r.terminations, t)
	r.order = append(r.order, "termination")
}

func (r *recorder) snapshot() ([]ga.Progress, []ga.Termination, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ga.Progress(nil), r.progress...),
		append([]ga.Termination(nil), r.terminations...),
		append([]string(nil), r.order...)
}

// fakeTicker is a manually fed ga.Ticker.
type fakeTicker struct {
	ch      chan time.Time
	stopped bool
}

func newFakeTicker(buffer int) *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time, buffer)}
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped = true }
