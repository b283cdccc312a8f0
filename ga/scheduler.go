// SPDX-License-Identifier: MIT

package ga

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/tour"
)

// RunState is everything one run owns. It is created by Start, mutated only
// inside Tick, and dropped by Clear or the next Start.
type RunState struct {
	ID          string
	State       State
	Reason      Reason
	Config      Config
	Cities      []distance.City
	Matrix      *distance.Matrix
	Population  Population
	Generation  int
	Best        BestTracker
	Evaluations int
	StartedAt   time.Time
	FinishedAt  time.Time

	rng *rand.Rand
}

// Snapshot is a consistent, caller-owned view of a scheduler.
type Snapshot struct {
	RunID       string          `json:"runId"`
	State       State           `json:"state"`
	Reason      Reason          `json:"reason,omitempty"`
	Generation  int             `json:"generation"`
	BestPerm    []int           `json:"bestPerm"`
	BestLength  float64         `json:"bestLength"`
	Evaluations int             `json:"evaluations"`
	Config      Config          `json:"config"`
	Cities      []distance.City `json:"cities"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  time.Time       `json:"finishedAt"`
}

// Scheduler drives one run at a time through its generations.
//
// Tick holds the scheduler lock for a whole generation, so observers never
// see a partially built population. Stop only flips an atomic flag and never
// waits for a generation in progress.
type Scheduler struct {
	mu   sync.Mutex
	run  *RunState // nil while Idle
	stop atomic.Bool

	reporter Reporter
	logger   *slog.Logger
	rng      *rand.Rand
	newID    func() string
	checks   bool
}

// NewScheduler returns an Idle scheduler configured by opts.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		reporter: nopReporter{},
		logger:   slog.New(slog.DiscardHandler),
		newID:    NewRunID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates cfg and cities, builds the distance matrix and the initial
// population, records the initial best and moves to Running. Any previous
// run is discarded without a termination event. On error the scheduler is
// left exactly as it was.
//
// Complexity: O(n² + PopulationSize·n).
func (s *Scheduler) Start(cfg Config, cities []distance.City) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m, err := distance.Build(cities)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	shared := s.rng != nil
	rng := s.rng
	if !shared {
		rng = tour.NewRNG(cfg.Seed)
	}

	own := make([]distance.City, len(cities))
	copy(own, cities)

	rs := &RunState{
		ID:        s.newID(),
		State:     Running,
		Config:    cfg,
		Cities:    own,
		Matrix:    m,
		StartedAt: time.Now(),
		rng:       rng,
	}
	seed := func() {
		rs.Population = InitPopulation(cfg.PopulationSize, m, rng)
		rs.Evaluations = cfg.PopulationSize
		rs.Best.Observe(rs.Population.Best(), 0)
	}

	// A WithRand generator is also drawn by Tick, so it is only touched
	// under s.mu. A per-run generator is private until the run is installed.
	if shared {
		s.mu.Lock()
		seed()
	} else {
		seed()
		s.mu.Lock()
	}
	s.run = rs
	s.stop.Store(false)
	initial := rs.Best.Length()
	s.mu.Unlock()

	s.logger.Info("run started",
		slog.String("run_id", rs.ID),
		slog.Int("cities", m.N()),
		slog.Int("population", cfg.PopulationSize),
		slog.Int("max_generations", cfg.MaxGenerations),
		slog.Float64("initial_best", initial),
	)
	return nil
}

// Tick advances the run by one generation and returns the resulting state.
//
// Order of work:
//  1. Not running ⇒ no-op.
//  2. Stop requested ⇒ Stopped, termination event, no population work.
//  3. Breed a complete next population, install it, bump the generation,
//     let the tracker observe its best, emit progress.
//  4. Generation == MaxGenerations ⇒ Completed, termination event.
//
// Complexity: O(PopulationSize·(TournamentSize + n)).
func (s *Scheduler) Tick() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.run
	if rs == nil {
		return Idle
	}
	if rs.State != Running {
		return rs.State
	}
	if s.stop.Load() {
		s.finish(rs, Stopped, ReasonStopped)
		return rs.State
	}

	next := s.breed(rs)
	rs.Population = next
	rs.Generation++
	rs.Evaluations += next.Size()
	rs.Best.Observe(next.Best(), rs.Generation)

	best, _ := rs.Best.Best()
	s.reporter.OnProgress(Progress{
		RunID:      rs.ID,
		Generation: rs.Generation,
		BestPerm:   best.Perm,
		BestLength: best.Length,
		Stats:      next.Stats(),
	})

	if rs.Generation >= rs.Config.MaxGenerations {
		s.finish(rs, Completed, ReasonMaxGenerations)
	}
	return rs.State
}

// breed builds the next population without touching the current one.
func (s *Scheduler) breed(rs *RunState) Population {
	var (
		cfg   = rs.Config
		rng   = rs.rng
		n     = rs.Matrix.N()
		next  = Population{Tours: make([]tour.Tour, cfg.PopulationSize)}
		p1    tour.Tour
		p2    tour.Tour
		child []int
		i     int
	)
	for i = 0; i < cfg.PopulationSize; i++ {
		p1 = Select(rs.Population, cfg.TournamentSize, rng)
		p2 = Select(rs.Population, cfg.TournamentSize, rng)
		child = Crossover(p1.Perm, p2.Perm, rng)
		mutateSwap(child, cfg.MutationRate, rng)

		if s.checks {
			if err := tour.ValidatePermutation(child, n); err != nil {
				panic(fmt.Sprintf("ga: corrupted child in generation %d: %v", rs.Generation+1, err))
			}
		}
		next.Tours[i] = tour.Evaluate(rs.Matrix, child)
	}
	return next
}

// finish moves rs into a terminal state and emits the termination event.
// Caller holds s.mu.
func (s *Scheduler) finish(rs *RunState, st State, reason Reason) {
	rs.State = st
	rs.Reason = reason
	rs.FinishedAt = time.Now()

	best, _ := rs.Best.Best()
	elapsed := rs.FinishedAt.Sub(rs.StartedAt)
	s.reporter.OnTermination(Termination{
		RunID:       rs.ID,
		Reason:      reason,
		Generation:  rs.Generation,
		BestPerm:    best.Perm,
		BestLength:  best.Length,
		Evaluations: rs.Evaluations,
		Elapsed:     elapsed,
	})
	s.logger.Info("run finished",
		slog.String("run_id", rs.ID),
		slog.String("reason", string(reason)),
		slog.Int("generation", rs.Generation),
		slog.Float64("best", best.Length),
		slog.Duration("elapsed", elapsed),
	)
}

// Stop requests cooperative cancellation. It takes effect at the top of the
// next Tick; a generation already in progress completes normally. Calling it
// when no run is active has no visible effect.
func (s *Scheduler) Stop() {
	s.stop.Store(true)
}

// Clear discards all run state and returns to Idle from any state. No
// termination event is emitted for a run cleared while running.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	s.run = nil
	s.stop.Store(false)
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return Idle
	}
	return s.run.State
}

// Config returns the active run's configuration and whether a run exists.
func (s *Scheduler) Config() (Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return Config{}, false
	}
	return s.run.Config, true
}

// Snapshot returns a consistent copy of the run's observable state. It waits
// for a generation in progress to be installed.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.run
	if rs == nil {
		return Snapshot{State: Idle}
	}
	best, _ := rs.Best.Best()
	cities := make([]distance.City, len(rs.Cities))
	copy(cities, rs.Cities)

	return Snapshot{
		RunID:       rs.ID,
		State:       rs.State,
		Reason:      rs.Reason,
		Generation:  rs.Generation,
		BestPerm:    best.Perm,
		BestLength:  best.Length,
		Evaluations: rs.Evaluations,
		Config:      rs.Config,
		Cities:      cities,
		StartedAt:   rs.StartedAt,
		FinishedAt:  rs.FinishedAt,
	}
}
