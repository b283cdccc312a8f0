package ga_test

import (
	"context"
	"testing"
	"time"

	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/ga"
	"github.com/katalvlaran/tourga/tour"
	"github.com/stretchr/testify/require"
)

// TestStart_OneCity fails with ErrInvalidInput and stays Idle.
func TestStart_OneCity(t *testing.T) {
	s := ga.NewScheduler()
	err := s.Start(ga.DefaultConfig(), []distance.City{{X: 1, Y: 2}})
	require.ErrorIs(t, err, ga.ErrInvalidInput)
	require.ErrorIs(t, err, distance.ErrTooFewCities)
	require.Equal(t, ga.Idle, s.State())
}

// TestStart_BadMutationRate fails with ErrInvalidConfig.
func TestStart_BadMutationRate(t *testing.T) {
	cfg := ga.DefaultConfig()
	cfg.MutationRate = 1.5

	s := ga.NewScheduler()
	require.ErrorIs(t, s.Start(cfg, unitSquare()), ga.ErrInvalidConfig)
	require.Equal(t, ga.Idle, s.State())
}

// TestStart_FailureKeepsPreviousRun leaves an active run untouched.
func TestStart_FailureKeepsPreviousRun(t *testing.T) {
	s := ga.NewScheduler()
	require.NoError(t, s.Start(smallConfig(10, 5), unitSquare()))
	before := s.Snapshot()

	require.Error(t, s.Start(smallConfig(10, 5), nil))
	after := s.Snapshot()
	require.Equal(t, before.RunID, after.RunID)
	require.Equal(t, ga.Running, after.State)
}

// TestScheduler_UnitSquareConverges reaches the optimum 4.
func TestScheduler_UnitSquareConverges(t *testing.T) {
	rec := &recorder{}
	res, err := ga.Solve(context.Background(), smallConfig(20, 50), unitSquare(),
		ga.WithReporter(rec), ga.WithInvariantChecks())
	require.NoError(t, err)
	require.InDelta(t, 4.0, res.Length, 1e-9)
	require.Equal(t, ga.ReasonMaxGenerations, res.Reason)
	require.Equal(t, 50, res.Generations)
	require.Equal(t, 20*51, res.Evaluations)
	require.NoError(t, tour.ValidatePermutation(res.Perm, 4))
}

// TestScheduler_TwoCities always yields exactly 6 for every member.
func TestScheduler_TwoCities(t *testing.T) {
	rec := &recorder{}
	cities := []distance.City{{X: 0, Y: 0}, {X: 3, Y: 0}}
	res, err := ga.Solve(context.Background(), smallConfig(8, 20), cities,
		ga.WithReporter(rec), ga.WithInvariantChecks())
	require.NoError(t, err)
	require.Equal(t, 6.0, res.Length)

	progress, _, _ := rec.snapshot()
	require.Len(t, progress, 20)
	for _, p := range progress {
		require.Equal(t, 6.0, p.BestLength)
		require.Equal(t, 6.0, p.Stats.Best)
		require.Equal(t, 6.0, p.Stats.Worst)
	}
}

// TestScheduler_FullRun checks event sequencing and that the tracked best
// never increases from one generation to the next.
func TestScheduler_FullRun(t *testing.T) {
	rec := &recorder{}
	s := ga.NewScheduler(ga.WithReporter(rec), ga.WithInvariantChecks())
	require.NoError(t, s.Start(smallConfig(60, 80), circle(25, 100)))
	initial := s.Snapshot().BestLength

	for s.Tick() == ga.Running {
	}
	require.Equal(t, ga.Completed, s.State())

	progress, terms, order := rec.snapshot()
	require.Len(t, progress, 80)
	require.Len(t, terms, 1)
	require.Equal(t, "termination", order[len(order)-1])

	prev := initial
	for i, p := range progress {
		require.Equal(t, i+1, p.Generation)
		require.LessOrEqual(t, p.BestLength, prev, "generation %d regressed", p.Generation)
		require.LessOrEqual(t, p.BestLength, p.Stats.Best)
		require.NoError(t, tour.ValidatePermutation(p.BestPerm, 25))
		prev = p.BestLength
	}

	term := terms[0]
	require.Equal(t, ga.ReasonMaxGenerations, term.Reason)
	require.Equal(t, 80, term.Generation)
	require.Equal(t, prev, term.BestLength)
	require.Less(t, term.BestLength, initial)

	// Further ticks are inert.
	require.Equal(t, ga.Completed, s.Tick())
	progress, _, _ = rec.snapshot()
	require.Len(t, progress, 80)
}

// TestScheduler_StopMidRun reports "stopped" and nothing after it.
func TestScheduler_StopMidRun(t *testing.T) {
	rec := &recorder{}
	s := ga.NewScheduler(ga.WithReporter(rec))
	require.NoError(t, s.Start(smallConfig(30, 1000), circle(12, 10)))

	for i := 0; i < 3; i++ {
		require.Equal(t, ga.Running, s.Tick())
	}
	s.Stop()
	require.Equal(t, ga.Stopped, s.Tick())
	require.Equal(t, ga.Stopped, s.Tick())
	require.Equal(t, ga.Stopped, s.Tick())

	progress, terms, order := rec.snapshot()
	require.Len(t, progress, 3)
	require.Len(t, terms, 1)
	require.Equal(t, ga.ReasonStopped, terms[0].Reason)
	require.NotEqual(t, ga.ReasonMaxGenerations, terms[0].Reason)
	require.Equal(t, 3, terms[0].Generation)
	require.Equal(t, []string{"progress", "progress", "progress", "termination"}, order)

	snap := s.Snapshot()
	require.Equal(t, ga.Stopped, snap.State)
	require.Equal(t, ga.ReasonStopped, snap.Reason)
}

// TestScheduler_StopWhenIdle is harmless and does not leak into the next run.
func TestScheduler_StopWhenIdle(t *testing.T) {
	s := ga.NewScheduler()
	s.Stop()
	require.Equal(t, ga.Idle, s.Tick())

	require.NoError(t, s.Start(smallConfig(10, 3), unitSquare()))
	require.Equal(t, ga.Running, s.Tick())
}

// TestScheduler_Clear resets to Idle from every state.
func TestScheduler_Clear(t *testing.T) {
	rec := &recorder{}
	s := ga.NewScheduler(ga.WithReporter(rec))

	s.Clear()
	require.Equal(t, ga.Idle, s.State())

	require.NoError(t, s.Start(smallConfig(10, 100), unitSquare()))
	s.Tick()
	s.Clear()
	require.Equal(t, ga.Idle, s.State())
	require.Equal(t, ga.Idle, s.Tick())
	require.Equal(t, ga.Snapshot{State: ga.Idle}, s.Snapshot())
	_, ok := s.Config()
	require.False(t, ok)

	require.NoError(t, s.Start(smallConfig(10, 1), unitSquare()))
	require.Equal(t, ga.Completed, s.Tick())
	s.Clear()
	require.Equal(t, ga.Idle, s.State())

	_, terms, _ := rec.snapshot()
	require.Len(t, terms, 1, "clear emits no termination")
}

// TestScheduler_Deterministic: same seed, same tour.
func TestScheduler_Deterministic(t *testing.T) {
	cities := circle(20, 50)
	a, err := ga.Solve(context.Background(), smallConfig(40, 30), cities)
	require.NoError(t, err)
	b, err := ga.Solve(context.Background(), smallConfig(40, 30), cities)
	require.NoError(t, err)
	require.Equal(t, a.Perm, b.Perm)
	require.Equal(t, a.Length, b.Length)
	require.NotEqual(t, a.RunID, b.RunID)
}

// TestScheduler_SnapshotIsCopy guards against aliasing internal buffers.
func TestScheduler_SnapshotIsCopy(t *testing.T) {
	cities := unitSquare()
	s := ga.NewScheduler(ga.WithIDFunc(func() string { return "run-1" }))
	require.NoError(t, s.Start(smallConfig(10, 5), cities))

	cities[0].X = 100
	snap := s.Snapshot()
	require.Equal(t, "run-1", snap.RunID)
	require.Equal(t, 0.0, snap.Cities[0].X, "Start copies the cities")

	snap.BestPerm[0] = -1
	snap.Cities[1].Y = -1
	again := s.Snapshot()
	require.NotEqual(t, -1, again.BestPerm[0])
	require.Equal(t, 0.0, again.Cities[1].Y)
}

// TestScheduler_LargeTournament accepts k ≥ population size.
func TestScheduler_LargeTournament(t *testing.T) {
	cfg := smallConfig(4, 10)
	cfg.TournamentSize = 50
	res, err := ga.Solve(context.Background(), cfg, circle(8, 3), ga.WithInvariantChecks())
	require.NoError(t, err)
	require.NoError(t, tour.ValidatePermutation(res.Perm, 8))
}

// TestOptions_PanicOnNil mirrors the option-constructor contract.
func TestOptions_PanicOnNil(t *testing.T) {
	require.Panics(t, func() { ga.WithReporter(nil) })
	require.Panics(t, func() { ga.WithLogger(nil) })
	require.Panics(t, func() { ga.WithRand(nil) })
	require.Panics(t, func() { ga.WithIDFunc(nil) })
}

// TestWithRand_OverridesSeed uses the supplied stream instead of Config.Seed.
func TestWithRand_OverridesSeed(t *testing.T) {
	cities := circle(15, 20)
	a, err := ga.Solve(context.Background(), smallConfig(20, 10), cities, ga.WithRand(tour.NewRNG(99)))
	require.NoError(t, err)
	b, err := ga.Solve(context.Background(), smallConfig(20, 10), cities, ga.WithRand(tour.NewRNG(99)))
	require.NoError(t, err)
	require.Equal(t, a.Perm, b.Perm)
}

// TestWithRand_RestartWhileDriven restarts a scheduler with a shared stream
// while a driver goroutine is still ticking it.
func TestWithRand_RestartWhileDriven(t *testing.T) {
	s := ga.NewScheduler(ga.WithRand(tour.NewRNG(4)))
	cfg := smallConfig(30, 1_000_000)
	require.NoError(t, s.Start(cfg, circle(20, 10)))

	done := make(chan ga.State, 1)
	go func() { done <- ga.Driver{Scheduler: s}.Run(context.Background()) }()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Start(cfg, circle(20, 10)))
		require.Equal(t, ga.Running, s.State())
	}
	s.Stop()

	select {
	case st := <-done:
		require.Equal(t, ga.Stopped, st)
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop")
	}
}
