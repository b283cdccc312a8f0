// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/tourga/ga"
)

// Meta is the run context a termination event does not carry.
type Meta struct {
	Label  string
	Config ga.Config
	Cities int
}

// RunRecorder is a ga.Reporter that saves each run when it terminates.
// Progress events are ignored.
type RunRecorder struct {
	store   *Store
	meta    Meta
	log     *slog.Logger
	timeout time.Duration

	mu  sync.Mutex
	err error
}

// Recorder returns a reporter persisting terminations of runs described by
// meta into st. Save failures are logged to log (nil discards) and kept for
// Err.
func Recorder(st *Store, meta Meta, log *slog.Logger) *RunRecorder {
	if st == nil {
		panic("store: Recorder(nil)")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RunRecorder{store: st, meta: meta, log: log, timeout: 5 * time.Second}
}

// OnProgress implements ga.Reporter.
func (r *RunRecorder) OnProgress(ga.Progress) {}

// OnTermination implements ga.Reporter.
func (r *RunRecorder) OnTermination(t ga.Termination) {
	finished := time.Now().UTC()
	rec := Record{
		ID:          t.RunID,
		Label:       r.meta.Label,
		Reason:      t.Reason,
		Generations: t.Generation,
		Evaluations: t.Evaluations,
		BestLength:  t.BestLength,
		BestPerm:    t.BestPerm,
		Cities:      r.meta.Cities,
		Config:      r.meta.Config,
		StartedAt:   finished.Add(-t.Elapsed),
		FinishedAt:  finished,
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	err := r.store.Save(ctx, rec)

	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	if err != nil {
		r.log.Error("save run", slog.String("run_id", t.RunID), slog.Any("error", err))
	}
}

// Err returns the error of the most recent save, if any.
func (r *RunRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
