// SPDX-License-Identifier: MIT

package ga

import (
	"context"
	"time"

	"github.com/katalvlaran/tourga/distance"
)

// Result summarizes a finished run.
type Result struct {
	RunID       string        `json:"runId"`
	Perm        []int         `json:"perm"`
	Length      float64       `json:"length"`
	Generations int           `json:"generations"`
	Evaluations int           `json:"evaluations"`
	Duration    time.Duration `json:"duration"`
	Reason      Reason        `json:"reason"`
}

// Solve runs a complete optimization synchronously, back to back, ignoring
// cfg.GenerationInterval. Cancelling ctx stops the run at the next
// generation boundary; the partial result is returned with ReasonStopped and
// a nil error.
func Solve(ctx context.Context, cfg Config, cities []distance.City, opts ...Option) (Result, error) {
	s := NewScheduler(opts...)
	if err := s.Start(cfg, cities); err != nil {
		return Result{}, err
	}
	Driver{Scheduler: s}.runUnpaced(ctx)
	return s.Snapshot().Result(), nil
}

// Result summarizes the snapshot of a run.
func (snap Snapshot) Result() Result {
	res := Result{
		RunID:       snap.RunID,
		Perm:        snap.BestPerm,
		Length:      snap.BestLength,
		Generations: snap.Generation,
		Evaluations: snap.Evaluations,
		Reason:      snap.Reason,
	}
	if !snap.FinishedAt.IsZero() {
		res.Duration = snap.FinishedAt.Sub(snap.StartedAt)
	}
	return res
}
