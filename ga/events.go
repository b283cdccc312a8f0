// SPDX-License-Identifier: MIT

package ga

import "time"

// Reason explains why a run terminated.
type Reason string

const (
	// ReasonMaxGenerations: the generation index reached Config.MaxGenerations.
	ReasonMaxGenerations Reason = "maxGenerationsReached"
	// ReasonStopped: Stop was requested (or the driving context was cancelled).
	ReasonStopped Reason = "stopped"
)

// Progress is emitted once per completed generation.
type Progress struct {
	RunID      string          `json:"runId"`
	Generation int             `json:"generation"`
	BestPerm   []int           `json:"bestPerm"`
	BestLength float64         `json:"bestLength"`
	Stats      PopulationStats `json:"stats"`
}

// Termination is emitted exactly once per run, after which no Progress
// follows for that run.
type Termination struct {
	RunID       string        `json:"runId"`
	Reason      Reason        `json:"reason"`
	Generation  int           `json:"generation"`
	BestPerm    []int         `json:"bestPerm"`
	BestLength  float64       `json:"bestLength"`
	Evaluations int           `json:"evaluations"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Reporter receives run events synchronously from the goroutine calling
// Tick, while the scheduler holds its lock. Implementations must return
// quickly and must not call back into the Scheduler. Event slices are
// private copies and may be retained.
type Reporter interface {
	OnProgress(Progress)
	OnTermination(Termination)
}

type nopReporter struct{}

func (nopReporter) OnProgress(Progress)       {}
func (nopReporter) OnTermination(Termination) {}
