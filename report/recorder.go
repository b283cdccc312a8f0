// SPDX-License-Identifier: MIT

package report

import (
	"sync"

	"github.com/katalvlaran/tourga/ga"
)

// Recorder keeps every event in memory. Safe for concurrent use.
type Recorder struct {
	mu           sync.Mutex
	progress     []ga.Progress
	terminations []ga.Termination
}

// OnProgress implements ga.Reporter.
func (r *Recorder) OnProgress(p ga.Progress) {
	r.mu.Lock()
	r.progress = append(r.progress, p)
	r.mu.Unlock()
}

// OnTermination implements ga.Reporter.
func (r *Recorder) OnTermination(t ga.Termination) {
	r.mu.Lock()
	r.terminations = append(r.terminations, t)
	r.mu.Unlock()
}

// Progress returns a copy of the progress events seen so far.
func (r *Recorder) Progress() []ga.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ga.Progress(nil), r.progress...)
}

// Terminations returns a copy of the termination events seen so far.
func (r *Recorder) Terminations() []ga.Termination {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ga.Termination(nil), r.terminations...)
}

// BestCurve returns the tracked best length per generation, in order.
func (r *Recorder) BestCurve() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.progress))
	for i, p := range r.progress {
		out[i] = p.BestLength
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.progress, r.terminations = nil, nil
	r.mu.Unlock()
}
