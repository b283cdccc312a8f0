// SPDX-License-Identifier: MIT

package report

import (
	"sync/atomic"

	"github.com/katalvlaran/tourga/ga"
	"golang.org/x/time/rate"
)

// Throttled forwards progress events only while its limiter has tokens.
type Throttled struct {
	next    ga.Reporter
	limiter *rate.Limiter
	dropped atomic.Int64
}

// Throttle wraps next so that progress events beyond limiter's rate are
// dropped. Terminations are always forwarded.
func Throttle(next ga.Reporter, limiter *rate.Limiter) *Throttled {
	if next == nil || limiter == nil {
		panic("report: Throttle with nil argument")
	}
	return &Throttled{next: next, limiter: limiter}
}

// OnProgress implements ga.Reporter.
func (t *Throttled) OnProgress(p ga.Progress) {
	if !t.limiter.Allow() {
		t.dropped.Add(1)
		return
	}
	t.next.OnProgress(p)
}

// OnTermination implements ga.Reporter.
func (t *Throttled) OnTermination(e ga.Termination) {
	t.next.OnTermination(e)
}

// Dropped reports how many progress events were discarded so far. Safe to
// call while the run is being driven.
func (t *Throttled) Dropped() int { return int(t.dropped.Load()) }
