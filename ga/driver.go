// SPDX-License-Identifier: MIT

package ga

import (
	"context"
	"time"
)

// Ticker is the clock a Driver waits on between generations.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d (d > 0).
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the wall-clock TickerFunc backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Driver paces a Scheduler: it calls Tick once per Config.GenerationInterval
// until the run terminates. It is the only goroutine that should call Tick
// on its scheduler.
type Driver struct {
	Scheduler *Scheduler
	// NewTicker defaults to NewTimeTicker.
	NewTicker TickerFunc
}

// Run ticks the scheduler until it leaves Running and returns the final
// state. A zero interval ticks back to back. If ctx is cancelled first, Run
// requests Stop and performs one last Tick so the termination event is still
// delivered. A scheduler that is not running returns immediately.
func (d Driver) Run(ctx context.Context) State {
	s := d.Scheduler
	cfg, ok := s.Config()
	if !ok || s.State() != Running {
		return s.State()
	}

	if cfg.GenerationInterval <= 0 {
		return d.runUnpaced(ctx)
	}

	newTicker := d.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	t := newTicker(cfg.GenerationInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return s.Tick()
		case <-t.C():
			if st := s.Tick(); st != Running {
				return st
			}
		}
	}
}

func (d Driver) runUnpaced(ctx context.Context) State {
	s := d.Scheduler
	for {
		if ctx.Err() != nil {
			s.Stop()
		}
		if st := s.Tick(); st != Running {
			return st
		}
	}
}
