// SPDX-License-Identifier: MIT

package report

import "github.com/katalvlaran/tourga/ga"

// Nop discards every event.
type Nop struct{}

func (Nop) OnProgress(ga.Progress)       {}
func (Nop) OnTermination(ga.Termination) {}

// Func adapts two plain functions to ga.Reporter. Either may be nil.
type Func struct {
	Progress    func(ga.Progress)
	Termination func(ga.Termination)
}

// OnProgress implements ga.Reporter.
func (f Func) OnProgress(p ga.Progress) {
	if f.Progress != nil {
		f.Progress(p)
	}
}

// OnTermination implements ga.Reporter.
func (f Func) OnTermination(t ga.Termination) {
	if f.Termination != nil {
		f.Termination(t)
	}
}

type multi []ga.Reporter

// Multi fans every event out to rs in order. Nil entries are skipped.
func Multi(rs ...ga.Reporter) ga.Reporter {
	out := make(multi, 0, len(rs))
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) OnProgress(p ga.Progress) {
	for _, r := range m {
		r.OnProgress(p)
	}
}

func (m multi) OnTermination(t ga.Termination) {
	for _, r := range m {
		r.OnTermination(t)
	}
}
