// SPDX-License-Identifier: MIT

package report

import (
	"log/slog"

	"github.com/katalvlaran/tourga/ga"
)

// LogReporter writes run events as structured log lines.
type LogReporter struct {
	log   *slog.Logger
	every int
}

// Logger returns a reporter that logs every n-th generation at Info and
// every termination. n < 1 is treated as 1.
func Logger(l *slog.Logger, n int) *LogReporter {
	if l == nil {
		panic("report: Logger(nil)")
	}
	if n < 1 {
		n = 1
	}
	return &LogReporter{log: l, every: n}
}

// OnProgress implements ga.Reporter.
func (r *LogReporter) OnProgress(p ga.Progress) {
	if p.Generation%r.every != 0 {
		return
	}
	r.log.Info("generation",
		slog.String("run_id", p.RunID),
		slog.Int("generation", p.Generation),
		slog.Float64("best", p.BestLength),
		slog.Float64("mean", p.Stats.Mean),
		slog.Float64("std", p.Stats.StdDev),
	)
}

// OnTermination implements ga.Reporter.
func (r *LogReporter) OnTermination(t ga.Termination) {
	r.log.Info("terminated",
		slog.String("run_id", t.RunID),
		slog.String("reason", string(t.Reason)),
		slog.Int("generation", t.Generation),
		slog.Float64("best", t.BestLength),
		slog.Int("evaluations", t.Evaluations),
		slog.Duration("elapsed", t.Elapsed),
	)
}
