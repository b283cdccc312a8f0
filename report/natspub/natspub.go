// SPDX-License-Identifier: MIT

// Package natspub publishes run events to NATS as JSON.
//
// Subjects are "<prefix>.<runID>.progress" and "<prefix>.<runID>.termination"
// with the default prefix "tourga", so a subscriber can follow one run or use
// "tourga.*.termination" for all of them.
package natspub

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/tourga/ga"
	"github.com/nats-io/nats.go"
)

// DefaultPrefix is the first subject token.
const DefaultPrefix = "tourga"

// ErrConnect is returned by Connect once all attempts fail.
var ErrConnect = errors.New("natspub: cannot connect")

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

var _ Conn = (*nats.Conn)(nil)

// Publisher is a ga.Reporter that forwards events to NATS. Publish errors
// are logged and counted; they never reach the scheduler. One Publisher may
// serve many concurrent runs.
type Publisher struct {
	conn   Conn
	prefix string
	log    *slog.Logger
	failed atomic.Int64
}

// Option customizes a Publisher.
type Option func(*Publisher)

// WithPrefix replaces DefaultPrefix.
func WithPrefix(p string) Option {
	if p == "" {
		panic("natspub: WithPrefix(\"\")")
	}
	return func(pub *Publisher) { pub.prefix = p }
}

// WithLogger reports publish failures to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("natspub: WithLogger(nil)")
	}
	return func(pub *Publisher) { pub.log = l }
}

// New returns a Publisher writing to conn.
func New(conn Conn, opts ...Option) *Publisher {
	if conn == nil {
		panic("natspub: New(nil)")
	}
	p := &Publisher{conn: conn, prefix: DefaultPrefix, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProgressSubject is the subject progress events of runID are published on.
func (p *Publisher) ProgressSubject(runID string) string {
	return p.prefix + "." + runID + ".progress"
}

// TerminationSubject is the subject the termination of runID is published on.
func (p *Publisher) TerminationSubject(runID string) string {
	return p.prefix + "." + runID + ".termination"
}

// OnProgress implements ga.Reporter.
func (p *Publisher) OnProgress(e ga.Progress) {
	p.publish(p.ProgressSubject(e.RunID), e)
}

// OnTermination implements ga.Reporter.
func (p *Publisher) OnTermination(e ga.Termination) {
	p.publish(p.TerminationSubject(e.RunID), e)
}

// Failed reports how many events could not be published.
func (p *Publisher) Failed() int { return int(p.failed.Load()) }

func (p *Publisher) publish(subject string, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		err = p.conn.Publish(subject, data)
	}
	if err != nil {
		p.failed.Add(1)
		p.log.Warn("publish failed", slog.String("subject", subject), slog.Any("error", err))
	}
}

// Connect dials url, retrying up to attempts times with wait in between.
// The returned connection reconnects on its own after the first success.
func Connect(url string, attempts int, wait time.Duration) (*nats.Conn, error) {
	if attempts < 1 {
		attempts = 1
	}
	var (
		nc  *nats.Conn
		err error
	)
	for i := 0; i < attempts; i++ {
		nc, err = nats.Connect(url, nats.Name("tourga"), nats.MaxReconnects(-1))
		if err == nil {
			return nc, nil
		}
		if i+1 < attempts {
			time.Sleep(wait)
		}
	}
	return nil, fmt.Errorf("%w %s: %w", ErrConnect, url, err)
}
