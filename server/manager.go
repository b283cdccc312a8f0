// SPDX-License-Identifier: MIT

// Package server hosts many concurrent optimization runs behind an HTTP API.
// Each run owns a ga.Scheduler paced by its own ga.Driver goroutine; events
// fan out to an optional websocket hub, NATS publisher and run history.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/ga"
	"github.com/katalvlaran/tourga/report"
	"github.com/katalvlaran/tourga/report/natspub"
	"github.com/katalvlaran/tourga/report/wshub"
	"github.com/katalvlaran/tourga/store"
	"golang.org/x/time/rate"
)

var (
	// ErrRunNotFound is returned for an unknown run ID.
	ErrRunNotFound = errors.New("server: run not found")
	// ErrTooManyRuns is returned when MaxRuns runs are already running.
	ErrTooManyRuns = errors.New("server: too many active runs")
	// ErrTooManyCities is returned for instances above the MaxCities bound.
	ErrTooManyCities = errors.New("server: too many cities")
)

const (
	defaultMaxRuns      = 16
	defaultMaxCities    = 2000
	defaultProgressRate = 20
)

type run struct {
	sched  *ga.Scheduler
	label  string
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager owns the live runs.
type Manager struct {
	mu    sync.RWMutex
	runs  map[string]*run
	order []string // creation order
	wg    sync.WaitGroup

	base   context.Context
	cancel context.CancelFunc

	defaults     ga.Config
	maxRuns      int
	maxCities    int
	progressRate float64
	hub          *wshub.Hub
	pub          *natspub.Publisher
	store        *store.Store
	log          *slog.Logger
	newTicker    ga.TickerFunc
}

// Option customizes a Manager.
type Option func(*Manager)

// WithDefaults sets the GA configuration used when a request carries none.
func WithDefaults(cfg ga.Config) Option {
	return func(m *Manager) { m.defaults = cfg }
}

// WithMaxRuns bounds the number of simultaneously running runs.
func WithMaxRuns(n int) Option {
	if n < 1 {
		panic("server: WithMaxRuns < 1")
	}
	return func(m *Manager) { m.maxRuns = n }
}

// WithMaxCities bounds the instance size of a single run. The distance
// matrix grows as n², so this caps per-run memory.
func WithMaxCities(n int) Option {
	if n < 2 {
		panic("server: WithMaxCities < 2")
	}
	return func(m *Manager) { m.maxCities = n }
}

// WithProgressRate limits progress events per second per run forwarded to
// the hub and the publisher. Terminations are never limited.
func WithProgressRate(perSecond float64) Option {
	if perSecond <= 0 {
		panic("server: WithProgressRate <= 0")
	}
	return func(m *Manager) { m.progressRate = perSecond }
}

// WithHub streams events to websocket clients.
func WithHub(h *wshub.Hub) Option {
	if h == nil {
		panic("server: WithHub(nil)")
	}
	return func(m *Manager) { m.hub = h }
}

// WithPublisher forwards events to NATS.
func WithPublisher(p *natspub.Publisher) Option {
	if p == nil {
		panic("server: WithPublisher(nil)")
	}
	return func(m *Manager) { m.pub = p }
}

// WithStore records every finished run.
func WithStore(st *store.Store) Option {
	if st == nil {
		panic("server: WithStore(nil)")
	}
	return func(m *Manager) { m.store = st }
}

// WithLogger sets the logger for the manager and its schedulers.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("server: WithLogger(nil)")
	}
	return func(m *Manager) { m.log = l }
}

// WithTicker replaces the wall-clock ticker of every driver.
func WithTicker(fn ga.TickerFunc) Option {
	if fn == nil {
		panic("server: WithTicker(nil)")
	}
	return func(m *Manager) { m.newTicker = fn }
}

// NewManager returns an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		runs:         make(map[string]*run),
		defaults:     ga.DefaultConfig(),
		maxRuns:      defaultMaxRuns,
		maxCities:    defaultMaxCities,
		progressRate: defaultProgressRate,
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.base, m.cancel = context.WithCancel(context.Background())
	return m
}

// Defaults returns the configuration applied to requests without one.
func (m *Manager) Defaults() ga.Config { return m.defaults }

// Create starts a new run over cities and returns its initial snapshot.
// A nil cfg uses the manager defaults.
//
// The matrix and the initial population are built without holding the
// manager lock; the run limit is checked again before the run is installed.
func (m *Manager) Create(label string, cfg *ga.Config, cities []distance.City) (ga.Snapshot, error) {
	c := m.defaults
	if cfg != nil {
		c = *cfg
	}
	if len(cities) > m.maxCities {
		return ga.Snapshot{}, fmt.Errorf("%w: %d > %d", ErrTooManyCities, len(cities), m.maxCities)
	}

	m.mu.RLock()
	full := m.activeLocked() >= m.maxRuns
	m.mu.RUnlock()
	if full {
		return ga.Snapshot{}, fmt.Errorf("%w (limit %d)", ErrTooManyRuns, m.maxRuns)
	}

	sched := ga.NewScheduler(
		ga.WithReporter(m.reporter(label, c, len(cities))),
		ga.WithLogger(m.log),
	)
	if err := sched.Start(c, cities); err != nil {
		return ga.Snapshot{}, err
	}
	snap := sched.Snapshot()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.base.Err(); err != nil {
		sched.Clear()
		return ga.Snapshot{}, err
	}
	if m.activeLocked() >= m.maxRuns {
		sched.Clear()
		return ga.Snapshot{}, fmt.Errorf("%w (limit %d)", ErrTooManyRuns, m.maxRuns)
	}

	ctx, cancel := context.WithCancel(m.base)
	r := &run{sched: sched, label: label, cancel: cancel, done: make(chan struct{})}
	m.runs[snap.RunID] = r
	m.order = append(m.order, snap.RunID)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(r.done)
		ga.Driver{Scheduler: sched, NewTicker: m.newTicker}.Run(ctx)
	}()
	return snap, nil
}

// reporter assembles the per-run event fan-out.
func (m *Manager) reporter(label string, cfg ga.Config, cities int) ga.Reporter {
	var streams []ga.Reporter
	if m.hub != nil {
		streams = append(streams, m.hub)
	}
	if m.pub != nil {
		streams = append(streams, m.pub)
	}

	var out []ga.Reporter
	if len(streams) > 0 {
		limiter := rate.NewLimiter(rate.Limit(m.progressRate), 1)
		out = append(out, report.Throttle(report.Multi(streams...), limiter))
	}
	if m.store != nil {
		out = append(out, store.Recorder(m.store, store.Meta{Label: label, Config: cfg, Cities: cities}, m.log))
	}
	return report.Multi(out...)
}

func (m *Manager) activeLocked() int {
	n := 0
	for _, r := range m.runs {
		if r.sched.State() == ga.Running {
			n++
		}
	}
	return n
}

// Get returns the snapshot of a live run.
func (m *Manager) Get(id string) (ga.Snapshot, error) {
	m.mu.RLock()
	r, ok := m.runs[id]
	m.mu.RUnlock()
	if !ok {
		return ga.Snapshot{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r.sched.Snapshot(), nil
}

// List returns snapshots of all live runs in creation order.
func (m *Manager) List() []ga.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ga.Snapshot, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.runs[id].sched.Snapshot())
	}
	return out
}

// Stop requests cooperative cancellation of a run. The run keeps its state
// until deleted.
func (m *Manager) Stop(id string) error {
	m.mu.RLock()
	r, ok := m.runs[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	r.sched.Stop()
	return nil
}

// Wait blocks until the run's driver returned or ctx is done.
func (m *Manager) Wait(ctx context.Context, id string) (ga.Snapshot, error) {
	m.mu.RLock()
	r, ok := m.runs[id]
	m.mu.RUnlock()
	if !ok {
		return ga.Snapshot{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	select {
	case <-r.done:
		return r.sched.Snapshot(), nil
	case <-ctx.Done():
		return ga.Snapshot{}, ctx.Err()
	}
}

// Delete stops a run if needed, waits for its driver and forgets it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	r, ok := m.runs[id]
	if ok {
		delete(m.runs, id)
		for i, v := range m.order {
			if v == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	r.cancel()
	<-r.done
	r.sched.Clear()
	m.log.Info("run deleted", slog.String("run_id", id))
	return nil
}

// Shutdown cancels every run and waits for all drivers, or for ctx.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.cancel()
	m.mu.Unlock()
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
