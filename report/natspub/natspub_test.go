package natspub_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/ga"
	"github.com/katalvlaran/tourga/report/natspub"
	"github.com/stretchr/testify/require"
)

type message struct {
	subject string
	data    []byte
}

type fakeConn struct {
	mu   sync.Mutex
	msgs []message
	err  error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, message{subject, append([]byte(nil), data...)})
	return nil
}

func square() []distance.City {
	return []distance.City{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func cfg(gens int) ga.Config {
	c := ga.DefaultConfig()
	c.PopulationSize = 10
	c.MaxGenerations = gens
	c.GenerationInterval = 0
	return c
}

// TestPublisher_Subjects checks subjects and JSON payloads of a full run.
func TestPublisher_Subjects(t *testing.T) {
	conn := &fakeConn{}
	pub := natspub.New(conn)

	_, err := ga.Solve(context.Background(), cfg(4), square(),
		ga.WithReporter(pub), ga.WithIDFunc(func() string { return "r1" }))
	require.NoError(t, err)

	require.Len(t, conn.msgs, 5)
	for _, m := range conn.msgs[:4] {
		require.Equal(t, "tourga.r1.progress", m.subject)
	}
	last := conn.msgs[4]
	require.Equal(t, "tourga.r1.termination", last.subject)

	var term ga.Termination
	require.NoError(t, json.Unmarshal(last.data, &term))
	require.Equal(t, "r1", term.RunID)
	require.Equal(t, ga.ReasonMaxGenerations, term.Reason)
	require.Equal(t, 4, term.Generation)
	require.Len(t, term.BestPerm, 4)

	var prog ga.Progress
	require.NoError(t, json.Unmarshal(conn.msgs[0].data, &prog))
	require.Equal(t, 1, prog.Generation)
	require.Zero(t, pub.Failed())
}

// TestPublisher_Prefix uses a custom first token.
func TestPublisher_Prefix(t *testing.T) {
	pub := natspub.New(&fakeConn{}, natspub.WithPrefix("lab"))
	require.Equal(t, "lab.x.progress", pub.ProgressSubject("x"))
	require.Equal(t, "lab.x.termination", pub.TerminationSubject("x"))
}

// TestPublisher_ErrorsAreSwallowed keeps the run going when NATS fails.
func TestPublisher_ErrorsAreSwallowed(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	pub := natspub.New(conn)

	res, err := ga.Solve(context.Background(), cfg(3), square(), ga.WithReporter(pub))
	require.NoError(t, err)
	require.Equal(t, ga.ReasonMaxGenerations, res.Reason)
	require.Equal(t, 4, pub.Failed())
}

// TestConnect_Unreachable wraps ErrConnect.
func TestConnect_Unreachable(t *testing.T) {
	_, err := natspub.Connect("nats://127.0.0.1:1", 2, time.Millisecond)
	require.ErrorIs(t, err, natspub.ErrConnect)
}

func TestNew_PanicsOnNil(t *testing.T) {
	require.Panics(t, func() { natspub.New(nil) })
	require.Panics(t, func() { natspub.WithPrefix("") })
	require.Panics(t, func() { natspub.WithLogger(nil) })
}
