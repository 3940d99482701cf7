package session

import (
	"context"
	"sync"
	"time"

	"flickboard/engine"
	"flickboard/engine/native"
	"flickboard/types"
)

// fakeClock hands out timers that only fire when the test says so.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// pending returns the timers that are neither stopped nor fired.
func (c *fakeClock) pending() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs every pending timer, as if the debounce delay elapsed.
func (c *fakeClock) fire() {
	for _, t := range c.pending() {
		t.fired = true
		t.f()
	}
}

// fireStopped runs every timer that was stopped, as if Stop lost a race with the timer.
func (c *fakeClock) fireStopped() {
	c.mu.Lock()
	var stopped []*fakeTimer
	for _, t := range c.timers {
		if t.stopped && !t.fired {
			stopped = append(stopped, t)
		}
	}
	c.mu.Unlock()
	for _, t := range stopped {
		t.fired = true
		t.f()
	}
}

type bestCall struct {
	player types.Piece
	depth  int
}

// recordingEngine wraps the native engine and records what the controller asks of it.
type recordingEngine struct {
	engine.Engine

	mu      sync.Mutex
	applied []types.Action
	best    []bestCall
	closed  bool
}

func (e *recordingEngine) Apply(a types.Action) error {
	e.mu.Lock()
	e.applied = append(e.applied, a)
	e.mu.Unlock()
	return e.Engine.Apply(a)
}

func (e *recordingEngine) BestAction(p types.Piece, depth int) (types.Action, error) {
	e.mu.Lock()
	e.best = append(e.best, bestCall{p, depth})
	e.mu.Unlock()
	return e.Engine.BestAction(p, depth)
}

func (e *recordingEngine) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	return e.Engine.Close()
}

func (e *recordingEngine) actions() []types.Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]types.Action(nil), e.applied...)
}

func (e *recordingEngine) bestCalls() []bestCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]bestCall(nil), e.best...)
}

func (e *recordingEngine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// fakeModule creates recording engines and remembers them.
type fakeModule struct {
	maxHand int

	mu      sync.Mutex
	engines []*recordingEngine
	closed  bool
}

func (m *fakeModule) New() (engine.Engine, error) {
	inner, err := native.Module{MaxHandSize: m.maxHand}.New()
	if err != nil {
		return nil, err
	}
	e := &recordingEngine{Engine: inner}
	m.mu.Lock()
	m.engines = append(m.engines, e)
	m.mu.Unlock()
	return e, nil
}

func (m *fakeModule) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *fakeModule) created() []*recordingEngine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*recordingEngine(nil), m.engines...)
}

func (m *fakeModule) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// moduleLoader returns a loader that hands out mod immediately.
func moduleLoader(mod engine.Module) engine.Loader {
	return engine.LoaderFunc(func(ctx context.Context) (engine.Module, error) {
		return mod, nil
	})
}

// gatedLoader blocks until release is closed, then hands out mod.
func gatedLoader(mod engine.Module, release <-chan struct{}) engine.Loader {
	return engine.LoaderFunc(func(ctx context.Context) (engine.Module, error) {
		<-release
		return mod, nil
	})
}

// updates records every published snapshot.
type updates struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (u *updates) record(s Snapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.snaps = append(u.snaps, s)
}

func (u *updates) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.snaps)
}

func (u *updates) last() Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.snaps) == 0 {
		return Snapshot{}
	}
	return u.snaps[len(u.snaps)-1]
}
