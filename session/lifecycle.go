package session

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"flickboard/engine"
)

// Status is the availability of the engine.
type Status uint8

const (
	StatusLoading Status = iota
	StatusReady
	StatusUnavailable
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusUnavailable:
		return "unavailable"
	}
	return "stopped"
}

// Lifecycle owns the engine module and the one live engine instance of a session.
//
// Every begin and stop moves to a new token; a load that completes with an older token
// belongs to a superseded session and is released without being published.
// Lifecycle is not safe for concurrent use; the Controller serializes access.
type Lifecycle struct {
	loader engine.Loader
	log    zerolog.Logger

	token   uint64
	active  bool
	session uuid.UUID
	cancel  context.CancelFunc

	status Status
	err    error
	mod    engine.Module
	eng    engine.Engine
}

// NewLifecycle creates a stopped lifecycle.
func NewLifecycle(loader engine.Loader, log zerolog.Logger) *Lifecycle {
	return &Lifecycle{
		loader: loader,
		log:    log.With().Str("component", "lifecycle").Logger(),
		status: StatusStopped,
	}
}

// begin starts a new session, tearing down the previous one. It returns the context and
// token the asynchronous load must use.
func (l *Lifecycle) begin() (context.Context, uint64) {
	l.release()
	ctx, cancel := context.WithCancel(context.Background())
	l.token++
	l.active = true
	l.cancel = cancel
	l.session = uuid.New()
	l.status = StatusLoading
	l.err = nil
	l.log.Info().Str("session", l.session.String()).Msg("loading engine module")
	return ctx, l.token
}

// load runs the loader. It is the only part of the lifecycle that runs outside the
// Controller's lock.
func (l *Lifecycle) load(ctx context.Context) (engine.Module, error) {
	return l.loader.Load(ctx)
}

// complete finishes the load started with token. It returns the new engine when it was
// created and published, and false when the result was stale or loading failed.
func (l *Lifecycle) complete(token uint64, mod engine.Module, err error) (engine.Engine, bool) {
	log := l.log.With().Str("session", l.session.String()).Logger()
	if token != l.token || !l.active {
		log.Debug().Uint64("token", token).Msg("discarding stale engine load")
		releaseModule(mod)
		return nil, false
	}
	if err != nil {
		l.fail(err)
		return nil, false
	}

	eng, err := mod.New()
	if err != nil {
		releaseModule(mod)
		l.fail(err)
		return nil, false
	}
	l.mod, l.eng = mod, eng
	l.status = StatusReady
	log.Info().Msg("engine ready")
	return eng, true
}

// abandon releases an engine that was created but cannot be read, and marks the
// session unavailable.
func (l *Lifecycle) abandon(err error) {
	l.release()
	l.fail(err)
}

func (l *Lifecycle) fail(err error) {
	l.status = StatusUnavailable
	l.err = fmt.Errorf("%w: %v", engine.ErrUnavailable, err)
	l.active = false
	l.log.Error().Err(err).Str("session", l.session.String()).Msg("engine unavailable")
}

// stop ends the session and releases the engine. It is safe before the load completes.
func (l *Lifecycle) stop() {
	l.release()
	l.token++
	l.active = false
	l.status = StatusStopped
}

func (l *Lifecycle) release() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.eng != nil {
		if err := l.eng.Close(); err != nil {
			l.log.Warn().Err(err).Msg("dispose engine")
		} else {
			l.log.Info().Str("session", l.session.String()).Msg("engine disposed")
		}
		l.eng = nil
	}
	releaseModule(l.mod)
	l.mod = nil
}

// reset returns the live engine to the initial position.
func (l *Lifecycle) reset() error {
	if l.eng == nil {
		return engine.ErrDisposed
	}
	return l.eng.Reset()
}

// Engine returns the live engine, or nil.
func (l *Lifecycle) Engine() engine.Engine {
	return l.eng
}

// Status returns the engine status and, when unavailable, the load error.
func (l *Lifecycle) Status() (Status, error) {
	return l.status, l.err
}

// releaseModule closes modules that hold resources, such as an engine process.
func releaseModule(mod engine.Module) {
	if c, ok := mod.(io.Closer); ok {
		c.Close()
	}
}
