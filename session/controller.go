// Package session keeps the board the user sees in step with the rule engine.
//
// The Controller turns clicks and flick gestures into engine actions, owns the engine
// instance, pulls board and hand state after every mutation and schedules debounced
// best-action analysis for both players. Every change is published as one Snapshot.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"flickboard/engine"
	"flickboard/types"
)

// Snapshot is everything the presentation layer draws, taken at one instant.
type Snapshot struct {
	Status    Status
	Err       string // load error when Status is StatusUnavailable
	Board     types.BoardState
	Hands     types.HandCounts
	MaxHand   int
	Selection types.Selection
	Analysis  Analysis
	Depths    Depths
	Hovered   types.Piece // player whose analysis panel is hovered, or Empty
	Hint      Hint
}

// Ready returns true if the board accepts input.
func (s Snapshot) Ready() bool {
	return s.Status == StatusReady
}

// Options configure a Controller.
type Options struct {
	Loader   engine.Loader
	Clock    Clock         // defaults to the wall clock
	Debounce time.Duration // analysis debounce; zero uses DefaultDebounce
	Depths   Depths        // zero values use DefaultDepth
	MaxHand  int           // hand slots to draw; zero uses types.DefaultMaxHandSize
	Logger   zerolog.Logger

	// OnUpdate receives every published snapshot. It is called with the controller
	// locked and must not call back into the controller synchronously.
	OnUpdate func(Snapshot)
}

// Controller is the interaction layer between user input and the engine. All methods
// are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	life     *Lifecycle
	sched    *Scheduler
	selector Selector
	log      zerolog.Logger
	onUpdate func(Snapshot)
	spawn    func(func())

	state    State
	analysis Analysis
	hovered  types.Piece
	maxHand  int
	stopped  bool
}

// New creates a controller. Call Start to load the engine.
func New(opts Options) *Controller {
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Depths.Player1 == 0 {
		opts.Depths.Player1 = DefaultDepth
	}
	if opts.Depths.Player2 == 0 {
		opts.Depths.Player2 = DefaultDepth
	}
	if opts.MaxHand <= 0 {
		opts.MaxHand = types.DefaultMaxHandSize
	}
	log := opts.Logger.With().Str("component", "session").Logger()
	return &Controller{
		life:     NewLifecycle(opts.Loader, opts.Logger),
		sched:    NewScheduler(opts.Clock, opts.Debounce, opts.Depths, opts.Logger),
		log:      log,
		onUpdate: opts.OnUpdate,
		spawn:    func(f func()) { go f() },
		maxHand:  opts.MaxHand,
		stopped:  true,
	}
}

// Start loads the engine module asynchronously and creates an engine instance once it is
// ready. Starting again replaces the current session.
func (c *Controller) Start() {
	c.mu.Lock()
	c.sched.Cancel()
	c.selector.Clear()
	c.hovered = types.Empty
	c.state = State{}
	c.analysis = Analysis{}
	c.stopped = false
	ctx, token := c.life.begin()
	c.publish()
	c.mu.Unlock()

	c.spawn(func() {
		c.load(ctx, token)
	})
}

func (c *Controller) load(ctx context.Context, token uint64) {
	mod, err := c.life.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.life.complete(token, mod, err); ok {
		if err := c.sync(); err != nil {
			c.life.abandon(err)
			c.publish()
		}
		return
	}
	if st, _ := c.life.Status(); st == StatusUnavailable {
		c.publish()
	}
}

// Stop disposes the engine. Nothing is published after Stop, including analysis
// that was pending and loads still in flight.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.Cancel()
	c.life.stop()
	c.selector.Clear()
	c.stopped = true
}

// Reset returns the engine to the initial position.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.Engine() == nil {
		return
	}
	c.selector.Clear()
	if err := c.life.reset(); err != nil {
		c.log.Warn().Err(err).Msg("reset failed")
	}
	c.sync()
}

// CellClick handles a click on board cell index.
func (c *Controller) CellClick(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.Engine() == nil {
		return
	}
	if a, ok := c.selector.ClickCell(index, c.state.Board, c.state.Hands); ok {
		c.dispatch(a)
		return
	}
	c.publish()
}

// FlickGesture handles a directional gesture made on board cell index.
func (c *Controller) FlickGesture(index, dx, dy int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.Engine() == nil {
		return
	}
	d, ok := DecodeVector(dx, dy)
	if !ok {
		return
	}
	if a, ok := c.selector.Flick(index, d, c.state.Board); ok {
		c.dispatch(a)
	}
}

// HandClick handles a click on player p's hand.
func (c *Controller) HandClick(p types.Piece) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.Engine() == nil {
		return
	}
	c.selector.ClickHand(p, c.state.Hands)
	c.publish()
}

// HoverAnalysis marks player p's analysis panel as hovered or no longer hovered.
// Only one panel is hovered at a time.
func (c *Controller) HoverAnalysis(p types.Piece, hovering bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case hovering && p.IsPlayer():
		c.hovered = p
	case !hovering && c.hovered == p:
		c.hovered = types.Empty
	default:
		return
	}
	c.publish()
}

// SetDepth sets player p's search depth, clamped to [1, 7], and reschedules analysis.
func (c *Controller) SetDepth(p types.Piece, depth int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sched.SetDepth(p, depth) {
		return
	}
	c.scheduleAnalysis()
	c.publish()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// dispatch applies an action. The selection has already been cleared.
func (c *Controller) dispatch(a types.Action) {
	eng := c.life.Engine()
	if err := eng.Apply(a); err != nil {
		c.log.Warn().Err(err).Stringer("action", a).Msg("engine rejected action")
	} else {
		c.log.Info().Stringer("action", a).Msg("action applied")
	}
	c.sync()
}

// sync pulls state from the engine, drops the now stale analysis and reschedules it.
func (c *Controller) sync() error {
	st, err := Pull(c.life.Engine())
	if err != nil {
		c.log.Error().Err(err).Msg("sync failed")
		return err
	}
	c.state = st
	c.analysis = Analysis{}
	c.scheduleAnalysis()
	c.publish()
	return nil
}

func (c *Controller) scheduleAnalysis() {
	if c.life.Engine() == nil {
		return
	}
	c.sched.Schedule(c.analyze)
}

// analyze runs when the debounce timer for gen fires.
func (c *Controller) analyze(gen uint64) {
	c.mu.Lock()
	eng := c.life.Engine()
	if !c.sched.Current(gen) || eng == nil {
		c.mu.Unlock()
		return
	}
	depths := c.sched.Depths()
	c.mu.Unlock()

	res, err := Evaluate(eng, depths)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sched.Current(gen) || c.life.Engine() != eng {
		c.log.Debug().Uint64("gen", gen).Msg("dropping superseded analysis")
		return
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("analysis failed")
		return
	}
	c.analysis = res
	c.log.Debug().
		Uint64("gen", gen).
		Int("depth1", depths.Player1).
		Int("depth2", depths.Player2).
		Msg("analysis committed")
	c.publish()
}

func (c *Controller) snapshot() Snapshot {
	status, err := c.life.Status()
	snap := Snapshot{
		Status:    status,
		Board:     c.state.Board,
		Hands:     c.state.Hands,
		MaxHand:   c.maxHand,
		Selection: c.selector.Selection(),
		Analysis:  c.analysis,
		Depths:    c.sched.Depths(),
		Hovered:   c.hovered,
		Hint:      ResolveHint(c.analysis.Of(c.hovered)),
	}
	if err != nil {
		snap.Err = err.Error()
	}
	return snap
}

func (c *Controller) publish() {
	if c.stopped || c.onUpdate == nil {
		return
	}
	c.onUpdate(c.snapshot())
}
