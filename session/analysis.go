package session

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"flickboard/engine"
	"flickboard/types"
)

// DefaultDebounce is how long the board and depths must settle before analysis runs.
const DefaultDebounce = 10 * time.Millisecond

// DefaultDepth is the search depth each player starts with.
const DefaultDepth = 6

// Timer is a pending callback that can be canceled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Analysis holds the recommended action for each player; nil means none yet.
type Analysis struct {
	Player1 *types.Action
	Player2 *types.Action
}

// Of returns the recommendation for player p.
func (a Analysis) Of(p types.Piece) *types.Action {
	switch p {
	case types.Player1:
		return a.Player1
	case types.Player2:
		return a.Player2
	}
	return nil
}

func (a *Analysis) set(p types.Piece, act *types.Action) {
	switch p {
	case types.Player1:
		a.Player1 = act
	case types.Player2:
		a.Player2 = act
	}
}

// Depths holds the search depth of each player.
type Depths struct {
	Player1 int
	Player2 int
}

// Of returns the depth for player p.
func (d Depths) Of(p types.Piece) int {
	if p == types.Player2 {
		return d.Player2
	}
	return d.Player1
}

// Scheduler debounces analysis requests. Only the latest scheduled request may commit:
// each Schedule or Cancel moves to a new generation and a firing timer whose generation
// is no longer current is ignored.
// Scheduler is not safe for concurrent use; the Controller serializes access.
type Scheduler struct {
	clock  Clock
	delay  time.Duration
	depths Depths
	log    zerolog.Logger

	gen   uint64
	timer Timer
}

// NewScheduler creates a scheduler with the given debounce delay and starting depths.
func NewScheduler(clock Clock, delay time.Duration, depths Depths, log zerolog.Logger) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	return &Scheduler{
		clock: clock,
		delay: delay,
		depths: Depths{
			Player1: types.ClampDepth(depths.Player1),
			Player2: types.ClampDepth(depths.Player2),
		},
		log: log.With().Str("component", "analysis").Logger(),
	}
}

// Depths returns the current depths.
func (s *Scheduler) Depths() Depths {
	return s.depths
}

// SetDepth stores p's depth, clamped to the valid range. It returns true if it changed.
func (s *Scheduler) SetDepth(p types.Piece, depth int) bool {
	depth = types.ClampDepth(depth)
	switch p {
	case types.Player1:
		if s.depths.Player1 == depth {
			return false
		}
		s.depths.Player1 = depth
	case types.Player2:
		if s.depths.Player2 == depth {
			return false
		}
		s.depths.Player2 = depth
	default:
		return false
	}
	return true
}

// Schedule replaces any pending request with a new one; fire receives the generation to
// check with Current.
func (s *Scheduler) Schedule(fire func(gen uint64)) {
	s.Cancel()
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() {
		fire(gen)
	})
	s.log.Debug().Uint64("gen", gen).Dur("delay", s.delay).Msg("analysis scheduled")
}

// Cancel drops the pending request, if any.
func (s *Scheduler) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// Current reports whether gen is the latest scheduled request.
func (s *Scheduler) Current(gen uint64) bool {
	return gen == s.gen
}

// Evaluate asks eng for both players' best actions at their depths. The two searches run
// concurrently; a player with no legal action gets nil.
func Evaluate(eng engine.Engine, depths Depths) (Analysis, error) {
	var res Analysis
	var g errgroup.Group
	results := make([]*types.Action, len(types.Players))
	for i, p := range types.Players {
		i, p := i, p
		g.Go(func() error {
			a, err := eng.BestAction(p, depths.Of(p))
			if errors.Is(err, engine.ErrNoAction) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = &a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	for i, p := range types.Players {
		res.set(p, results[i])
	}
	return res, nil
}
