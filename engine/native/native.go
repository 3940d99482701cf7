// Package native is an in-process implementation of the rule engine.
//
// Rules:
//   - Put places a piece from the player's hand on an empty cell.
//   - Flick pushes the piece on a cell toward one of its 8 neighbours. The moving piece
//     slides one cell at a time into empty cells until the wall; when it runs into another
//     piece the push carries on through that piece.
//   - A player's hand holds MaxHandSize minus the player's pieces on the board.
//
// BestAction returns the first legal action; the search depth is validated but no search
// is performed.
package native

import (
	"context"
	"fmt"
	"sync"

	"flickboard/engine"
	"flickboard/types"
)

// Module creates native engines.
type Module struct {
	MaxHandSize int
}

// New creates an engine at the initial position.
func (m Module) New() (engine.Engine, error) {
	maxHand := m.MaxHandSize
	if maxHand <= 0 {
		maxHand = types.DefaultMaxHandSize
	}
	return &Engine{maxHand: maxHand}, nil
}

// NewLoader returns a loader for the native module. Loading never blocks.
func NewLoader(maxHandSize int) engine.Loader {
	return engine.LoaderFunc(func(ctx context.Context) (engine.Module, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Module{MaxHandSize: maxHandSize}, nil
	})
}

// Engine implements engine.Engine in memory.
type Engine struct {
	mu      sync.RWMutex
	board   types.BoardState
	maxHand int
	closed  bool
}

// Reset clears the board.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return engine.ErrDisposed
	}
	e.board = types.BoardState{}
	return nil
}

// Board returns a copy of the board.
func (e *Engine) Board() (types.BoardState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return types.BoardState{}, engine.ErrDisposed
	}
	return e.board, nil
}

// HandCount returns the pieces player p has not placed yet.
func (e *Engine) HandCount(p types.Piece) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return 0, engine.ErrDisposed
	}
	if !p.IsPlayer() {
		return 0, fmt.Errorf("invalid player %d", p)
	}
	return e.handCount(p), nil
}

func (e *Engine) handCount(p types.Piece) int {
	n := e.maxHand - e.board.Count(p)
	if n < 0 {
		return 0
	}
	return n
}

// Apply plays a Put or a Flick.
func (e *Engine) Apply(a types.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return engine.ErrDisposed
	}
	if !types.ValidIndex(a.Index) {
		return fmt.Errorf("index %d out of bounds", a.Index)
	}

	switch a.Kind {
	case types.ActionPut:
		if !a.Value.IsPlayer() {
			return fmt.Errorf("cannot put %s", a.Value)
		}
		if e.board[a.Index] != types.Empty {
			return fmt.Errorf("cell %s is occupied", types.CellName(a.Index))
		}
		if e.handCount(a.Value) == 0 {
			return fmt.Errorf("%s has no pieces in hand", a.Value)
		}
		e.board[a.Index] = a.Value
	case types.ActionFlick:
		if e.board[a.Index] == types.Empty {
			return fmt.Errorf("cannot flick from empty cell %s", types.CellName(a.Index))
		}
		d := a.Direction()
		if !d.IsUnit() {
			return fmt.Errorf("invalid flick direction (%d,%d)", d.DX, d.DY)
		}
		e.flick(a.Index, d)
	default:
		return fmt.Errorf("unknown action kind %d", a.Kind)
	}
	return nil
}

func (e *Engine) flick(index int, d types.Direction) {
	cx, cy := types.CellXY(index)
	for {
		nx, ny := cx+d.DX, cy+d.DY
		if !types.InBounds(nx, ny) {
			return
		}
		cur, next := types.CellIndex(cx, cy), types.CellIndex(nx, ny)
		if e.board[next] == types.Empty {
			e.board[cur], e.board[next] = e.board[next], e.board[cur]
		}
		cx, cy = nx, ny
	}
}

// BestAction returns the first legal action for p.
func (e *Engine) BestAction(p types.Piece, depth int) (types.Action, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return types.Action{}, engine.ErrDisposed
	}
	if !p.IsPlayer() {
		return types.Action{}, fmt.Errorf("invalid player %d", p)
	}
	if depth < types.MinDepth || depth > types.MaxDepth {
		return types.Action{}, fmt.Errorf("depth %d out of range [%d,%d]", depth, types.MinDepth, types.MaxDepth)
	}
	actions := e.legalActions(p)
	if len(actions) == 0 {
		return types.Action{}, engine.ErrNoAction
	}
	return actions[0], nil
}

// legalActions lists every legal action for p, puts first.
func (e *Engine) legalActions(p types.Piece) []types.Action {
	var actions []types.Action

	// A put is legal on an empty cell with no 8-neighbour of the same player.
	if e.handCount(p) > 0 {
		for i, cell := range e.board {
			if cell != types.Empty || e.hasNeighbour(i, p) {
				continue
			}
			actions = append(actions, types.Put(i, p))
		}
	}

	// A flick is legal for an own piece whose first step lands on an empty cell.
	for i, cell := range e.board {
		if cell != p {
			continue
		}
		x, y := types.CellXY(i)
		for _, d := range types.Directions {
			nx, ny := x+d.DX, y+d.DY
			if types.InBounds(nx, ny) && e.board[types.CellIndex(nx, ny)] == types.Empty {
				actions = append(actions, types.Flick(i, d))
			}
		}
	}
	return actions
}

func (e *Engine) hasNeighbour(index int, p types.Piece) bool {
	x, y := types.CellXY(index)
	for _, d := range types.Directions {
		nx, ny := x+d.DX, y+d.DY
		if types.InBounds(nx, ny) && e.board[types.CellIndex(nx, ny)] == p {
			return true
		}
	}
	return false
}

// Close disposes the engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return engine.ErrDisposed
	}
	e.closed = true
	return nil
}
