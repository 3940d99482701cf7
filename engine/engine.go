// Package engine defines the interface of the rule engine the board talks to.
package engine

import (
	"context"
	"errors"

	"flickboard/types"
)

var (
	// ErrDisposed is returned by every call on an engine that has been closed.
	ErrDisposed = errors.New("engine disposed")
	// ErrNoAction is returned by BestAction when the player has no legal action.
	ErrNoAction = errors.New("no legal actions available")
	// ErrUnavailable wraps a module that failed to load.
	ErrUnavailable = errors.New("engine unavailable")
)

// Engine is one live rule-engine instance. The board never validates rules itself.
// Implementations must allow BestAction to run concurrently with the other methods.
type Engine interface {
	// Reset returns the game to the initial position.
	Reset() error

	// Board returns a snapshot of the 25 cells.
	Board() (types.BoardState, error)

	// HandCount returns how many pieces player p still holds.
	HandCount(p types.Piece) (int, error)

	// Apply plays an action. Illegal actions are rejected or ignored by the engine.
	Apply(a types.Action) error

	// BestAction returns the action the engine recommends for p at the given search depth.
	// Returns ErrNoAction if p has nothing to play.
	BestAction(p types.Piece, depth int) (types.Action, error)

	// Close releases the instance. Further calls return ErrDisposed.
	Close() error
}

// Module is a loaded engine module that can create instances.
type Module interface {
	New() (Engine, error)
}

// Loader performs the one-time, possibly slow, module initialization.
type Loader interface {
	Load(ctx context.Context) (Module, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (Module, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (Module, error) {
	return f(ctx)
}

// Config holds configuration for loading an engine module.
type Config struct {
	Kind        string   // "native" or "process"
	Path        string   // Path to the engine binary for "process"
	Args        []string // Extra arguments for the engine binary
	MaxHandSize int      // Pieces per player
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() Config {
	return Config{
		Kind:        "native",
		Path:        "flickengine",
		MaxHandSize: types.DefaultMaxHandSize,
	}
}
