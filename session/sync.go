package session

import (
	"fmt"

	"flickboard/engine"
	"flickboard/types"
)

// State is the board and hands as last read from the engine.
type State struct {
	Board types.BoardState
	Hands types.HandCounts
}

// Pull reads a fresh State from eng. Nothing downstream reads the engine directly; they
// all read the last State pulled here.
func Pull(eng engine.Engine) (State, error) {
	var st State
	board, err := eng.Board()
	if err != nil {
		return st, fmt.Errorf("read board: %w", err)
	}
	st.Board = board
	for _, p := range types.Players {
		n, err := eng.HandCount(p)
		if err != nil {
			return st, fmt.Errorf("read %s hand: %w", p, err)
		}
		st.Hands.Set(p, n)
	}
	return st, nil
}
