package session

import "flickboard/types"

// Selector is the selection state machine. It never talks to the engine: clicks that
// complete a move return the action for the caller to dispatch, and the selection is
// already cleared when they do.
type Selector struct {
	sel types.Selection
}

// Selection returns the current selection.
func (s *Selector) Selection() types.Selection {
	return s.sel
}

// Clear drops any selection.
func (s *Selector) Clear() {
	s.sel = types.NoSelection
}

// ClickHand toggles player p's hand. An empty hand cannot be selected.
func (s *Selector) ClickHand(p types.Piece, hands types.HandCounts) {
	if !p.IsPlayer() {
		return
	}
	if s.sel.IsHand(p) {
		s.Clear()
		return
	}
	if hands.Of(p) <= 0 {
		return
	}
	s.sel = types.HandSelection(p)
}

// ClickCell handles a click on a board cell. Occupied cells toggle a cell selection;
// an empty cell completes a Put when a hand is selected and is ignored otherwise.
func (s *Selector) ClickCell(index int, board types.BoardState, hands types.HandCounts) (types.Action, bool) {
	if !types.ValidIndex(index) {
		return types.Action{}, false
	}
	if board[index] != types.Empty {
		if s.sel.IsCell(index) {
			s.Clear()
		} else {
			s.sel = types.CellSelection(index)
		}
		return types.Action{}, false
	}

	if s.sel.Kind != types.SelectHand {
		return types.Action{}, false
	}
	a, ok := NewPut(board, hands, index, s.sel.Player)
	if !ok {
		// The hand ran out underneath the selection.
		if hands.Of(s.sel.Player) <= 0 {
			s.Clear()
		}
		return types.Action{}, false
	}
	s.Clear()
	return a, true
}

// Flick handles a flick gesture made on cell index. It only completes when that cell is
// the selected one.
func (s *Selector) Flick(index int, d types.Direction, board types.BoardState) (types.Action, bool) {
	if !s.sel.IsCell(index) {
		return types.Action{}, false
	}
	a, ok := NewFlick(board, index, d)
	if !ok {
		return types.Action{}, false
	}
	s.Clear()
	return a, true
}
