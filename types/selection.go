package types

// SelectionKind tells which variant a Selection holds.
type SelectionKind uint8

const (
	SelectNone SelectionKind = iota
	SelectHand
	SelectCell
)

// Selection is what the user currently has armed: nothing, a player's hand or a board cell.
type Selection struct {
	Kind   SelectionKind
	Player Piece // set for SelectHand
	Index  int   // set for SelectCell
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// HandSelection arms player p's hand for placement.
func HandSelection(p Piece) Selection {
	return Selection{Kind: SelectHand, Player: p}
}

// CellSelection arms the cell at index for a flick.
func CellSelection(index int) Selection {
	return Selection{Kind: SelectCell, Index: index}
}

// IsNone returns true if nothing is selected.
func (s Selection) IsNone() bool {
	return s.Kind == SelectNone
}

// IsHand returns true if player p's hand is selected.
func (s Selection) IsHand(p Piece) bool {
	return s.Kind == SelectHand && s.Player == p
}

// IsCell returns true if the cell at index is selected.
func (s Selection) IsCell(index int) bool {
	return s.Kind == SelectCell && s.Index == index
}

// SelectedCell returns the selected cell index, or -1.
func (s Selection) SelectedCell() int {
	if s.Kind != SelectCell {
		return -1
	}
	return s.Index
}

func (s Selection) String() string {
	switch s.Kind {
	case SelectHand:
		return "Hand(" + s.Player.String() + ")"
	case SelectCell:
		return "Cell(" + CellName(s.Index) + ")"
	}
	return "None"
}
