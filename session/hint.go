package session

import "flickboard/types"

// HintKind is the overlay drawn for a hovered recommendation.
type HintKind uint8

const (
	HintNone HintKind = iota
	// HintPiece previews a piece being put on Index.
	HintPiece
	// HintArrow shows the flick direction on Index.
	HintArrow
)

// Hint is the overlay for one board cell.
type Hint struct {
	Kind  HintKind
	Index int
	Piece types.Piece
	Dir   types.Direction
	Arrow rune
}

// ResolveHint maps a recommended action (nil for none) to its overlay. A flick with the
// zero vector has no arrow and therefore no overlay.
func ResolveHint(a *types.Action) Hint {
	if a == nil || !types.ValidIndex(a.Index) {
		return Hint{}
	}
	switch a.Kind {
	case types.ActionPut:
		if !a.Value.IsPlayer() {
			return Hint{}
		}
		return Hint{Kind: HintPiece, Index: a.Index, Piece: a.Value}
	case types.ActionFlick:
		d := a.Direction()
		arrow := d.Arrow()
		if arrow == 0 {
			return Hint{}
		}
		return Hint{Kind: HintArrow, Index: a.Index, Dir: d, Arrow: arrow}
	}
	return Hint{}
}

// At returns true if the hint draws on the cell at index.
func (h Hint) At(index int) bool {
	return h.Kind != HintNone && h.Index == index
}
