package session

import "flickboard/types"

// DecodeVector turns a raw directional input into one of the 8 flick vectors by taking
// the sign of each component. The zero vector is rejected.
func DecodeVector(dx, dy int) (types.Direction, bool) {
	d := types.Direction{DX: sign(dx), DY: sign(dy)}
	return d, d.IsUnit()
}

// DecodeDrag turns a pointer drag (in screen cells or pixels, y growing downward) into a
// flick vector. Drags within ~22.5° of an axis snap to that axis.
func DecodeDrag(dx, dy int) (types.Direction, bool) {
	ax, ay := abs(dx), abs(dy)
	switch {
	case ax == 0 && ay == 0:
		return types.Direction{}, false
	case ay*12 <= ax*5:
		return types.Direction{DX: sign(dx)}, true
	case ax*12 <= ay*5:
		return types.Direction{DY: sign(dy)}, true
	}
	return types.Direction{DX: sign(dx), DY: sign(dy)}, true
}

// flickKeys maps vi-style letters and numpad digits to flick vectors.
var flickKeys = map[rune]types.Direction{
	'y': {DX: -1, DY: -1}, 'k': {DX: 0, DY: -1}, 'u': {DX: 1, DY: -1},
	'h': {DX: -1, DY: 0}, 'l': {DX: 1, DY: 0},
	'b': {DX: -1, DY: 1}, 'j': {DX: 0, DY: 1}, 'n': {DX: 1, DY: 1},
	'7': {DX: -1, DY: -1}, '8': {DX: 0, DY: -1}, '9': {DX: 1, DY: -1},
	'4': {DX: -1, DY: 0}, '6': {DX: 1, DY: 0},
	'1': {DX: -1, DY: 1}, '2': {DX: 0, DY: 1}, '3': {DX: 1, DY: 1},
}

// DecodeKey maps a key to a flick vector.
func DecodeKey(r rune) (types.Direction, bool) {
	d, ok := flickKeys[r]
	return d, ok
}

// PadDirection maps a slot of the 3x3 flick pad drawn around a selected cell (0 top left,
// 8 bottom right) to its vector. The centre slot is inert.
func PadDirection(slot int) (types.Direction, bool) {
	if slot < 0 || slot > 8 {
		return types.Direction{}, false
	}
	return DecodeVector(slot%3-1, slot/3-1)
}

// NewPut builds a Put of player p on index. It refuses occupied cells and empty hands.
func NewPut(board types.BoardState, hands types.HandCounts, index int, p types.Piece) (types.Action, bool) {
	a := types.Put(index, p)
	if !a.Valid() || !board.IsEmpty(index) || hands.Of(p) <= 0 {
		return types.Action{}, false
	}
	return a, true
}

// NewFlick builds a Flick of the piece on index. It refuses empty cells and non-unit vectors.
func NewFlick(board types.BoardState, index int, d types.Direction) (types.Action, bool) {
	a := types.Flick(index, d)
	if !a.Valid() || board[index] == types.Empty {
		return types.Action{}, false
	}
	return a, true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
