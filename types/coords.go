package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell notation:
// - Columns: a-e (left to right)
// - Rows: 1-5 (from the bottom of the board)
// - Example: a5 is index 0 (top left), c3 is index 12 (center), e1 is index 24
//
// Board coordinates:
// - X: 0-4 (left to right)
// - Y: 0-4 (top to bottom)

// CellIndex converts board coordinates to a cell index.
func CellIndex(x, y int) int {
	return y*BoardWidth + x
}

// CellXY converts a cell index to board coordinates.
func CellXY(index int) (x, y int) {
	return index % BoardWidth, index / BoardWidth
}

// ValidIndex reports whether index addresses a board cell.
func ValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

// InBounds reports whether (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardWidth
}

// CellName converts a cell index to notation, e.g. 12 -> "c3".
func CellName(index int) string {
	if !ValidIndex(index) {
		return "??"
	}
	x, y := CellXY(index)
	return fmt.Sprintf("%c%d", 'a'+rune(x), BoardWidth-y)
}

// ParseCell converts notation such as "c3" or "C3" back to a cell index.
func ParseCell(name string) (int, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if len(name) != 2 {
		return 0, fmt.Errorf("invalid cell: %q", name)
	}
	x := int(name[0] - 'a')
	row, err := strconv.Atoi(name[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid row in cell: %q", name)
	}
	y := BoardWidth - row
	if !InBounds(x, y) {
		return 0, fmt.Errorf("cell out of bounds: %q", name)
	}
	return CellIndex(x, y), nil
}

// Direction is a flick vector with each component in {-1, 0, 1}.
type Direction struct {
	DX int
	DY int
}

// Directions lists the 8 valid flick vectors, row by row from the top left.
var Directions = [8]Direction{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// IsUnit reports whether d is one of the 8 valid flick vectors.
func (d Direction) IsUnit() bool {
	if d.DX == 0 && d.DY == 0 {
		return false
	}
	return d.DX >= -1 && d.DX <= 1 && d.DY >= -1 && d.DY <= 1
}

// Arrow returns the glyph pointing along d, or 0 for the zero or an invalid vector.
func (d Direction) Arrow() rune {
	switch d {
	case Direction{-1, -1}:
		return '↖'
	case Direction{0, -1}:
		return '↑'
	case Direction{1, -1}:
		return '↗'
	case Direction{-1, 0}:
		return '←'
	case Direction{1, 0}:
		return '→'
	case Direction{-1, 1}:
		return '↙'
	case Direction{0, 1}:
		return '↓'
	case Direction{1, 1}:
		return '↘'
	}
	return 0
}
