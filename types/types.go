// Package types contains shared data structures for flickboard.
package types

const (
	// BoardWidth is the number of cells per row and per column.
	BoardWidth = 5
	// BoardSize is the number of cells on the board.
	BoardSize = BoardWidth * BoardWidth
	// DefaultMaxHandSize is the number of pieces each player starts with in hand.
	DefaultMaxHandSize = 5

	MinDepth = 1
	MaxDepth = 7
)

// Piece is the occupant of a board cell, and also names the owner of a hand.
type Piece uint8

const (
	Empty Piece = iota
	Player1
	Player2
)

// Players lists both players in turn order.
var Players = [2]Piece{Player1, Player2}

// IsPlayer returns true for Player1 and Player2.
func (p Piece) IsPlayer() bool {
	return p == Player1 || p == Player2
}

func (p Piece) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	}
	return "Empty"
}

// BoardState is a snapshot of the 25 board cells, indexed as row*5+col.
// It is an array so every copy is a fresh snapshot.
type BoardState [BoardSize]Piece

// At returns the piece at column x, row y.
func (b BoardState) At(x, y int) Piece {
	return b[CellIndex(x, y)]
}

// IsEmpty returns true if the cell at index is empty. Out-of-range indices are never empty.
func (b BoardState) IsEmpty(index int) bool {
	if !ValidIndex(index) {
		return false
	}
	return b[index] == Empty
}

// Count returns how many cells hold the given piece.
func (b BoardState) Count(p Piece) int {
	n := 0
	for _, c := range b {
		if c == p {
			n++
		}
	}
	return n
}

// HandCounts holds the number of pieces left in each player's hand.
type HandCounts struct {
	Player1 int `json:"p1"`
	Player2 int `json:"p2"`
}

// Of returns the hand count of player p, or 0 for Empty.
func (h HandCounts) Of(p Piece) int {
	switch p {
	case Player1:
		return h.Player1
	case Player2:
		return h.Player2
	}
	return 0
}

// Set stores the hand count of player p.
func (h *HandCounts) Set(p Piece, n int) {
	switch p {
	case Player1:
		h.Player1 = n
	case Player2:
		h.Player2 = n
	}
}

// ClampDepth limits a search depth to [MinDepth, MaxDepth].
func ClampDepth(d int) int {
	if d < MinDepth {
		return MinDepth
	}
	if d > MaxDepth {
		return MaxDepth
	}
	return d
}
