package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Button is a one-line clickable label.
type Button struct {
	label   string
	onPress func()

	// Position at the last draw.
	x, y, width int
}

// NewButton creates a new button.
func NewButton(label string, onPress func()) *Button {
	return &Button{
		label:   label,
		onPress: onPress,
		y:       -1,
	}
}

// Click presses the button when (x, y) is on it. Returns true if handled.
func (b *Button) Click(x, y int) bool {
	if y != b.y || x < b.x || x >= b.x+b.width {
		return false
	}
	if b.onPress != nil {
		b.onPress()
	}
	return true
}

// Draw renders the button at the given position.
// Returns the width used.
func (b *Button) Draw(screen tcell.Screen, x, y int) int {
	b.x, b.y = x, y

	dimStyle := tcell.StyleDefault.Foreground(Palette.Label)
	bracketStyle := tcell.StyleDefault.Foreground(Palette.Border)

	screen.SetContent(x, y, '[', nil, bracketStyle)
	col := x + 1
	for _, ch := range b.label {
		screen.SetContent(col, y, ch, nil, dimStyle)
		col++
	}
	screen.SetContent(col, y, ']', nil, bracketStyle)

	b.width = col - x + 1
	return b.width
}
