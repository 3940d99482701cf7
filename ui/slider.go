package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// DepthSlider is a horizontal slider for a search depth.
type DepthSlider struct {
	label    string
	min      int
	max      int
	value    int
	active   bool
	onChange func(int)

	// Columns of the arrows at the last draw.
	leftX, rightX, row int
}

// NewDepthSlider creates a slider over [min, max].
func NewDepthSlider(label string, min, max, initial int, onChange func(int)) *DepthSlider {
	return &DepthSlider{
		label:    label,
		min:      min,
		max:      max,
		value:    initial,
		onChange: onChange,
		leftX:    -1,
		rightX:   -1,
		row:      -1,
	}
}

// SetActive highlights the slider.
func (s *DepthSlider) SetActive(active bool) {
	s.active = active
}

// Step moves the value by delta and passes it to onChange. Moving past an end is a no-op.
func (s *DepthSlider) Step(delta int) {
	v := s.value + delta
	if v < s.min || v > s.max {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s.value)
	}
}

// Click steps the slider when (x, y) is on one of its arrows. Returns true if handled.
func (s *DepthSlider) Click(x, y int) bool {
	if y != s.row {
		return false
	}
	switch x {
	case s.leftX:
		s.Step(-1)
		return true
	case s.rightX:
		s.Step(1)
		return true
	}
	return false
}

// Draw renders the slider component.
// Returns the number of rows used.
func (s *DepthSlider) Draw(screen tcell.Screen, x, y, width int) int {
	labelStyle := tcell.StyleDefault.Foreground(Palette.Label)
	accentStyle := tcell.StyleDefault.Foreground(Palette.TitleAccent)
	selectedStyle := tcell.StyleDefault.Foreground(Palette.Selected)
	unselectedStyle := tcell.StyleDefault.Foreground(Palette.Unselected)

	col := x
	s.row = y

	// Label with diamond prefix: ◈ Depth
	screen.SetContent(col, y, '◈', nil, accentStyle)
	col += 2
	for _, ch := range s.label {
		screen.SetContent(col, y, ch, nil, labelStyle)
		col++
	}
	col++

	arrowStyle := unselectedStyle
	if s.active {
		arrowStyle = selectedStyle
	}
	s.leftX = col
	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2

	barWidth := s.max - s.min + 1
	filled := s.value - s.min + 1
	for i := 0; i < barWidth; i++ {
		char := '░'
		style := unselectedStyle
		if i < filled {
			char = '█'
			style = selectedStyle
		}
		screen.SetContent(col, y, char, nil, style)
		col++
	}
	col++

	for _, ch := range fmt.Sprintf("%d", s.value) {
		screen.SetContent(col, y, ch, nil, labelStyle)
		col++
	}
	col++

	s.rightX = col
	screen.SetContent(col, y, '▶', nil, arrowStyle)

	return 1
}

// Value returns the current slider value.
func (s *DepthSlider) Value() int {
	return s.value
}

// SetValue shows v without notifying onChange; it follows the published snapshot.
func (s *DepthSlider) SetValue(v int) {
	if v >= s.min && v <= s.max {
		s.value = v
	}
}
