package ui

import "github.com/gdamore/tcell/v2"

// Palette defines the Nord-inspired colors of panels, cards and sliders.
var Palette = struct {
	Border      tcell.Color // Muted blue-gray for borders
	BorderHover tcell.Color // Brighter blue for the hovered panel
	CardBG      tcell.Color // Dark gray background
	Title       tcell.Color // Bright white for titles
	TitleAccent tcell.Color // Blue accent for decoration
	Label       tcell.Color // Light gray for labels
	Hint        tcell.Color // Dim gray for hints
	Selected    tcell.Color // Bright blue for filled slider cells
	Unselected  tcell.Color // Dim gray for empty slider cells
	Error       tcell.Color // Red for the unavailable card
}{
	Border:      tcell.PaletteColor(60),
	BorderHover: tcell.PaletteColor(109),
	CardBG:      tcell.PaletteColor(236),
	Title:       tcell.PaletteColor(255),
	TitleAccent: tcell.PaletteColor(109),
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	Selected:    tcell.PaletteColor(109),
	Unselected:  tcell.PaletteColor(245),
	Error:       tcell.PaletteColor(167),
}
