package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// NoticeCard is a non-interactive card with rounded borders, a title and a message.
// It covers the board while the engine loads or after it failed to load.
type NoticeCard struct {
	*tview.Box
	title  string
	lines  []string
	accent tcell.Color
}

// NewNoticeCard creates a card with the given title.
func NewNoticeCard(title string, accent tcell.Color) *NoticeCard {
	return &NoticeCard{
		Box:    tview.NewBox(),
		title:  title,
		accent: accent,
	}
}

// SetMessage replaces the message lines.
func (c *NoticeCard) SetMessage(lines ...string) {
	c.lines = lines
}

// Draw renders the card centered in its rect.
func (c *NoticeCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	ox, oy, ow, oh := c.GetInnerRect()
	width := 44
	for _, l := range c.lines {
		if n := len([]rune(l)) + 6; n > width {
			width = n
		}
	}
	if width > ow {
		width = ow
	}
	height := len(c.lines) + 6
	if width < 10 || height > oh {
		return
	}
	x := ox + (ow-width)/2
	y := oy + (oh-height)/2

	borderStyle := tcell.StyleDefault.Foreground(Palette.Border).Background(Palette.CardBG)
	bgStyle := tcell.StyleDefault.Background(Palette.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	// ╭───╮
	screen.SetContent(x, y, '╭', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, borderStyle)
		screen.SetContent(col, y+height-1, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y, '╮', nil, borderStyle)
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}
	screen.SetContent(x, y+height-1, '╰', nil, borderStyle)
	screen.SetContent(x+width-1, y+height-1, '╯', nil, borderStyle)

	titleStyle := tcell.StyleDefault.Foreground(Palette.Title).Background(Palette.CardBG).Bold(true)
	accentStyle := tcell.StyleDefault.Foreground(c.accent).Background(Palette.CardBG)
	titleX := x + (width-len([]rune(c.title))-3)/2
	screen.SetContent(titleX, y+2, '⬡', nil, accentStyle)
	for i, ch := range c.title {
		screen.SetContent(titleX+3+i, y+2, ch, nil, titleStyle)
	}

	// ├───┤
	screen.SetContent(x, y+3, '├', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y+3, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y+3, '┤', nil, borderStyle)

	labelStyle := tcell.StyleDefault.Foreground(Palette.Label).Background(Palette.CardBG)
	for i, l := range c.lines {
		col := x + 3
		for _, ch := range l {
			if col >= x+width-2 {
				break
			}
			screen.SetContent(col, y+4+i, ch, nil, labelStyle)
			col++
		}
	}
}
