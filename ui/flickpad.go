package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"flickboard/config"
	"flickboard/session"
)

// FlickPad is a 3×3 grid of direction arrows next to the reset button. While a cell is
// selected, clicking an arrow flicks that cell; the centre slot is inert.
type FlickPad struct {
	Box   *tview.Box
	input Input
	snap  session.Snapshot
	reset *Button
	bg    tcell.Color

	originX, originY int
}

const padSlotW = 3

func NewFlickPad(c *config.Config, input Input) *FlickPad {
	f := &FlickPad{
		Box:   tview.NewBox(),
		input: input,
		reset: NewButton("Reset", input.Reset),
		bg:    tcell.PaletteColor(c.Theme.Colors.PadColorBG),
	}
	f.Box.SetBorder(true)
	f.Box.SetTitle(" Controls ")
	f.Box.SetTitleAlign(tview.AlignLeft)
	f.Box.SetBorderColor(Palette.Border)
	f.Box.SetDrawFunc(f.draw)
	f.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick || !f.snap.Ready() {
			return action, event
		}
		if f.reset.Click(event.Position()) {
			return action, event
		}
		index := f.snap.Selection.SelectedCell()
		if index < 0 {
			return action, event
		}
		slot, ok := padSlot(f.originX, f.originY, event)
		if !ok {
			return action, event
		}
		if d, ok := session.PadDirection(slot); ok {
			f.input.FlickGesture(index, d.DX, d.DY)
		}
		return action, event
	})
	return f
}

// SetSnapshot replaces what the pad draws.
func (f *FlickPad) SetSnapshot(s session.Snapshot) {
	f.snap = s
}

func padSlot(ox, oy int, event *tcell.EventMouse) (int, bool) {
	sx, sy := event.Position()
	col, row := (sx-ox)/padSlotW, sy-oy
	if sx < ox || sy < oy || col > 2 || row > 2 {
		return -1, false
	}
	return row*3 + col, true
}

func (f *FlickPad) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	x, y, width, height = x+1, y+1, width-2, height-2
	f.originX, f.originY = x+1, y
	padStyle := tcell.StyleDefault.Background(f.bg)
	style := padStyle.Foreground(Palette.Unselected)
	index := f.snap.Selection.SelectedCell()
	if index >= 0 {
		style = padStyle.Foreground(Palette.Selected).Bold(true)
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3*padSlotW; col++ {
			screen.SetContent(f.originX+col, f.originY+row, ' ', nil, padStyle)
		}
	}
	for slot := 0; slot < 9; slot++ {
		r := '·'
		if d, ok := session.PadDirection(slot); ok {
			r = d.Arrow()
		} else if index >= 0 {
			r = '•'
		}
		screen.SetContent(f.originX+(slot%3)*padSlotW+1, f.originY+slot/3, r, nil, style)
	}
	f.reset.Draw(screen, f.originX+3*padSlotW+3, f.originY+1)
	return x, y, width, height
}
