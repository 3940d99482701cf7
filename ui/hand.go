package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"flickboard/config"
	"flickboard/session"
	"flickboard/types"
)

// HandView draws one player's remaining pieces as filled slots out of the hand size.
// Clicking it arms the hand for a Put.
type HandView struct {
	Box    *tview.Box
	player types.Piece
	cfg    *config.Config
	input  Input
	snap   session.Snapshot
}

func NewHandView(p types.Piece, c *config.Config, input Input) *HandView {
	h := &HandView{
		Box:    tview.NewBox(),
		player: p,
		cfg:    c,
		input:  input,
	}
	h.Box.SetBorder(true)
	h.Box.SetTitleAlign(tview.AlignLeft)
	h.Box.SetDrawFunc(h.draw)
	h.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftClick && h.snap.Ready() && h.Box.InRect(event.Position()) {
			h.input.HandClick(h.player)
		}
		return action, event
	})
	return h
}

// SetSnapshot replaces what the hand draws.
func (h *HandView) SetSnapshot(s session.Snapshot) {
	h.snap = s
	h.Box.SetTitle(fmt.Sprintf(" %s hand %d/%d ", playerName(h.player), s.Hands.Of(h.player), s.MaxHand))
	if s.Selection.IsHand(h.player) {
		h.Box.SetBorderColor(tcell.PaletteColor(h.cfg.Theme.Colors.SelectedColorBG))
	} else {
		h.Box.SetBorderColor(Palette.Border)
	}
}

func (h *HandView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	x, y, width, height = x+1, y+1, width-2, height-2
	count := h.snap.Hands.Of(h.player)
	symbols := h.cfg.Theme.Symbols
	filled := symbols.Player1
	if h.player == types.Player2 {
		filled = symbols.Player2
	}
	color := tcell.PaletteColor(h.cfg.Theme.Colors.Player1Color)
	if h.player == types.Player2 {
		color = tcell.PaletteColor(h.cfg.Theme.Colors.Player2Color)
	}
	pieceStyle := tcell.StyleDefault.Foreground(color)
	if h.snap.Selection.IsHand(h.player) {
		pieceStyle = pieceStyle.Background(tcell.PaletteColor(h.cfg.Theme.Colors.SelectedColorBG))
	}
	slotStyle := tcell.StyleDefault.Foreground(Palette.Unselected)

	for i := 0; i < h.snap.MaxHand && i*2 < width; i++ {
		if i < count {
			screen.SetContent(x+1+i*2, y, filled, nil, pieceStyle)
		} else {
			screen.SetContent(x+1+i*2, y, symbols.Slot, nil, slotStyle)
		}
	}
	return x, y, width, height
}

func playerName(p types.Piece) string {
	if p == types.Player2 {
		return "Player 2"
	}
	return "Player 1"
}
