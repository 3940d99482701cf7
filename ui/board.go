// Package ui specifies custom controls for tview to play the 5×5 Put/Flick game in the terminal.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"flickboard/config"
	"flickboard/session"
	"flickboard/types"
)

// Input receives the user's intents. *session.Controller implements it.
type Input interface {
	CellClick(index int)
	FlickGesture(index, dx, dy int)
	HandClick(p types.Piece)
	HoverAnalysis(p types.Piece, hovering bool)
	SetDepth(p types.Piece, depth int)
	Reset()
}

const (
	// Each cell is 4 columns by 2 rows so it is a comfortable mouse target.
	cellW = 4
	cellH = 2
	// Room on the left for row numbers.
	boardLeft = 3
)

type BoardUI struct {
	Box    *tview.Box
	cfg    *config.Config
	styles []tcell.Color
	input  Input
	snap   session.Snapshot

	curX, curY int

	// Screen position of cell a5 at the last draw.
	originX, originY int
	// Cell the left button went down on, or -1.
	pressed            int
	pressedX, pressedY int
}

func NewBoard(c *config.Config, input Input) *BoardUI {
	b := &BoardUI{
		Box:     tview.NewBox(),
		input:   input,
		curX:    types.BoardWidth / 2,
		curY:    types.BoardWidth / 2,
		pressed: -1,
	}
	b.SetConfig(c)
	b.Box.SetDrawFunc(b.draw)
	b.Box.SetMouseCapture(b.mouse)
	return b
}

func (b *BoardUI) SetConfig(c *config.Config) {
	b.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),      // 0
		tcell.PaletteColor(c.Theme.Colors.Player1Color),    // 1
		tcell.PaletteColor(c.Theme.Colors.Player2Color),    // 2
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),   // 3
		tcell.PaletteColor(c.Theme.Colors.HintColor),       // 4
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),   // 5
		tcell.PaletteColor(c.Theme.Colors.SelectedColorBG), // 6
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),   // 7
	}
	b.cfg = c
}

// SetSnapshot replaces what the board draws.
func (b *BoardUI) SetSnapshot(s session.Snapshot) {
	b.snap = s
}

// Cursor returns the index of the cell under the keyboard cursor.
func (b *BoardUI) Cursor() int {
	return types.CellIndex(b.curX, b.curY)
}

// MoveCursor moves the keyboard cursor, stopping at the edges.
func (b *BoardUI) MoveCursor(h, v int) {
	if types.InBounds(b.curX+h, b.curY+v) {
		b.curX += h
		b.curY += v
	}
}

// CellAt maps a screen position to a board cell.
func (b *BoardUI) CellAt(sx, sy int) (int, bool) {
	return cellAt(b.originX, b.originY, sx, sy)
}

func cellAt(ox, oy, sx, sy int) (int, bool) {
	if sx < ox || sy < oy {
		return -1, false
	}
	x, y := (sx-ox)/cellW, (sy-oy)/cellH
	if !types.InBounds(x, y) {
		return -1, false
	}
	return types.CellIndex(x, y), true
}

func (b *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	b.originX, b.originY = x+boardLeft, y
	boardW, boardH := types.BoardWidth*cellW, types.BoardWidth*cellH
	theme := b.cfg.Theme
	sel := b.snap.Selection
	hint := b.snap.Hint

	for index := 0; index < types.BoardSize; index++ {
		cx, cy := types.CellXY(index)
		piece := b.snap.Board[index]

		bg := b.styles[0]
		if (cx+cy)%2 == 1 {
			bg = b.styles[3]
		}
		if piece.IsPlayer() && theme.DrawPieceBackground {
			bg = b.styles[piece]
		}
		if sel.IsCell(index) && theme.DrawSelectedBackground {
			bg = b.styles[6]
		}
		if index == b.Cursor() && theme.DrawCursorBackground {
			bg = b.styles[7]
		}
		style := tcell.StyleDefault.Background(bg)

		r, fg := theme.Symbols.Empty, b.styles[4]
		if piece.IsPlayer() {
			r, fg = b.pieceRune(piece), b.styles[piece]
			if theme.DrawPieceBackground {
				fg = b.styles[5]
			}
		}
		var mark rune = ' '
		markStyle := style.Foreground(b.styles[4])
		if hint.At(index) {
			switch hint.Kind {
			case session.HintPiece:
				// Translucent preview of the recommended Put.
				r, fg = b.pieceRune(hint.Piece), b.styles[hint.Piece]
				style = style.Dim(true)
			case session.HintArrow:
				mark = hint.Arrow
				markStyle = markStyle.Foreground(b.styles[5]).Bold(true)
			}
		}

		left, top := b.originX+cx*cellW, b.originY+cy*cellH
		for row := 0; row < cellH; row++ {
			for col := 0; col < cellW; col++ {
				screen.SetContent(left+col, top+row, ' ', nil, style)
			}
		}
		screen.SetContent(left+1, top, r, nil, style.Foreground(fg))
		screen.SetContent(left+2, top, mark, nil, markStyle)
	}
	b.drawCoordinates(screen, x, y)
	return x, y, boardW + boardLeft, boardH + 1
}

func (b *BoardUI) pieceRune(p types.Piece) rune {
	if p == types.Player2 {
		return b.cfg.Theme.Symbols.Player2
	}
	return b.cfg.Theme.Symbols.Player1
}

func (b *BoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(b.styles[7])
	for ix := 0; ix < types.BoardWidth; ix++ {
		_style := style
		if ix == b.curX {
			_style = highlight
		}
		s.SetContent(b.originX+ix*cellW+1, b.originY+types.BoardWidth*cellH, rune('a'+ix), nil, _style)
	}
	for iy := 0; iy < types.BoardWidth; iy++ {
		_style := style
		if iy == b.curY {
			_style = highlight
		}
		// Rows count from the bottom, like cell names.
		s.SetContent(x+1, b.originY+iy*cellH, rune('0'+types.BoardWidth-iy), nil, _style)
	}
}

// mouse turns a press and release on the same cell into a click, and a press on the
// selected cell released elsewhere into a flick.
func (b *BoardUI) mouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	sx, sy := event.Position()
	switch action {
	case tview.MouseLeftDown:
		index, ok := b.CellAt(sx, sy)
		if !ok {
			b.pressed = -1
			break
		}
		b.pressed, b.pressedX, b.pressedY = index, sx, sy
		b.curX, b.curY = types.CellXY(index)
	case tview.MouseLeftUp:
		from := b.pressed
		b.pressed = -1
		if from < 0 || !b.snap.Ready() {
			break
		}
		to, ok := b.CellAt(sx, sy)
		if ok && to == from {
			b.input.CellClick(from)
			break
		}
		if !b.snap.Selection.IsCell(from) {
			break
		}
		// Cells are wider than tall; scale so the drag angle matches what the user sees.
		dx, dy := sx-b.pressedX, (sy-b.pressedY)*cellW/cellH
		if d, ok := session.DecodeDrag(dx, dy); ok {
			b.input.FlickGesture(from, d.DX, d.DY)
		}
	}
	return action, event
}
