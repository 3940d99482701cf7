package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"flickboard/config"
	"flickboard/session"
	"flickboard/types"
)

const (
	pageBoard       = "board"
	pageLoading     = "loading"
	pageUnavailable = "unavailable"
)

// Layout arranges the board, hands, analysis panels, flick pad and status bar, and routes
// keys and pointer movement to the session.
type Layout struct {
	Pages *tview.Pages

	board       *BoardUI
	hands       [2]*HandView
	panels      [2]*AnalysisPanel
	pad         *FlickPad
	status      *StatusPanel
	loading     *NoticeCard
	unavailable *NoticeCard

	input   Input
	onQuit  func()
	snap    session.Snapshot
	page    string
	pointer types.Piece // panel under the mouse pointer, or Empty
}

// NewLayout builds every widget. onQuit runs when q or Esc is pressed with nothing selected.
func NewLayout(c *config.Config, input Input, onQuit func()) *Layout {
	l := &Layout{
		Pages:       tview.NewPages(),
		board:       NewBoard(c, input),
		status:      NewStatusPanel(),
		loading:     NewNoticeCard("Loading engine", Palette.TitleAccent),
		unavailable: NewNoticeCard("Engine unavailable", Palette.Error),
		input:       input,
		onQuit:      onQuit,
	}
	for i, p := range types.Players {
		l.hands[i] = NewHandView(p, c, input)
		l.panels[i] = NewAnalysisPanel(p, input)
	}
	if c.Theme.ShowFlickPad {
		l.pad = NewFlickPad(c, input)
	}
	l.loading.SetMessage("The rule engine is starting.", "", "q quit")

	boardWidth := types.BoardWidth*cellW + boardLeft + 2
	boardHeight := types.BoardWidth*cellH + 1

	left := tview.NewFlex().SetDirection(tview.FlexRow)
	left.AddItem(l.hands[1].Box, 3, 0, false)
	left.AddItem(l.board.Box, boardHeight, 0, true)
	left.AddItem(l.hands[0].Box, 3, 0, false)
	left.AddItem(nil, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow)
	right.AddItem(l.panels[0].Box, 0, 1, false)
	right.AddItem(l.panels[1].Box, 0, 1, false)
	if l.pad != nil {
		right.AddItem(l.pad.Box, 5, 0, false)
	}

	row := tview.NewFlex().SetDirection(tview.FlexColumn)
	row.AddItem(left, boardWidth, 0, true)
	row.AddItem(right, 0, 1, false)

	frame := tview.NewFlex().SetDirection(tview.FlexRow)
	frame.AddItem(row, 0, 1, true)
	frame.AddItem(l.status.Box(), 4, 0, false)

	l.Pages.AddPage(pageBoard, frame, true, false)
	l.Pages.AddPage(pageLoading, l.loading, true, true)
	l.Pages.AddPage(pageUnavailable, l.unavailable, true, false)
	l.page = pageLoading
	return l
}

// Update shows a published snapshot. Call it on the tview goroutine.
func (l *Layout) Update(s session.Snapshot) {
	l.snap = s
	l.board.SetSnapshot(s)
	if l.pad != nil {
		l.pad.SetSnapshot(s)
	}
	l.status.SetSnapshot(s)
	for i := range types.Players {
		l.hands[i].SetSnapshot(s)
		l.panels[i].SetSnapshot(s)
	}
	l.unavailable.SetMessage(s.Err, "", "q quit")
	l.switchTo(pageFor(s.Status, l.page))
}

func pageFor(st session.Status, current string) string {
	switch st {
	case session.StatusReady:
		return pageBoard
	case session.StatusLoading:
		return pageLoading
	case session.StatusUnavailable:
		return pageUnavailable
	}
	return current
}

func (l *Layout) switchTo(page string) {
	if page == l.page {
		return
	}
	l.page = page
	l.Pages.SwitchToPage(page)
}

// HandleKey is the application's input capture. It returns nil for keys it consumed.
func (l *Layout) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
		if !l.clearSelection() {
			l.onQuit()
		}
		return nil
	}
	if !l.snap.Ready() {
		return event
	}

	switch event.Key() {
	case tcell.KeyUp:
		l.board.MoveCursor(0, -1)
	case tcell.KeyDown:
		l.board.MoveCursor(0, 1)
	case tcell.KeyLeft:
		l.board.MoveCursor(-1, 0)
	case tcell.KeyRight:
		l.board.MoveCursor(1, 0)
	case tcell.KeyEnter:
		l.input.CellClick(l.board.Cursor())
	case tcell.KeyRune:
		return l.handleRune(event)
	default:
		return event
	}
	return nil
}

func (l *Layout) handleRune(event *tcell.EventKey) *tcell.EventKey {
	r := event.Rune()
	if index := l.snap.Selection.SelectedCell(); index >= 0 {
		if d, ok := session.DecodeKey(r); ok {
			l.input.FlickGesture(index, d.DX, d.DY)
			return nil
		}
	}
	switch r {
	case 'h':
		l.board.MoveCursor(-1, 0)
	case 'j':
		l.board.MoveCursor(0, 1)
	case 'k':
		l.board.MoveCursor(0, -1)
	case 'l':
		l.board.MoveCursor(1, 0)
	case ' ':
		l.input.CellClick(l.board.Cursor())
	case '1':
		l.input.HandClick(types.Player1)
	case '2':
		l.input.HandClick(types.Player2)
	case 'r':
		l.input.Reset()
	case '[':
		l.panels[0].StepDepth(-1)
	case ']':
		l.panels[0].StepDepth(1)
	case '{':
		l.panels[1].StepDepth(-1)
	case '}':
		l.panels[1].StepDepth(1)
	case 'a':
		l.toggleHover(types.Player1)
	case 's':
		l.toggleHover(types.Player2)
	default:
		return event
	}
	return nil
}

// clearSelection clicks the selected target again. Returns false if nothing was selected.
func (l *Layout) clearSelection() bool {
	sel := l.snap.Selection
	if !l.snap.Ready() || sel.IsNone() {
		return false
	}
	if index := sel.SelectedCell(); index >= 0 {
		l.input.CellClick(index)
	} else {
		l.input.HandClick(sel.Player)
	}
	return true
}

func (l *Layout) toggleHover(p types.Piece) {
	l.input.HoverAnalysis(p, l.snap.Hovered != p)
}

// TrackPointer turns mouse movement into enter and leave events for the analysis panels.
func (l *Layout) TrackPointer(x, y int) {
	over := types.Empty
	if l.page == pageBoard {
		for _, panel := range l.panels {
			if panel.Box.InRect(x, y) {
				over = panel.Player()
			}
		}
	}
	if over == l.pointer {
		return
	}
	if l.pointer.IsPlayer() {
		l.input.HoverAnalysis(l.pointer, false)
	}
	if over.IsPlayer() {
		l.input.HoverAnalysis(over, true)
	}
	l.pointer = over
}
