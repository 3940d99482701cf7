package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"flickboard/session"
	"flickboard/types"
)

// AnalysisPanel shows the engine's recommendation for one player and the depth slider
// that player's search runs at. Hovering the panel previews the recommendation on the board.
type AnalysisPanel struct {
	Box    *tview.Box
	player types.Piece
	slider *DepthSlider
	input  Input
	snap   session.Snapshot
}

func NewAnalysisPanel(p types.Piece, input Input) *AnalysisPanel {
	a := &AnalysisPanel{
		Box:    tview.NewBox(),
		player: p,
		input:  input,
	}
	a.slider = NewDepthSlider("Depth", types.MinDepth, types.MaxDepth, session.DefaultDepth, func(v int) {
		a.input.SetDepth(a.player, v)
	})
	a.Box.SetBorder(true)
	a.Box.SetTitle(fmt.Sprintf(" %s analysis ", playerName(p)))
	a.Box.SetTitleAlign(tview.AlignLeft)
	a.Box.SetBorderColor(Palette.Border)
	a.Box.SetDrawFunc(a.draw)
	a.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftClick && a.snap.Ready() {
			a.slider.Click(event.Position())
		}
		return action, event
	})
	return a
}

// Player returns whose analysis the panel shows.
func (a *AnalysisPanel) Player() types.Piece {
	return a.player
}

// StepDepth moves the depth slider by delta.
func (a *AnalysisPanel) StepDepth(delta int) {
	a.slider.Step(delta)
}

// SetSnapshot replaces what the panel draws.
func (a *AnalysisPanel) SetSnapshot(s session.Snapshot) {
	a.snap = s
	a.slider.SetValue(s.Depths.Of(a.player))
	hovered := s.Hovered == a.player
	a.slider.SetActive(hovered)
	if hovered {
		a.Box.SetBorderColor(Palette.BorderHover)
	} else {
		a.Box.SetBorderColor(Palette.Border)
	}
}

func (a *AnalysisPanel) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	x, y, width, height = x+1, y+1, width-2, height-2
	if width <= 0 || height <= 0 {
		return x, y, 0, 0
	}
	row := y
	row += a.slider.Draw(screen, x+1, row, width-1)
	row++

	lines := describeRecommendation(a.snap.Analysis.Of(a.player))
	for i, line := range lines {
		if row >= y+height {
			break
		}
		color := tcell.ColorWhite
		if i > 0 {
			color = tcell.ColorGray
		}
		tview.Print(screen, tview.Escape(line), x+1, row, width-1, tview.AlignLeft, color)
		row++
	}
	return x, y, width, height
}

// describeRecommendation renders an action as notation followed by the engine's JSON form.
func describeRecommendation(a *types.Action) []string {
	if a == nil {
		return []string{"Best: …"}
	}
	lines := []string{"Best: " + a.String()}
	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return lines
	}
	return append(lines, strings.Split(string(raw), "\n")...)
}
