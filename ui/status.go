package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"flickboard/session"
	"flickboard/types"
)

// StatusPanel shows the engine status, the current selection and the controls.
type StatusPanel struct {
	box *tview.TextView
}

// NewStatusPanel creates a new status panel.
func NewStatusPanel() *StatusPanel {
	panel := &StatusPanel{
		box: tview.NewTextView(),
	}
	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(true)
	panel.box.SetBorderPadding(0, 0, 1, 1)
	panel.box.SetTitle(" Status ")
	panel.box.SetTitleAlign(tview.AlignLeft)
	return panel
}

// Box returns the underlying tview component.
func (p *StatusPanel) Box() *tview.TextView {
	return p.box
}

// SetSnapshot updates the panel text.
func (p *StatusPanel) SetSnapshot(s session.Snapshot) {
	p.box.SetText(statusText(s))
}

func statusText(s session.Snapshot) string {
	var text string
	switch s.Status {
	case session.StatusReady:
		text += "[green]●[-] engine ready"
	case session.StatusLoading:
		text += "[yellow]◌[-] loading engine…"
	case session.StatusUnavailable:
		text += "[red]✕[-] engine unavailable"
	default:
		text += "[gray]○[-] stopped"
	}
	text += "   " + selectionText(s.Selection)
	text += fmt.Sprintf("   [gray]depth %d/%d[-]\n", s.Depths.Player1, s.Depths.Player2)

	if s.Selection.SelectedCell() >= 0 {
		// Digits flick while a cell is selected, so hands need the selection cancelled first.
		text += "  [white]y k u h l b j n[-] / numpad flick   [white]q[-] cancel, then [white]1 2[-] to arm a hand"
	} else {
		text += "  [white]hjkl/↑↓←→[-] move   [white]⏎[-] click   [white]1 2[-] hands   [white]r[-] reset   [white][ ] { }[-] depth   [white]a s[-] hint   [white]q[-] quit"
	}
	return text
}

func selectionText(sel types.Selection) string {
	switch {
	case sel.IsHand(types.Player1), sel.IsHand(types.Player2):
		return fmt.Sprintf("[white]%s hand[-] armed, click an empty cell", playerName(sel.Player))
	case sel.SelectedCell() >= 0:
		return fmt.Sprintf("[white]%s[-] selected, drag or use the pad to flick", types.CellName(sel.Index))
	}
	return "[gray]nothing selected[-]"
}
