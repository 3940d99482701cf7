package types

import (
	"encoding/json"
	"fmt"
)

// ActionKind tells a Put from a Flick.
type ActionKind uint8

const (
	ActionPut ActionKind = iota + 1
	ActionFlick
)

func (k ActionKind) String() string {
	switch k {
	case ActionPut:
		return "Put"
	case ActionFlick:
		return "Flick"
	}
	return "Unknown"
}

// Action is a move sent to the engine.
// Put uses Index and Value; Flick uses Index, DX and DY.
type Action struct {
	Kind  ActionKind
	Index int
	Value Piece
	DX    int
	DY    int
}

// Put builds a placement action. It does not validate its arguments.
func Put(index int, value Piece) Action {
	return Action{Kind: ActionPut, Index: index, Value: value}
}

// Flick builds a flick action. It does not validate its arguments.
func Flick(index int, d Direction) Action {
	return Action{Kind: ActionFlick, Index: index, DX: d.DX, DY: d.DY}
}

// Direction returns the flick vector of the action.
func (a Action) Direction() Direction {
	return Direction{DX: a.DX, DY: a.DY}
}

// Valid checks the structural shape of the action: an index on the board, a player
// for a Put and a unit vector for a Flick.
func (a Action) Valid() bool {
	if !ValidIndex(a.Index) {
		return false
	}
	switch a.Kind {
	case ActionPut:
		return a.Value.IsPlayer()
	case ActionFlick:
		return a.Direction().IsUnit()
	}
	return false
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPut:
		return fmt.Sprintf("Put %s %s", CellName(a.Index), a.Value)
	case ActionFlick:
		arrow := a.Direction().Arrow()
		if arrow == 0 {
			arrow = '·'
		}
		return fmt.Sprintf("Flick %s %c", CellName(a.Index), arrow)
	}
	return "Unknown"
}

// wireAction is the engine's JSON form: {"type": "Put", "data": {...}}.
type wireAction struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type wirePut struct {
	Index int   `json:"index"`
	Value Piece `json:"value"`
}

type wireFlick struct {
	Index int `json:"index"`
	DX    int `json:"dx"`
	DY    int `json:"dy"`
}

// MarshalJSON encodes the action in the engine's tagged form.
func (a Action) MarshalJSON() ([]byte, error) {
	var data interface{}
	switch a.Kind {
	case ActionPut:
		data = wirePut{Index: a.Index, Value: a.Value}
	case ActionFlick:
		data = wireFlick{Index: a.Index, DX: a.DX, DY: a.DY}
	default:
		return nil, fmt.Errorf("unknown action kind %d", a.Kind)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireAction{Type: a.Kind.String(), Data: raw})
}

// UnmarshalJSON decodes the engine's tagged form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case "Put":
		var p wirePut
		if err := json.Unmarshal(w.Data, &p); err != nil {
			return fmt.Errorf("decode Put: %w", err)
		}
		*a = Put(p.Index, p.Value)
	case "Flick":
		var f wireFlick
		if err := json.Unmarshal(w.Data, &f); err != nil {
			return fmt.Errorf("decode Flick: %w", err)
		}
		*a = Flick(f.Index, Direction{DX: f.DX, DY: f.DY})
	default:
		return fmt.Errorf("unknown action type %q", w.Type)
	}
	return nil
}
