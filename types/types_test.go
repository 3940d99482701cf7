package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellName(t *testing.T) {
	tests := []struct {
		index int
		name  string
	}{
		{0, "a5"},
		{4, "e5"},
		{12, "c3"},
		{20, "a1"},
		{24, "e1"},
	}
	for _, tt := range tests {
		if got := CellName(tt.index); got != tt.name {
			t.Errorf("CellName(%d) = %q, want %q", tt.index, got, tt.name)
		}
		idx, err := ParseCell(tt.name)
		if err != nil {
			t.Fatalf("ParseCell(%q): %v", tt.name, err)
		}
		if idx != tt.index {
			t.Errorf("ParseCell(%q) = %d, want %d", tt.name, idx, tt.index)
		}
	}
}

func TestParseCellRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "f1", "a0", "a6", "c33", "zz"} {
		if _, err := ParseCell(s); err == nil {
			t.Errorf("ParseCell(%q) should fail", s)
		}
	}
}

func TestDirections(t *testing.T) {
	seen := map[rune]bool{}
	for _, d := range Directions {
		assert.True(t, d.IsUnit(), "%v should be a unit vector", d)
		arrow := d.Arrow()
		assert.NotZero(t, arrow, "%v should have an arrow", d)
		assert.False(t, seen[arrow], "arrow %c used twice", arrow)
		seen[arrow] = true
	}
	assert.False(t, Direction{}.IsUnit())
	assert.Zero(t, Direction{}.Arrow())
	assert.False(t, Direction{DX: 2, DY: 0}.IsUnit())
}

func TestActionJSONMatchesEngineForm(t *testing.T) {
	data, err := json.Marshal(Put(12, Player1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Put","data":{"index":12,"value":1}}`, string(data))

	data, err = json.Marshal(Flick(7, Direction{DX: -1, DY: 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Flick","data":{"index":7,"dx":-1,"dy":1}}`, string(data))

	var a Action
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Flick","data":{"index":3,"dx":0,"dy":-1}}`), &a))
	assert.Equal(t, Flick(3, Direction{DX: 0, DY: -1}), a)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"Jump","data":{}}`), &a))
}

func TestActionValid(t *testing.T) {
	assert.True(t, Put(0, Player2).Valid())
	assert.False(t, Put(25, Player2).Valid())
	assert.False(t, Put(3, Empty).Valid())
	assert.True(t, Flick(24, Direction{DX: -1, DY: -1}).Valid())
	assert.False(t, Flick(24, Direction{}).Valid())
	assert.False(t, Action{}.Valid())
}

func TestBoardAndHands(t *testing.T) {
	var b BoardState
	b[CellIndex(2, 2)] = Player1
	b[CellIndex(4, 0)] = Player2
	assert.Equal(t, Player1, b.At(2, 2))
	assert.Equal(t, 1, b.Count(Player1))
	assert.Equal(t, 23, b.Count(Empty))
	assert.False(t, b.IsEmpty(12))
	assert.True(t, b.IsEmpty(0))
	assert.False(t, b.IsEmpty(-1))

	var h HandCounts
	h.Set(Player2, 3)
	assert.Equal(t, 3, h.Of(Player2))
	assert.Equal(t, 0, h.Of(Empty))
}

func TestSelection(t *testing.T) {
	s := HandSelection(Player2)
	assert.True(t, s.IsHand(Player2))
	assert.False(t, s.IsHand(Player1))
	assert.Equal(t, -1, s.SelectedCell())

	s = CellSelection(12)
	assert.True(t, s.IsCell(12))
	assert.Equal(t, 12, s.SelectedCell())
	assert.Equal(t, "Cell(c3)", s.String())
	assert.True(t, NoSelection.IsNone())
}
