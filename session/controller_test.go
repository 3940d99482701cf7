package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flickboard/engine"
	"flickboard/types"
)

type harness struct {
	ctrl  *Controller
	clock *fakeClock
	mod   *fakeModule
	ups   *updates
}

// newHarness starts a controller whose engine loads synchronously.
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock: &fakeClock{},
		mod:   &fakeModule{maxHand: 5},
		ups:   &updates{},
	}
	h.ctrl = New(Options{
		Loader:   moduleLoader(h.mod),
		Clock:    h.clock,
		Logger:   zerolog.Nop(),
		OnUpdate: h.ups.record,
	})
	h.ctrl.spawn = func(f func()) { f() }
	h.ctrl.Start()
	require.Len(t, h.mod.created(), 1)
	return h
}

func (h *harness) engine() *recordingEngine {
	return h.mod.created()[0]
}

func TestFreshSession(t *testing.T) {
	h := newHarness(t)
	snap := h.ctrl.Snapshot()

	assert.Equal(t, StatusReady, snap.Status)
	assert.Equal(t, types.BoardState{}, snap.Board)
	assert.Equal(t, 5, snap.Hands.Of(types.Player1))
	assert.Equal(t, 5, snap.Hands.Of(types.Player2))
	assert.True(t, snap.Selection.IsNone())
	assert.Equal(t, Depths{Player1: DefaultDepth, Player2: DefaultDepth}, snap.Depths)
	assert.Equal(t, types.DefaultMaxHandSize, snap.MaxHand)
}

func TestPutScenario(t *testing.T) {
	h := newHarness(t)

	h.ctrl.HandClick(types.Player1)
	assert.True(t, h.ctrl.Snapshot().Selection.IsHand(types.Player1))

	h.ctrl.CellClick(12)

	assert.Equal(t, []types.Action{types.Put(12, types.Player1)}, h.engine().actions())
	snap := h.ctrl.Snapshot()
	assert.Equal(t, types.Player1, snap.Board[12])
	assert.Equal(t, 4, snap.Hands.Of(types.Player1))
	assert.True(t, snap.Selection.IsNone())
}

func TestPutAnyEmptyCell(t *testing.T) {
	for i := 0; i < types.BoardSize; i++ {
		h := newHarness(t)
		h.ctrl.HandClick(types.Player2)
		h.ctrl.CellClick(i)

		assert.Equal(t, []types.Action{types.Put(i, types.Player2)}, h.engine().actions())
		assert.True(t, h.ctrl.Snapshot().Selection.IsNone())
	}
}

func TestFlickScenario(t *testing.T) {
	h := newHarness(t)
	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(12)

	for _, d := range types.Directions {
		h.ctrl.CellClick(h.pieceIndex(t))
		from := h.ctrl.Snapshot().Selection.SelectedCell()
		require.NotEqual(t, -1, from)

		before := len(h.engine().actions())
		h.ctrl.FlickGesture(from, d.DX, d.DY)

		actions := h.engine().actions()
		require.Len(t, actions, before+1)
		assert.Equal(t, types.Flick(from, d), actions[len(actions)-1])
		assert.True(t, h.ctrl.Snapshot().Selection.IsNone())
	}
}

// pieceIndex finds the single piece on the board.
func (h *harness) pieceIndex(t *testing.T) int {
	t.Helper()
	for i, p := range h.ctrl.Snapshot().Board {
		if p != types.Empty {
			return i
		}
	}
	t.Fatal("no piece on the board")
	return -1
}

func TestFlickIgnored(t *testing.T) {
	h := newHarness(t)
	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(12)
	n := len(h.engine().actions())

	// No cell selected.
	h.ctrl.FlickGesture(12, 1, 0)
	assert.Len(t, h.engine().actions(), n)

	h.ctrl.CellClick(12)
	// Zero vector, and a gesture on another cell.
	h.ctrl.FlickGesture(12, 0, 0)
	h.ctrl.FlickGesture(11, 1, 0)
	assert.Len(t, h.engine().actions(), n)
	assert.True(t, h.ctrl.Snapshot().Selection.IsCell(12))

	// Raw vectors are reduced to unit vectors.
	h.ctrl.FlickGesture(12, 5, -3)
	actions := h.engine().actions()
	require.Len(t, actions, n+1)
	assert.Equal(t, types.Flick(12, types.Direction{DX: 1, DY: -1}), actions[n])
}

func TestToggleLaw(t *testing.T) {
	h := newHarness(t)

	h.ctrl.HandClick(types.Player2)
	h.ctrl.HandClick(types.Player2)
	assert.True(t, h.ctrl.Snapshot().Selection.IsNone())

	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(7)
	h.ctrl.CellClick(7)
	assert.True(t, h.ctrl.Snapshot().Selection.IsCell(7))
	h.ctrl.CellClick(7)
	assert.True(t, h.ctrl.Snapshot().Selection.IsNone())
}

func TestSelectionReplaces(t *testing.T) {
	h := newHarness(t)
	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(0)

	h.ctrl.HandClick(types.Player2)
	h.ctrl.CellClick(0)
	assert.True(t, h.ctrl.Snapshot().Selection.IsCell(0))
	h.ctrl.HandClick(types.Player2)
	assert.True(t, h.ctrl.Snapshot().Selection.IsHand(types.Player2))

	// Empty cell with no hand armed does nothing.
	h.ctrl.HandClick(types.Player2)
	n := len(h.engine().actions())
	h.ctrl.CellClick(20)
	assert.Len(t, h.engine().actions(), n)
	assert.True(t, h.ctrl.Snapshot().Selection.IsNone())
}

func TestEmptyHandNotSelectable(t *testing.T) {
	h := &harness{clock: &fakeClock{}, mod: &fakeModule{maxHand: 1}, ups: &updates{}}
	h.ctrl = New(Options{Loader: moduleLoader(h.mod), Clock: h.clock, Logger: zerolog.Nop(), OnUpdate: h.ups.record})
	h.ctrl.spawn = func(f func()) { f() }
	h.ctrl.Start()

	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(0)
	require.Equal(t, 0, h.ctrl.Snapshot().Hands.Of(types.Player1))

	h.ctrl.HandClick(types.Player1)
	assert.True(t, h.ctrl.Snapshot().Selection.IsNone())
}

func TestAnalysisDebounced(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.ctrl.Snapshot().Analysis.Player1)
	require.Len(t, h.clock.pending(), 1)
	assert.Equal(t, DefaultDebounce, h.clock.pending()[0].d)
	assert.Empty(t, h.engine().bestCalls())

	h.clock.fire()
	snap := h.ctrl.Snapshot()
	require.NotNil(t, snap.Analysis.Player1)
	require.NotNil(t, snap.Analysis.Player2)
	assert.Equal(t, types.Put(0, types.Player1), *snap.Analysis.Player1)

	// A board change clears the analysis at once.
	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(0)
	snap = h.ctrl.Snapshot()
	assert.Nil(t, snap.Analysis.Player1)
	assert.Nil(t, snap.Analysis.Player2)

	h.clock.fire()
	snap = h.ctrl.Snapshot()
	require.NotNil(t, snap.Analysis.Player1)
	assert.Equal(t, types.Put(2, types.Player1), *snap.Analysis.Player1)
}

func TestAnalysisPublishedTogether(t *testing.T) {
	h := newHarness(t)
	before := h.ups.count()
	h.clock.fire()

	require.Equal(t, before+1, h.ups.count())
	last := h.ups.last()
	assert.NotNil(t, last.Analysis.Player1)
	assert.NotNil(t, last.Analysis.Player2)
}

func TestDepthChangesCoalesce(t *testing.T) {
	h := newHarness(t)
	h.clock.fire()
	calls := len(h.engine().bestCalls())

	h.ctrl.SetDepth(types.Player1, 3)
	h.ctrl.SetDepth(types.Player1, 2)
	h.ctrl.SetDepth(types.Player2, 7)
	require.Len(t, h.clock.pending(), 1)

	// Superseded timers that still fire must not compute.
	h.clock.fireStopped()
	assert.Len(t, h.engine().bestCalls(), calls)

	h.clock.fire()
	got := h.engine().bestCalls()[calls:]
	assert.ElementsMatch(t, []bestCall{{types.Player1, 2}, {types.Player2, 7}}, got)
	assert.Equal(t, Depths{Player1: 2, Player2: 7}, h.ctrl.Snapshot().Depths)
}

func TestDepthClamped(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetDepth(types.Player1, 0)
	h.ctrl.SetDepth(types.Player2, 12)
	assert.Equal(t, Depths{Player1: 1, Player2: 7}, h.ctrl.Snapshot().Depths)
}

func TestStopWhileAnalysisPending(t *testing.T) {
	h := newHarness(t)
	require.Len(t, h.clock.pending(), 1)
	n := h.ups.count()

	h.ctrl.Stop()
	assert.True(t, h.engine().isClosed())
	assert.True(t, h.mod.isClosed())

	h.clock.fire()
	h.clock.fireStopped()
	assert.Empty(t, h.engine().bestCalls())
	assert.Equal(t, n, h.ups.count(), "nothing may be published after Stop")

	// Input after Stop is ignored.
	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(3)
	h.ctrl.Reset()
	assert.Empty(t, h.engine().actions())
	assert.Equal(t, n, h.ups.count())
}

func TestStopBeforeLoadCompletes(t *testing.T) {
	mod := &fakeModule{maxHand: 5}
	release := make(chan struct{})
	finished := make(chan struct{})
	ups := &updates{}
	ctrl := New(Options{
		Loader:   gatedLoader(mod, release),
		Clock:    &fakeClock{},
		Logger:   zerolog.Nop(),
		OnUpdate: ups.record,
	})
	ctrl.spawn = func(f func()) {
		go func() {
			f()
			close(finished)
		}()
	}

	ctrl.Start()
	assert.Equal(t, StatusLoading, ctrl.Snapshot().Status)
	ctrl.Stop()
	n := ups.count()
	close(release)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("load did not finish")
	}
	assert.Empty(t, mod.created(), "no engine may be created for a stopped session")
	assert.True(t, mod.isClosed(), "stale module must be released")
	assert.Equal(t, n, ups.count())
	assert.Equal(t, StatusStopped, ctrl.Snapshot().Status)
}

func TestRestartKeepsOneLiveEngine(t *testing.T) {
	h := newHarness(t)
	first := h.engine()
	h.ctrl.Start()

	engines := h.mod.created()
	require.Len(t, engines, 2)
	assert.True(t, first.isClosed())
	assert.False(t, engines[1].isClosed())

	// The old session's analysis timer is dead.
	h.clock.fireStopped()
	assert.Empty(t, first.bestCalls())
}

func TestLoadFailure(t *testing.T) {
	ups := &updates{}
	ctrl := New(Options{
		Loader: engine.LoaderFunc(func(ctx context.Context) (engine.Module, error) {
			return nil, errors.New("wasm missing")
		}),
		Clock:    &fakeClock{},
		Logger:   zerolog.Nop(),
		OnUpdate: ups.record,
	})
	ctrl.spawn = func(f func()) { f() }
	ctrl.Start()

	snap := ups.last()
	assert.Equal(t, StatusUnavailable, snap.Status)
	assert.False(t, snap.Ready())
	assert.Contains(t, snap.Err, "wasm missing")
	assert.Contains(t, snap.Err, engine.ErrUnavailable.Error())

	n := ups.count()
	ctrl.HandClick(types.Player1)
	ctrl.CellClick(0)
	assert.Equal(t, n, ups.count())
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.ctrl.HandClick(types.Player1)
	h.ctrl.CellClick(12)
	h.ctrl.CellClick(12)
	h.clock.fire()
	require.NotNil(t, h.ctrl.Snapshot().Analysis.Player1)

	h.ctrl.Reset()
	snap := h.ctrl.Snapshot()
	assert.Equal(t, types.BoardState{}, snap.Board)
	assert.Equal(t, 5, snap.Hands.Of(types.Player1))
	assert.True(t, snap.Selection.IsNone())
	assert.Nil(t, snap.Analysis.Player1)
	assert.Len(t, h.clock.pending(), 1)
}

func TestHoverHint(t *testing.T) {
	h := newHarness(t)
	h.clock.fire()

	h.ctrl.HoverAnalysis(types.Player1, true)
	snap := h.ctrl.Snapshot()
	assert.Equal(t, Hint{Kind: HintPiece, Index: 0, Piece: types.Player1}, snap.Hint)

	// Leaving the other panel keeps this hint.
	h.ctrl.HoverAnalysis(types.Player2, false)
	assert.True(t, h.ctrl.Snapshot().Hint.At(0))

	// Hovering the other panel replaces it.
	h.ctrl.HoverAnalysis(types.Player2, true)
	assert.Equal(t, types.Player2, h.ctrl.Snapshot().Hint.Piece)

	h.ctrl.HoverAnalysis(types.Player2, false)
	assert.Equal(t, HintNone, h.ctrl.Snapshot().Hint.Kind)
}

func TestHoverHintClearedByBoardChange(t *testing.T) {
	h := newHarness(t)
	h.clock.fire()
	h.ctrl.HoverAnalysis(types.Player1, true)
	require.Equal(t, HintPiece, h.ctrl.Snapshot().Hint.Kind)

	h.ctrl.HandClick(types.Player2)
	h.ctrl.CellClick(24)
	assert.Equal(t, HintNone, h.ctrl.Snapshot().Hint.Kind)

	h.clock.fire()
	assert.Equal(t, HintPiece, h.ctrl.Snapshot().Hint.Kind)
}

func TestSnapshotPublishedPerInput(t *testing.T) {
	h := newHarness(t)
	n := h.ups.count()
	h.ctrl.HandClick(types.Player1)
	require.Equal(t, n+1, h.ups.count())
	assert.True(t, h.ups.last().Selection.IsHand(types.Player1))

	h.ctrl.CellClick(6)
	last := h.ups.last()
	assert.Equal(t, types.Player1, last.Board[6])
	assert.True(t, last.Selection.IsNone())
	assert.Nil(t, last.Analysis.Player1)
}

// unreadableEngine fails every board read.
type unreadableEngine struct {
	*recordingEngine
}

func (e unreadableEngine) Board() (types.BoardState, error) {
	return types.BoardState{}, errors.New("board read failed")
}

type unreadableModule struct {
	fakeModule
}

func (m *unreadableModule) New() (engine.Engine, error) {
	eng, err := m.fakeModule.New()
	if err != nil {
		return nil, err
	}
	return unreadableEngine{eng.(*recordingEngine)}, nil
}

func TestFirstPullFailure(t *testing.T) {
	mod := &unreadableModule{fakeModule{maxHand: 5}}
	clock := &fakeClock{}
	ups := &updates{}
	ctrl := New(Options{Loader: moduleLoader(mod), Clock: clock, Logger: zerolog.Nop(), OnUpdate: ups.record})
	ctrl.spawn = func(f func()) { f() }
	ctrl.Start()

	snap := ups.last()
	assert.Equal(t, StatusUnavailable, snap.Status)
	assert.Contains(t, snap.Err, "board read failed")
	require.Len(t, mod.created(), 1)
	assert.True(t, mod.created()[0].isClosed(), "unreadable engine is released")
	assert.Empty(t, clock.pending())

	n := ups.count()
	ctrl.HandClick(types.Player1)
	ctrl.CellClick(0)
	assert.Equal(t, n, ups.count())
	assert.Empty(t, mod.created()[0].actions())
}
