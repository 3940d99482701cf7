package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flickboard/types"
)

func TestResolveHint(t *testing.T) {
	assert.Equal(t, Hint{}, ResolveHint(nil))

	put := types.Put(12, types.Player2)
	h := ResolveHint(&put)
	assert.Equal(t, HintPiece, h.Kind)
	assert.Equal(t, 12, h.Index)
	assert.Equal(t, types.Player2, h.Piece)
	assert.True(t, h.At(12))
	assert.False(t, h.At(11))

	for _, d := range types.Directions {
		flick := types.Flick(7, d)
		h := ResolveHint(&flick)
		assert.Equal(t, HintArrow, h.Kind)
		assert.Equal(t, 7, h.Index)
		assert.Equal(t, d, h.Dir)
		assert.Equal(t, d.Arrow(), h.Arrow)
	}

	zero := types.Flick(7, types.Direction{})
	assert.Equal(t, HintNone, ResolveHint(&zero).Kind)

	off := types.Put(40, types.Player1)
	assert.Equal(t, HintNone, ResolveHint(&off).Kind)
	assert.False(t, Hint{}.At(0))
}
