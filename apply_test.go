package watersort

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S4 — mode divergence: NO_COMBO never merges two adjacent same-color
// units in one step, unlike NORMAL.
func TestScenario_S4_NoComboNeverCombos(t *testing.T) {
	normal, err := NewGame([]Tube{
		{NewKnownNode(Pos{0, 0}, blue), NewKnownNode(Pos{0, 1}, red), NewKnownNode(Pos{0, 2}, red)},
		{},
	}, 3, NORMAL, 0)
	require.NoError(t, err)
	succ, err := normal.ApplyOp(StepForward(0, 1))
	require.NoError(t, err)
	require.Len(t, succ.Tubes()[1], 2) // both red units moved together

	noCombo, err := NewGame([]Tube{
		{NewKnownNode(Pos{0, 0}, blue), NewKnownNode(Pos{0, 1}, red), NewKnownNode(Pos{0, 2}, red)},
		{},
	}, 3, NOCOMBO, 0)
	require.NoError(t, err)
	succ2, err := noCombo.ApplyOp(StepForward(0, 1))
	require.NoError(t, err)
	require.Len(t, succ2.Tubes()[1], 1) // exactly one unit moved
}

func TestScenario_S4_QueueUsesBottom(t *testing.T) {
	g, err := NewGame([]Tube{
		{NewKnownNode(Pos{0, 0}, red), NewKnownNode(Pos{0, 1}, blue)},
		{},
	}, 2, QUEUE, 0)
	require.NoError(t, err)
	succ, err := g.ApplyOp(StepForward(0, 1))
	require.NoError(t, err)
	require.Equal(t, red, succ.Tubes()[1][0].Color)
	require.Equal(t, blue, succ.Tubes()[0][0].Color)
}

// S5 — reveal and undo.
func TestScenario_S5_RevealAndUndo(t *testing.T) {
	// An empty third tube gives tube 0's red top somewhere to go, so a
	// single forward move exposes a hidden slot.
	raw2 := []Tube{
		{NewUnknownNode(Pos{0, 0}), NewUnknownNode(Pos{0, 1}), NewKnownNode(Pos{0, 2}, red)},
		{NewKnownNode(Pos{1, 0}, red), NewUnknownNode(Pos{1, 1}), NewUnknownNode(Pos{1, 2})},
		{},
	}
	g2, err := NewGame(raw2, 3, NORMAL, 1)
	require.NoError(t, err)

	move1, err := g2.ApplyOp(StepForward(0, 2))
	require.NoError(t, err)
	require.True(t, move1.RevealedNew())
	require.Equal(t, NodeUnknownRevealed, move1.Tubes()[0][1].Tag)

	undone, err := move1.ApplyOp(Undo)
	require.NoError(t, err)
	require.Equal(t, 0, undone.UndoCount())
	require.Equal(t, NodeUnknownRevealed, undone.Tubes()[0][1].Tag)
	require.Contains(t, undone.AllRevealed(), Pos{Col: 0, Row: 1})
}

func TestApplyOp_UndoWithoutPredecessorFails(t *testing.T) {
	g, err := NewGame([]Tube{tubeOf(red, red)}, 2, NORMAL, 5)
	require.NoError(t, err)
	_, err = g.ApplyOp(Undo)
	require.ErrorIs(t, err, ErrInvalidOperation)
}
