package watersort

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOps_SkipsEmptyAndCompletedSources(t *testing.T) {
	g, err := NewGame([]Tube{
		tubeOf(red, red),
		{},
		tubeOf(blue, blue),
	}, 2, NORMAL, 5)
	require.NoError(t, err)

	for _, op := range g.Ops() {
		require.NotEqual(t, 0, op.Src, "completed tube 0 should never be a source")
		require.NotEqual(t, 1, op.Src, "empty tube 1 should never be a source")
	}
}

func TestOps_DedicatedDestinationExcludesOtherMatches(t *testing.T) {
	// Tube 0 pours red; tube 1 is a dedicated (uniform-color) red tube and
	// tube 2 also has red on top. Only the dedicated destination should
	// ever appear for tube 0.
	g, err := NewGame([]Tube{
		tubeOf(red),
		tubeOf(red, red),
		{NewKnownNode(Pos{2, 0}, blue), NewKnownNode(Pos{2, 1}, red)},
	}, 5, NORMAL, 5)
	require.NoError(t, err)

	dsts := map[int]bool{}
	for _, op := range g.Ops() {
		if op.IsUndo || op.Src != 0 {
			continue
		}
		dsts[op.Dst] = true
	}
	require.Equal(t, map[int]bool{1: true}, dsts)
}

func TestOps_UniformColorTubeForbiddenFromPouringIntoEmpty(t *testing.T) {
	// Tube 0 is uniform red but not yet full (capacity 3), so it isn't
	// "completed" and remains a candidate source; pouring its own color
	// into an empty tube gains nothing and must not be offered.
	g, err := NewGame([]Tube{
		tubeOf(red, red),
		{},
		tubeOf(blue, blue, blue),
		tubeOf(green),
	}, 3, NORMAL, 5)
	require.NoError(t, err)

	for _, op := range g.Ops() {
		require.NotEqual(t, 0, op.Src, "an already-uniform tube has nothing useful to pour into an empty tube")
	}
}

func TestOps_UndoOmittedWithoutHiddenUnits(t *testing.T) {
	g, err := NewGame([]Tube{tubeOf(red, blue), tubeOf(blue, red), {}}, 2, NORMAL, 5)
	require.NoError(t, err)
	succ, err := g.ApplyOp(g.Ops()[0])
	require.NoError(t, err)
	for _, op := range succ.Ops() {
		require.False(t, op.IsUndo, "Undo only appears once the board contains a hidden unit")
	}
}

func TestOps_UndoOmittedWhenBudgetExhausted(t *testing.T) {
	raw := []Tube{
		{NewUnknownNode(Pos{0, 0}), NewKnownNode(Pos{0, 1}, red)},
		{NewKnownNode(Pos{1, 0}, red), NewUnknownNode(Pos{1, 1})},
	}
	g, err := NewGame(raw, 2, NORMAL, 0)
	require.NoError(t, err)
	succ, err := g.ApplyOp(StepForward(0, 1))
	require.NoError(t, err)
	for _, op := range succ.Ops() {
		require.False(t, op.IsUndo)
	}
}
