package watersort

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red   = Color{R: 255}
	blue  = Color{B: 255}
	green = Color{G: 255}
)

func tubeOf(colors ...Color) Tube {
	t := make(Tube, len(colors))
	for i, c := range colors {
		t[i] = NewKnownNode(Pos{Col: 0, Row: i}, c)
	}
	return t
}

func TestNewGame_TrimsTrailingEmpty(t *testing.T) {
	raw := []Tube{
		{NewKnownNode(Pos{0, 0}, red), NewEmptyNode(Pos{0, 1})},
		{NewKnownNode(Pos{1, 0}, red)},
	}
	g, err := NewGame(raw, 2, NORMAL, 5)
	require.NoError(t, err)
	require.Len(t, g.Tubes()[0], 1)
}

func TestNewGame_EmptyBelowNonEmptyIsInvalid(t *testing.T) {
	raw := []Tube{
		{NewEmptyNode(Pos{0, 0}), NewKnownNode(Pos{0, 1}, red)},
	}
	_, err := NewGame(raw, 2, NORMAL, 5)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidBoard)
}

func TestNewGame_ColorOverCapacityIsInvalid(t *testing.T) {
	raw := []Tube{tubeOf(red, red, red)}
	_, err := NewGame(raw, 2, NORMAL, 5)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidBoard)
}

func TestNewGame_TotalNotMultipleOfCapacityIsInvalid(t *testing.T) {
	raw := []Tube{tubeOf(red)}
	_, err := NewGame(raw, 2, NORMAL, 5)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidBoard)
}

func TestNewGame_TubeLongerThanCapacityIsInvalid(t *testing.T) {
	raw := []Tube{tubeOf(red, blue, green)}
	_, err := NewGame(raw, 2, NORMAL, 5)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidBoard)
}

func TestAutoComplete_FillsSinglePartialColor(t *testing.T) {
	raw := []Tube{
		{NewKnownNode(Pos{0, 0}, red), NewUnknownNode(Pos{0, 1})},
		tubeOf(blue, blue),
	}
	g, err := NewGame(raw, 2, NORMAL, 5)
	require.NoError(t, err)
	completed := g.AutoComplete()
	require.False(t, completed.ContainsUnknown())
	require.Equal(t, red, completed.Tubes()[0][1].Color)
}

func TestAutoComplete_FailsOpenOnAmbiguity(t *testing.T) {
	raw := []Tube{
		{NewUnknownNode(Pos{0, 0}), NewUnknownNode(Pos{0, 1})},
		tubeOf(blue, blue),
	}
	g, err := NewGame(raw, 2, NORMAL, 5)
	require.NoError(t, err)
	unchanged := g.AutoComplete()
	require.True(t, unchanged.ContainsUnknown())
}

// S1 — trivial sort: already winning, no ops, empty solution path.
func TestScenario_S1_TrivialSort(t *testing.T) {
	g, err := NewGame([]Tube{tubeOf(red, red), tubeOf(blue, blue)}, 2, NORMAL, 5)
	require.NoError(t, err)
	require.True(t, g.IsWinningState())
	require.Empty(t, g.Ops())

	solved, err := Solve(g)
	require.NoError(t, err)
	require.Empty(t, solved.Path)
}

// S2 — single pour: reaches a winning state.
func TestScenario_S2_SinglePour(t *testing.T) {
	g, err := NewGame([]Tube{
		tubeOf(red, red, blue),
		tubeOf(blue, blue, red),
		{},
	}, 3, NORMAL, 5)
	require.NoError(t, err)

	solved, err := Solve(g)
	require.NoError(t, err)
	require.True(t, solved.Game.IsWinningState())
}

// S3 — empty-tube symmetry: exactly one empty-destination choice per
// legal source.
func TestScenario_S3_EmptyTubeSymmetry(t *testing.T) {
	g, err := NewGame([]Tube{
		tubeOf(red, blue),
		tubeOf(blue, red),
		{},
		{},
	}, 2, NORMAL, 5)
	require.NoError(t, err)

	emptyDestOps := 0
	for _, op := range g.Ops() {
		if op.IsUndo {
			continue
		}
		if len(g.Tubes()[op.Dst]) == 0 {
			emptyDestOps++
		}
	}
	// Two sources (tube 0 and tube 1), one empty destination choice each.
	require.Equal(t, 2, emptyDestOps)
}

func TestGame_IsWinningImpliesNoStepForward(t *testing.T) {
	g, err := NewGame([]Tube{tubeOf(red, red), tubeOf(blue, blue)}, 2, NORMAL, 5)
	require.NoError(t, err)
	for _, op := range g.Ops() {
		require.True(t, op.IsUndo)
	}
}
