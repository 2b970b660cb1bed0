package watersort

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPlan_WinningPathListsOnePerLine(t *testing.T) {
	start, err := NewGame([]Tube{
		tubeOf(red, red, blue),
		tubeOf(blue, blue, red),
		{},
	}, 3, NORMAL, 5)
	require.NoError(t, err)

	solved, err := Solve(start)
	require.NoError(t, err)
	require.True(t, solved.Game.IsWinningState())

	plan, err := RenderPlan(start, solved)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(plan, "\n"), "\n")
	require.Len(t, lines, len(solved.Path))
	for i, op := range solved.Path {
		require.Equal(t, op.String(), lines[i])
	}
}

func TestRenderPlan_HiddenRunAsksToUpdateRevealedSlots(t *testing.T) {
	raw := []Tube{
		{NewUnknownNode(Pos{0, 0}), NewKnownNode(Pos{0, 1}, red)},
		{NewKnownNode(Pos{1, 0}, red), NewUnknownNode(Pos{1, 1})},
		{},
	}
	start, err := NewGame(raw, 2, NORMAL, 5)
	require.NoError(t, err)

	solved, err := Solve(start)
	require.NoError(t, err)

	plan, err := RenderPlan(start, solved)
	require.NoError(t, err)
	if !solved.Game.IsWinningState() {
		require.Contains(t, plan, "Follow the steps")
	}
}

func TestBatchSummaries_EmptyPathReturnsNil(t *testing.T) {
	start, err := NewGame([]Tube{tubeOf(red, red), tubeOf(blue, blue)}, 2, NORMAL, 5)
	require.NoError(t, err)
	summaries, err := BatchSummaries(start, nil)
	require.NoError(t, err)
	require.Nil(t, summaries)
}

func TestBatchSummaries_SingleStepFallsBackToStepString(t *testing.T) {
	start, err := NewGame([]Tube{tubeOf(red), {}}, 1, NORMAL, 5)
	require.NoError(t, err)
	summaries, err := BatchSummaries(start, []Operation{StepForward(0, 1)})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Contains(t, summaries[0], "1 -> 2")
	require.Contains(t, summaries[0], "completes tube")
}
