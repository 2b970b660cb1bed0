package boardio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colorsort/watersort"
)

func TestDecodeJSON_InfersCapacityFromCommonTubeLength(t *testing.T) {
	doc := `{
		"groups": [
			[{"nodeType": ".", "originalPos": [0, 0], "color": "#FF0000"},
			 {"nodeType": ".", "originalPos": [0, 1], "color": "#FF0000"}],
			[{"nodeType": ".", "originalPos": [1, 0], "color": "#0000FF"},
			 {"nodeType": ".", "originalPos": [1, 1], "color": "#0000FF"}]
		]
	}`
	g, err := DecodeJSON([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, 2, g.Capacity())
	require.Equal(t, 5, g.UndoCount())
	require.Equal(t, watersort.NORMAL, g.Mode())
}

func TestDecodeJSON_MismatchedLengthsWithoutCapacityIsInvalid(t *testing.T) {
	doc := `{
		"groups": [
			[{"nodeType": ".", "originalPos": [0, 0], "color": "#FF0000"}],
			[{"nodeType": ".", "originalPos": [1, 0], "color": "#0000FF"},
			 {"nodeType": ".", "originalPos": [1, 1], "color": "#0000FF"}]
		]
	}`
	_, err := DecodeJSON([]byte(doc))
	require.Error(t, err)
	require.ErrorIs(t, err, watersort.ErrInvalidBoard)
}

func TestDecodeJSON_UnrecognizedModeFailsOpenToNormal(t *testing.T) {
	doc := `{
		"groups": [
			[{"nodeType": ".", "originalPos": [0, 0], "color": "#FF0000"}]
		],
		"groupCapacity": 1,
		"gameMode": "SOMETHING_UNKNOWN"
	}`
	g, err := DecodeJSON([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, watersort.NORMAL, g.Mode())
}

func TestDecodeJSON_UnrecognizedNodeTypeIsInvalid(t *testing.T) {
	doc := `{
		"groups": [
			[{"nodeType": "x", "originalPos": [0, 0]}]
		],
		"groupCapacity": 1
	}`
	_, err := DecodeJSON([]byte(doc))
	require.Error(t, err)
	require.ErrorIs(t, err, watersort.ErrInvalidBoard)
}

func TestEncodeDecodeJSON_RoundTrips(t *testing.T) {
	g, err := watersort.NewGame([]watersort.Tube{
		{watersort.NewKnownNode(watersort.Pos{Col: 0, Row: 0}, watersort.Color{R: 255}),
			watersort.NewUnknownNode(watersort.Pos{Col: 0, Row: 1})},
		{watersort.NewKnownNode(watersort.Pos{Col: 1, Row: 0}, watersort.Color{B: 255}),
			watersort.NewUnknownNode(watersort.Pos{Col: 1, Row: 1})},
	}, 2, watersort.QUEUE, 3)
	require.NoError(t, err)

	raw, err := EncodeJSON(g)
	require.NoError(t, err)

	round, err := DecodeJSON(raw)
	require.NoError(t, err)

	require.Equal(t, g.Capacity(), round.Capacity())
	require.Equal(t, g.Mode(), round.Mode())
	require.Equal(t, g.UndoCount(), round.UndoCount())
	require.Equal(t, g.Tubes(), round.Tubes())
}
