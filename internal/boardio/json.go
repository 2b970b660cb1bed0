// Package boardio implements the external board adapters: round-trippable
// JSON encode/decode and a portable spreadsheet reader.
package boardio

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/colorsort/watersort"
)

// jsonNode is the wire shape of a single board cell.
type jsonNode struct {
	NodeType    string `json:"nodeType"`
	OriginalPos [2]int `json:"originalPos"`
	Color       string `json:"color,omitempty"`
}

// jsonBoard is the wire shape of the whole puzzle document, carrying both
// the canonical field names and the compatibility aliases some external
// board generators use (gameMode/mode, groupCapacity/rows).
type jsonBoard struct {
	Groups        [][]jsonNode `json:"groups"`
	UndoCount     *int         `json:"undoCount,omitempty"`
	GameMode      string       `json:"gameMode,omitempty"`
	Mode          *int         `json:"mode,omitempty"`
	GroupCapacity *int         `json:"groupCapacity,omitempty"`
	Rows          *int         `json:"rows,omitempty"`
	Cols          int          `json:"cols,omitempty"`
	Colors        int          `json:"colors,omitempty"`
}

// DecodeJSON parses a board document into a Game. Capacity is taken from
// groupCapacity/rows if present, else inferred as the common tube length
// (an InvalidBoard error if tubes disagree). Mode is taken from
// gameMode/mode, falling open to NORMAL on anything unrecognized.
func DecodeJSON(raw []byte) (*watersort.Game, error) {
	var doc jsonBoard
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, invalidBoardf("parsing board JSON: %v", err)
	}

	tubes := make([]watersort.Tube, len(doc.Groups))
	for i, g := range doc.Groups {
		tube := make(watersort.Tube, len(g))
		for j, n := range g {
			node, err := nodeFromJSON(n)
			if err != nil {
				return nil, invalidBoardf("groups[%d][%d]: %v", i, j, err)
			}
			tube[j] = node
		}
		tubes[i] = tube
	}

	capacity, err := resolveCapacity(doc, tubes)
	if err != nil {
		return nil, err
	}

	mode := resolveMode(doc)

	undo := 5
	if doc.UndoCount != nil {
		undo = *doc.UndoCount
	}

	return watersort.NewGame(tubes, capacity, mode, undo)
}

func nodeFromJSON(n jsonNode) (watersort.Node, error) {
	pos := watersort.Pos{Col: n.OriginalPos[0], Row: n.OriginalPos[1]}
	switch n.NodeType {
	case "?":
		return watersort.NewUnknownNode(pos), nil
	case "!":
		return watersort.NewUnknownRevealedNode(pos), nil
	case "_":
		return watersort.NewEmptyNode(pos), nil
	case ".":
		if n.Color == "" {
			return watersort.Node{}, fmt.Errorf("KNOWN node missing color")
		}
		c, err := watersort.ColorFromHex(n.Color)
		if err != nil {
			return watersort.Node{}, err
		}
		return watersort.NewKnownNode(pos, c), nil
	default:
		return watersort.Node{}, fmt.Errorf("unrecognized nodeType %q", n.NodeType)
	}
}

func resolveCapacity(doc jsonBoard, tubes []watersort.Tube) (int, error) {
	if doc.GroupCapacity != nil {
		return *doc.GroupCapacity, nil
	}
	if doc.Rows != nil {
		return *doc.Rows, nil
	}
	common := -1
	for _, t := range tubes {
		if common == -1 {
			common = len(t)
			continue
		}
		if len(t) != common {
			return 0, invalidBoardf("tubes differ in length and no groupCapacity/rows was given")
		}
	}
	if common == -1 {
		return 0, invalidBoardf("board has no tubes")
	}
	return common, nil
}

// invalidBoardf builds an InvalidBoard-flavored error that still unwraps
// to watersort.ErrInvalidBoard via errors.Is.
func invalidBoardf(format string, args ...interface{}) error {
	return errors.Wrap(watersort.ErrInvalidBoard, fmt.Sprintf(format, args...))
}

func resolveMode(doc jsonBoard) watersort.Mode {
	if doc.GameMode != "" {
		return watersort.ModeFromString(doc.GameMode)
	}
	if doc.Mode != nil {
		return watersort.ModeFromInt(*doc.Mode)
	}
	return watersort.NORMAL
}

// EncodeJSON renders g as a board document, including the compatibility
// aliases (mode, rows, cols, colors) alongside the canonical fields for
// round-trip compatibility with generators that read either set.
func EncodeJSON(g *watersort.Game) ([]byte, error) {
	groups := make([][]jsonNode, len(g.Tubes()))
	colorSet := map[watersort.Color]bool{}
	for i, t := range g.Tubes() {
		group := make([]jsonNode, len(t))
		for j, n := range t {
			jn, err := nodeToJSON(n)
			if err != nil {
				return nil, err
			}
			group[j] = jn
			if n.Tag == watersort.NodeKnown {
				colorSet[n.Color] = true
			}
		}
		groups[i] = group
	}

	undo := g.UndoCount()
	capacity := g.Capacity()
	modeOrdinal := int(g.Mode())

	doc := jsonBoard{
		Groups:        groups,
		UndoCount:     &undo,
		GameMode:      g.Mode().String(),
		Mode:          &modeOrdinal,
		GroupCapacity: &capacity,
		Rows:          &capacity,
		Cols:          len(g.Tubes()),
		Colors:        len(colorSet),
	}
	return json.MarshalIndent(doc, "", "  ")
}

func nodeToJSON(n watersort.Node) (jsonNode, error) {
	jn := jsonNode{OriginalPos: [2]int{n.OriginalPos.Col, n.OriginalPos.Row}}
	switch n.Tag {
	case watersort.NodeKnown:
		jn.NodeType = "."
		jn.Color = n.Color.Hex()
	case watersort.NodeUnknown:
		jn.NodeType = "?"
	case watersort.NodeUnknownRevealed:
		jn.NodeType = "!"
	case watersort.NodeEmpty:
		jn.NodeType = "_"
	default:
		return jsonNode{}, fmt.Errorf("unrecognized node tag %v", n.Tag)
	}
	return jn, nil
}
