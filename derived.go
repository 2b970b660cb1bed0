package watersort

import (
	"fmt"
	"sort"
	"strings"
)

// StructuralKey returns the order-independent, position-aware hash key
// described in §4.3: each tube contributes an ordered node descriptor
// string (KNOWN nodes fold to color only; hidden nodes keep their original
// position), and the per-tube strings are sorted before joining so tube
// order never affects the result.
func (g *Game) StructuralKey() string {
	if g.structuralKeyCache != nil {
		return *g.structuralKeyCache
	}
	tubeKeys := make([]string, len(g.tubes))
	for i, t := range g.tubes {
		var b strings.Builder
		for j, n := range t {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(nodeDescriptor(n))
		}
		tubeKeys[i] = b.String()
	}
	sort.Strings(tubeKeys)
	key := strings.Join(tubeKeys, "|")
	g.structuralKeyCache = &key
	return key
}

func nodeDescriptor(n Node) string {
	switch n.Tag {
	case NodeKnown:
		return "K" + n.Color.Hex()
	case NodeUnknown:
		return fmt.Sprintf("U%d,%d", n.OriginalPos.Col, n.OriginalPos.Row)
	case NodeUnknownRevealed:
		return fmt.Sprintf("R%d,%d", n.OriginalPos.Col, n.OriginalPos.Row)
	default:
		return "E"
	}
}

// IsWinningState reports whether every tube is either empty or completed.
func (g *Game) IsWinningState() bool {
	if g.isWinningCache != nil {
		return *g.isWinningCache
	}
	result := true
	for _, t := range g.tubes {
		if len(t) == 0 {
			continue
		}
		if !t.isCompleted(g.capacity) {
			result = false
			break
		}
	}
	g.isWinningCache = &result
	return result
}

// UnknownCount counts remaining raw UNKNOWN nodes across the board.
func (g *Game) UnknownCount() int {
	if g.unknownCountCache != nil {
		return *g.unknownCountCache
	}
	c := 0
	for _, t := range g.tubes {
		for _, n := range t {
			if n.Tag == NodeUnknown {
				c++
			}
		}
	}
	g.unknownCountCache = &c
	return c
}

// UnknownRevealedNodes returns the coordinates of every UNKNOWN_REVEALED
// node on the board, located by tube index and height measured down from
// the tube's top slot (capacity-1-index), whether or not that slot is
// filled.
func (g *Game) UnknownRevealedNodes() []RevealedCoord {
	if g.unknownRevealedNodesCache != nil {
		return g.unknownRevealedNodesCache
	}
	var result []RevealedCoord
	for groupNum, t := range g.tubes {
		for nodeIndex, n := range t {
			if n.Tag == NodeUnknownRevealed {
				result = append(result, RevealedCoord{
					Group:         groupNum,
					HeightFromTop: g.capacity - nodeIndex - 1,
				})
			}
		}
	}
	g.unknownRevealedNodesCache = result
	return result
}

// UnknownRevealedCount is the number of UNKNOWN_REVEALED nodes on the
// board.
func (g *Game) UnknownRevealedCount() int {
	if g.unknownRevealedCountCache != nil {
		return *g.unknownRevealedCountCache
	}
	c := len(g.UnknownRevealedNodes())
	g.unknownRevealedCountCache = &c
	return c
}

// IsMeaningfulState reports whether the move producing g just revealed a
// slot and some UNKNOWN_REVEALED node is still visible.
func (g *Game) IsMeaningfulState() bool {
	if g.isMeaningfulCache != nil {
		return *g.isMeaningfulCache
	}
	result := false
	if g.revealedNew {
		for _, t := range g.tubes {
			for _, n := range t {
				if n.Tag == NodeUnknownRevealed {
					result = true
					break
				}
			}
			if result {
				break
			}
		}
	}
	g.isMeaningfulCache = &result
	return result
}

// Segments counts maximal same-color KNOWN runs, plus one per UNKNOWN or
// UNKNOWN_REVEALED node, across every tube.
func (g *Game) Segments() int {
	if g.segmentsCache != nil {
		return *g.segmentsCache
	}
	total := 0
	for _, t := range g.tubes {
		var last Node
		for i, n := range t {
			switch {
			case i == 0:
				total++
			case last.Tag != n.Tag:
				total++
			case n.Tag == NodeUnknown || n.Tag == NodeUnknownRevealed:
				total++
			case n.Color != last.Color:
				total++
			}
			last = n
		}
	}
	g.segmentsCache = &total
	return total
}

// CompletedGroupCount counts completed tubes.
func (g *Game) CompletedGroupCount() int {
	if g.completedGroupCountCache != nil {
		return *g.completedGroupCountCache
	}
	c := 0
	for _, t := range g.tubes {
		if t.isCompleted(g.capacity) {
			c++
		}
	}
	g.completedGroupCountCache = &c
	return c
}

// HeuristicValue returns the (segments, completed_group_count) structural
// tuple used as the tail of the search priority.
func (g *Game) HeuristicValue() Heuristic {
	if g.heuristicCache != nil {
		return *g.heuristicCache
	}
	h := Heuristic{Segments: g.Segments(), CompletedGroupCount: g.CompletedGroupCount()}
	g.heuristicCache = &h
	return h
}

// RevealableInOne counts enumerated operations whose successor state just
// revealed a slot.
func (g *Game) RevealableInOne() int {
	if g.revealableInOneCache != nil {
		return *g.revealableInOneCache
	}
	c := 0
	for _, op := range g.Ops() {
		if op.IsUndo {
			continue
		}
		succ, err := g.ApplyOp(op)
		if err != nil {
			continue
		}
		if succ.revealedNew {
			c++
		}
	}
	g.revealableInOneCache = &c
	return c
}
