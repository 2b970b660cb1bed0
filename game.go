package watersort

import (
	"fmt"
)

// Mode selects the pour semantics a Game enforces.
type Mode int

const (
	NORMAL Mode = iota
	NOCOMBO
	QUEUE
)

func (m Mode) String() string {
	switch m {
	case NORMAL:
		return "NORMAL"
	case NOCOMBO:
		return "NO_COMBO"
	case QUEUE:
		return "QUEUE"
	default:
		return "NORMAL"
	}
}

// ModeFromString parses a mode name, falling open to NORMAL on anything it
// doesn't recognize (the board JSON adapter relies on this fail-open rule).
func ModeFromString(s string) Mode {
	switch s {
	case "NO_COMBO":
		return NOCOMBO
	case "QUEUE":
		return QUEUE
	case "NORMAL":
		return NORMAL
	default:
		return NORMAL
	}
}

// ModeFromInt parses a mode ordinal, falling open to NORMAL for anything
// outside {0,1,2}.
func ModeFromInt(n int) Mode {
	switch n {
	case 1:
		return NOCOMBO
	case 2:
		return QUEUE
	default:
		return NORMAL
	}
}

// Game is an immutable board: an ordered sequence of Tubes, a capacity
// shared by all of them, a pour Mode, a remaining Undo budget, the set of
// original positions revealed anywhere along the forward history leading
// here, and an owning back-pointer to the state this one was derived from.
//
// Derived attributes (structural key, segments, heuristic, ...) are
// computed lazily and cached on first access; since Games run
// single-threaded there is no synchronization around the cache fields.
type Game struct {
	tubes           []Tube
	capacity        int
	mode            Mode
	undoCount       int
	containsUnknown bool
	previous        *Game
	allRevealed     map[Pos]struct{}
	revealedNew     bool

	structuralKeyCache        *string
	isWinningCache            *bool
	unknownCountCache         *int
	unknownRevealedCountCache *int
	unknownRevealedNodesCache []RevealedCoord
	segmentsCache             *int
	completedGroupCountCache  *int
	heuristicCache            *Heuristic
	isMeaningfulCache         *bool
	revealableInOneCache      *int
	opsCache                  []Operation
}

// RevealedCoord locates an UNKNOWN_REVEALED node by tube index and its
// height measured down from the tube's top slot (capacity-1-index), not
// from its current top node.
type RevealedCoord struct {
	Group         int
	HeightFromTop int
}

// Heuristic is the priority tuple's structural component: the segment
// count, then the completed-tube count. SearchState's ordering compares
// both ascending, so fewer of either sorts first.
type Heuristic struct {
	Segments            int
	CompletedGroupCount int
}

// NewGame validates raw tubes against the construction invariants in §3 of
// the data model and, on success, returns a freshly rooted Game (no
// predecessor, empty reveal set). Trailing EMPTY nodes in each raw tube are
// trimmed before validation; an EMPTY node left under a non-empty one is an
// InvalidBoard violation, not silently dropped.
func NewGame(rawTubes []Tube, capacity int, mode Mode, undoCount int) (*Game, error) {
	if capacity <= 0 {
		return nil, newInvalidBoard(fmt.Errorf("capacity must be positive, got %d", capacity))
	}

	var violations []error
	tubes := make([]Tube, len(rawTubes))
	for i, raw := range rawTubes {
		canon, err := canonicalizeTube(raw)
		if err != nil {
			violations = append(violations, fmt.Errorf("tube %d: %w", i, err))
			continue
		}
		tubes[i] = canon
	}
	if len(violations) > 0 {
		return nil, newInvalidBoard(violations...)
	}

	colorCounts := map[Color]int{}
	total := 0
	containsUnknown := false
	for i, t := range tubes {
		if len(t) > capacity {
			violations = append(violations, fmt.Errorf("tube %d has length %d > capacity %d", i, len(t), capacity))
		}
		for _, n := range t {
			switch n.Tag {
			case NodeKnown:
				colorCounts[n.Color]++
				total++
			case NodeUnknown, NodeUnknownRevealed:
				total++
				containsUnknown = true
			case NodeEmpty:
				violations = append(violations, fmt.Errorf("tube %d: unexpected EMPTY node after canonicalization", i))
			}
		}
	}
	for c, count := range colorCounts {
		if count > capacity {
			violations = append(violations, fmt.Errorf("color %s appears %d times, exceeds capacity %d", c.Hex(), count, capacity))
		}
	}
	if total%capacity != 0 {
		violations = append(violations, fmt.Errorf("total unit count %d is not a multiple of capacity %d", total, capacity))
	}
	if len(violations) > 0 {
		return nil, newInvalidBoard(violations...)
	}

	return &Game{
		tubes:           tubes,
		capacity:        capacity,
		mode:            mode,
		undoCount:       undoCount,
		containsUnknown: containsUnknown,
		allRevealed:     map[Pos]struct{}{},
	}, nil
}

func canonicalizeTube(raw Tube) (Tube, error) {
	end := len(raw)
	for end > 0 && raw[end-1].Tag == NodeEmpty {
		end--
	}
	trimmed := raw[:end]
	for _, n := range trimmed {
		if n.Tag == NodeEmpty {
			return nil, fmt.Errorf("EMPTY node at %v lies below a non-empty node", n.OriginalPos)
		}
	}
	return trimmed.clone(), nil
}

// Tubes returns the board's tubes. Callers must not mutate the returned
// slice or its Tube elements; Games are shared structurally.
func (g *Game) Tubes() []Tube { return g.tubes }

// Capacity returns the per-tube capacity.
func (g *Game) Capacity() int { return g.capacity }

// Mode returns the pour semantics in force.
func (g *Game) Mode() Mode { return g.mode }

// UndoCount returns the remaining Undo budget.
func (g *Game) UndoCount() int { return g.undoCount }

// ContainsUnknown reports whether any tube holds an UNKNOWN or
// UNKNOWN_REVEALED node.
func (g *Game) ContainsUnknown() bool { return g.containsUnknown }

// Previous returns the Game this one was derived from via a forward move,
// or nil if this is a root state.
func (g *Game) Previous() *Game { return g.previous }

// RevealedNew reports whether the move producing this Game revealed at
// least one previously-UNKNOWN slot.
func (g *Game) RevealedNew() bool { return g.revealedNew }

// AllRevealed returns the set of original positions revealed anywhere
// along the forward history leading to this Game.
func (g *Game) AllRevealed() map[Pos]struct{} { return g.allRevealed }

// withTubes returns a shallow copy of g with its tubes replaced; used by
// apply_op to build successor states without disturbing the predecessor.
func (g *Game) withTubes(tubes []Tube) *Game {
	return &Game{
		tubes:           tubes,
		capacity:        g.capacity,
		mode:            g.mode,
		undoCount:       g.undoCount,
		containsUnknown: computeContainsUnknown(tubes),
		allRevealed:     g.allRevealed,
	}
}

func computeContainsUnknown(tubes []Tube) bool {
	for _, t := range tubes {
		for _, n := range t {
			if n.isHidden() {
				return true
			}
		}
	}
	return false
}

// AutoComplete applies the best-effort auto-completion preprocessing step:
// if exactly one color has a partial count and the number of hidden units
// exactly fills that color's remaining quota, every UNKNOWN/UNKNOWN_REVEALED
// node is rewritten to KNOWN(color) and the fully-known board is returned.
// Fails open: any inconsistency leaves g unchanged.
func (g *Game) AutoComplete() *Game {
	if !g.containsUnknown {
		return g
	}

	colorCounts := map[Color]int{}
	hiddenTotal := 0
	for _, t := range g.tubes {
		for _, n := range t {
			switch n.Tag {
			case NodeKnown:
				colorCounts[n.Color]++
			case NodeUnknown, NodeUnknownRevealed:
				hiddenTotal++
			}
		}
	}

	var partial Color
	partialCount := 0
	found := 0
	for c, count := range colorCounts {
		if count > 0 && count < g.capacity {
			found++
			partial = c
			partialCount = count
		}
	}
	if found != 1 || hiddenTotal != g.capacity-partialCount {
		return g
	}

	newTubes := make([]Tube, len(g.tubes))
	for i, t := range g.tubes {
		nt := t.clone()
		for j, n := range nt {
			if n.Tag == NodeUnknown || n.Tag == NodeUnknownRevealed {
				nt[j] = NewKnownNode(n.OriginalPos, partial)
			}
		}
		newTubes[i] = nt
	}

	completed, err := NewGame(newTubes, g.capacity, g.mode, g.undoCount)
	if err != nil {
		return g
	}
	return completed
}
