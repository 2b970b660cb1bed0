package watersort

// instanceSeq is the process-wide monotonic counter backing SearchState's
// tie-breaker. Single-threaded execution (§5) means no atomic is needed.
var instanceSeq int

// SearchState pairs a Game with the path of Operations that reached it and
// a monotonic instance id used as the last tie-breaker in its total order.
type SearchState struct {
	Game *Game
	Path []Operation

	instanceID int
}

// NewSearchState builds a SearchState and assigns it the next instance id.
func NewSearchState(game *Game, path []Operation) *SearchState {
	s := &SearchState{Game: game, Path: path, instanceID: instanceSeq}
	instanceSeq++
	return s
}

// priority returns the ordered comparison key described in §4.4: for
// boards with hidden units it front-loads reveal progress before falling
// back to the structural heuristic; for fully-known boards it's path
// length then the structural heuristic. Lower sorts first.
func (s *SearchState) priority() []int {
	h := s.Game.HeuristicValue()
	if s.Game.ContainsUnknown() {
		justRevealedPenalty := 1
		if s.Game.RevealedNew() {
			justRevealedPenalty = 0
		}
		return []int{
			-s.Game.UnknownRevealedCount(),
			-s.Game.RevealableInOne(),
			justRevealedPenalty,
			len(s.Path),
			h.Segments,
			h.CompletedGroupCount,
			s.instanceID,
		}
	}
	return []int{
		len(s.Path),
		h.Segments,
		h.CompletedGroupCount,
		s.instanceID,
	}
}

// Less reports whether s sorts before other in the open set's total
// order.
func (s *SearchState) Less(other *SearchState) bool {
	a, b := s.priority(), other.priority()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// isMoreValuableThan implements the candidate-update comparison used by
// Regime B: more revealed units wins outright; ties fall through to more
// immediate reveal options, then shorter path, then fewer segments.
func isMoreValuableThan(a, b *SearchState) bool {
	aCount, bCount := a.Game.UnknownRevealedCount(), b.Game.UnknownRevealedCount()
	if aCount != bCount {
		return aCount > bCount
	}
	aNext, bNext := a.Game.RevealableInOne(), b.Game.RevealableInOne()
	if aNext != bNext {
		return aNext > bNext
	}
	if len(a.Path) != len(b.Path) {
		return len(a.Path) < len(b.Path)
	}
	return a.Game.Segments() < b.Game.Segments()
}
