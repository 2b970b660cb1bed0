package watersort

import (
	"github.com/sirupsen/logrus"
)

// discoveryRecord is the closed-set entry: the greatest undo_count seen so
// far at a given structural key. A revisit is only worth expanding if it
// arrives with strictly more undo budget (dominance pruning).
type discoveryRecord struct {
	undoCount int
}

// Solve dispatches to the regime matching start's board: Regime A for
// fully-known boards, Regime B (initial depth 8) otherwise. For
// fully-known NORMAL/NO_COMBO solutions it rewrites the path through the
// post-processor's priority topological order before returning.
func Solve(start *Game) (*SearchState, error) {
	startState := NewSearchState(start, nil)

	var solution *SearchState
	var err error
	if !start.ContainsUnknown() {
		solution, err = solveNoUnknown(startState)
		if err != nil {
			return nil, err
		}
	} else {
		solution = solveWithUnknown(startState, 8)
	}

	if !start.ContainsUnknown() && (start.Mode() == NORMAL || start.Mode() == NOCOMBO) {
		reordered, perr := PostProcess(solution)
		if perr == nil {
			solution = reordered
		}
	}

	return solution, nil
}

// solveNoUnknown is Regime A: best-first search to optimality, pruning any
// path already as long as the best solution found so far.
func solveNoUnknown(start *SearchState) (*SearchState, error) {
	log := logrus.WithField("regime", "no-unknown")
	log.Info("search start")

	open := newOpenSet(start)
	discovered := map[string]discoveryRecord{}
	bestSolutionLength := -1
	searched := 0

	for !open.empty() {
		current := open.popMin()
		if bestSolutionLength >= 0 && len(current.Path) >= bestSolutionLength {
			continue
		}

		key := current.Game.StructuralKey()
		if rec, ok := discovered[key]; ok && rec.undoCount >= current.Game.UndoCount() {
			continue
		}

		searched++
		if current.Game.IsWinningState() {
			log.WithField("nodes_explored", searched).Info("search finished: solved")
			return current, nil
		}

		discovered[key] = discoveryRecord{undoCount: current.Game.UndoCount()}

		for _, op := range current.Game.Ops() {
			succ, err := current.Game.ApplyOp(op)
			if err != nil {
				return nil, err
			}
			newPath := append(append([]Operation{}, current.Path...), op)
			if bestSolutionLength < 0 || len(newPath) < bestSolutionLength {
				open.push(NewSearchState(succ, newPath))
			}
		}
	}

	log.WithField("nodes_explored", searched).Info("search finished: unsolvable")
	return nil, ErrUnsolvable
}

// solveWithUnknown is Regime B: the same search skeleton, but it tracks a
// meaningful candidate state and recurses into a shallower depth whenever
// the search stalls for too long without improving it.
func solveWithUnknown(start *SearchState, depth int) *SearchState {
	log := logrus.WithFields(logrus.Fields{"regime": "with-unknown", "depth": depth})
	log.Info("search start")

	open := newOpenSet(start)
	discovered := map[string]discoveryRecord{}

	var candidate *SearchState
	candidateTime := 0
	searched := 0

	for !open.empty() {
		current := open.popMin()

		key := current.Game.StructuralKey()
		if rec, ok := discovered[key]; ok && rec.undoCount >= current.Game.UndoCount() {
			continue
		}

		searched++

		if depth == 0 {
			if candidate == nil || current.Game.Segments() < candidate.Game.Segments() {
				candidate = current
			}
		} else {
			if current.Game.IsMeaningfulState() {
				switch {
				case candidate == nil:
					if searched > 1 {
						candidate = current
						candidateTime = searched
					}
				case isMoreValuableThan(current, candidate):
					candidate = current
					candidateTime = searched
				}
			}

			if candidateTime > 0 && searched > 2*candidateTime {
				log.WithField("candidate_time", candidateTime).Info("candidate regression: recursing into shallower depth")
				return solveWithUnknown(candidate, depth-1)
			}
		}

		discovered[key] = discoveryRecord{undoCount: current.Game.UndoCount()}

		for _, op := range current.Game.Ops() {
			succ, err := current.Game.ApplyOp(op)
			if err != nil {
				continue
			}
			newPath := append(append([]Operation{}, current.Path...), op)
			open.push(NewSearchState(succ, newPath))
		}
	}

	log.WithField("nodes_explored", searched).Info("search finished: frontier exhausted")
	if candidate != nil {
		return candidate
	}
	return start
}
