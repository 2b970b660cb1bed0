package watersort

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderPlan formats a solved SearchState as operator-facing text. A
// winning path is printed one step per line as "src -> dst". A hidden-unit
// run that never reaches a winning state instead walks the path applying
// each step to a cursor Game, printing "Update node at column C, row R"
// immediately after any step whose application reveals a new slot — the
// same point solver_runner.py's solve_and_print diffs unknown_revealed_nodes
// to decide when to ask the operator to fill in a color.
func RenderPlan(start *Game, solved *SearchState) (string, error) {
	if solved.Game.IsWinningState() {
		var b strings.Builder
		for _, op := range solved.Path {
			b.WriteString(op.String())
			b.WriteByte('\n')
		}
		return b.String(), nil
	}

	var b strings.Builder
	b.WriteString("Follow the steps, update the blocks, and run again:\n")

	cursor := start
	for _, op := range solved.Path {
		before := cursor.UnknownRevealedNodes()
		next, err := cursor.ApplyOp(op)
		if err != nil {
			return "", err
		}
		b.WriteString(op.String())
		b.WriteByte('\n')

		if len(next.UnknownRevealedNodes()) > len(before) {
			for _, coord := range newRevealedCoords(before, next.UnknownRevealedNodes()) {
				b.WriteString(fmt.Sprintf("Update node at column %s, row %s\n",
					strconv.Itoa(coord.Group+1), strconv.Itoa(coord.HeightFromTop+1)))
			}
		}
		cursor = next
	}
	return b.String(), nil
}

func newRevealedCoords(before, after []RevealedCoord) []RevealedCoord {
	seen := map[RevealedCoord]bool{}
	for _, c := range before {
		seen[c] = true
	}
	var fresh []RevealedCoord
	for _, c := range after {
		if !seen[c] {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

// stepInfo is the per-step data the batching pass groups on: the move's
// endpoints, the color it poured, and whether it completed its dst tube.
type stepInfo struct {
	src, dst  int
	color     Color
	completes bool
}

// BatchSummaries groups the solved path into human-readable runs per §4.5:
// consecutive same-color/same-dst steps collapse into a "Merge" line,
// consecutive same-src steps into an "Empty" line, and a one-step run is
// printed as "src -> dst"; "(completes tube)" is appended when any step of
// the run completes its destination.
func BatchSummaries(start *Game, path []Operation) ([]string, error) {
	if len(path) == 0 {
		return nil, nil
	}

	infos := make([]stepInfo, len(path))
	cursor := start
	for i, op := range path {
		item, _ := operativeItem(cursor.Tubes()[op.Src], cursor.Mode())
		next, err := cursor.ApplyOp(op)
		if err != nil {
			return nil, err
		}
		infos[i] = stepInfo{
			src:       op.Src,
			dst:       op.Dst,
			color:     item.Color,
			completes: next.Tubes()[op.Dst].isCompleted(next.Capacity()),
		}
		cursor = next
	}

	var summaries []string
	i := 0
	for i < len(infos) {
		mergeEnd := i + 1
		for mergeEnd < len(infos) && infos[mergeEnd].color == infos[i].color && infos[mergeEnd].dst == infos[i].dst {
			mergeEnd++
		}
		emptyEnd := i + 1
		for emptyEnd < len(infos) && infos[emptyEnd].src == infos[i].src {
			emptyEnd++
		}

		var j int
		isMerge := mergeEnd-i >= emptyEnd-i
		if isMerge {
			j = mergeEnd
		} else {
			j = emptyEnd
		}
		run := infos[i:j]

		completesAny := false
		for _, s := range run {
			if s.completes {
				completesAny = true
			}
		}

		var summary string
		switch {
		case len(run) > 1 && isMerge:
			srcs := make([]string, len(run))
			for k, s := range run {
				srcs[k] = strconv.Itoa(s.src + 1)
			}
			summary = fmt.Sprintf("Merge %s from tubes {%s} into tube %d", run[0].color.Hex(), strings.Join(srcs, ", "), run[0].dst+1)
		case len(run) > 1:
			dsts := make([]string, len(run))
			for k, s := range run {
				dsts[k] = strconv.Itoa(s.dst + 1)
			}
			summary = fmt.Sprintf("Empty tube %d into tubes {%s}", run[0].src+1, strings.Join(dsts, ", "))
		default:
			summary = stepString(run[0].src, run[0].dst)
		}
		if completesAny {
			summary += " (completes tube)"
		}
		summaries = append(summaries, summary)
		i = j
	}
	return summaries, nil
}
