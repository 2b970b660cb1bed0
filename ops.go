package watersort

// Ops enumerates the legal operations from g, memoized on first call.
func (g *Game) Ops() []Operation {
	if g.opsCache != nil {
		return g.opsCache
	}
	g.opsCache = g.computeOps()
	return g.opsCache
}

func (g *Game) computeOps() []Operation {
	ops := []Operation{}

	destCandidates := destinations(g.tubes, g.capacity)

	for src, srcTube := range g.tubes {
		if len(srcTube) == 0 || srcTube.isCompleted(g.capacity) {
			continue
		}
		item, ok := operativeItem(srcTube, g.mode)
		if !ok {
			continue
		}

		dedicated := -1
		matches := []int{}
		for _, dst := range destCandidates {
			if dst == src {
				continue
			}
			dstTube := g.tubes[dst]

			if item.Tag == NodeKnown && len(dstTube) > 0 && dstTube.isUniformColor() {
				if top, _ := dstTube.top(); top.Color == item.Color {
					dedicated = dst
					break
				}
			}
			if len(dstTube) == 0 {
				if item.Tag == NodeKnown && srcTube.isUniformColor() {
					continue
				}
				matches = append(matches, dst)
				continue
			}
			if top, ok := dstTube.top(); ok && top.Tag == NodeKnown && item.Tag == NodeKnown && top.Color == item.Color {
				matches = append(matches, dst)
			}
		}

		if dedicated != -1 {
			ops = append(ops, StepForward(src, dedicated))
			continue
		}
		for _, dst := range matches {
			ops = append(ops, StepForward(src, dst))
		}
	}

	if g.containsUnknown && g.previous != nil && g.undoCount > 0 {
		ops = append(ops, Undo)
	}

	return ops
}

// destinations returns the indices eligible as pour destinations: every
// non-full tube, except that of the empty tubes only the first encountered
// is kept (all empty tubes are interchangeable).
func destinations(tubes []Tube, capacity int) []int {
	out := []int{}
	seenEmpty := false
	for i, t := range tubes {
		if len(t) >= capacity {
			continue
		}
		if len(t) == 0 {
			if seenEmpty {
				continue
			}
			seenEmpty = true
		}
		out = append(out, i)
	}
	return out
}

// operativeItem returns the unit a move would consume from t under mode:
// the top in NORMAL/NO_COMBO, the bottom in QUEUE.
func operativeItem(t Tube, mode Mode) (Node, bool) {
	if mode == QUEUE {
		return t.bottom()
	}
	return t.top()
}
