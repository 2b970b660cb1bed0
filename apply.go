package watersort

// ApplyOp returns the Game that results from applying op to g. It does not
// validate op against g.Ops(): a solved path gets reordered by the
// post-processor into an order that can fall outside the symmetry-broken
// set Ops() enumerates at any given intermediate state, even though every
// individual move stays physically sound. The only operations ApplyOp
// rejects are Undo with no predecessor and a StepForward whose source tube
// is empty.
func (g *Game) ApplyOp(op Operation) (*Game, error) {
	if op.IsUndo {
		return g.applyUndo()
	}
	return g.applyStepForward(op.Src, op.Dst)
}

func (g *Game) applyStepForward(src, dst int) (*Game, error) {
	newTubes := make([]Tube, len(g.tubes))
	copy(newTubes, g.tubes)
	srcTube := g.tubes[src].clone()
	dstTube := g.tubes[dst].clone()

	item, ok := operativeItem(srcTube, g.mode)
	if !ok {
		return nil, ErrInvalidOperation
	}

	switch item.Tag {
	case NodeUnknownRevealed:
		srcTube, dstTube = moveOne(srcTube, dstTube, g.mode)
	case NodeKnown:
		switch g.mode {
		case NOCOMBO:
			srcTube, dstTube = moveOne(srcTube, dstTube, g.mode)
		case NORMAL:
			for len(srcTube) > 0 && len(dstTube) < g.capacity {
				top, _ := srcTube.top()
				if top.Tag != NodeKnown || top.Color != item.Color {
					break
				}
				srcTube, dstTube = moveOne(srcTube, dstTube, g.mode)
			}
		case QUEUE:
			for len(srcTube) > 0 && len(dstTube) < g.capacity {
				bottom, _ := srcTube.bottom()
				if bottom.Tag != NodeKnown || bottom.Color != item.Color {
					break
				}
				srcTube, dstTube = moveOne(srcTube, dstTube, g.mode)
			}
		}
	default:
		// A raw UNKNOWN operative item moves nowhere; only the reveal
		// step below may still fire, turning the peek into a reveal.
	}

	newTubes[src] = srcTube
	newTubes[dst] = dstTube

	var revealedAt *Pos
	if len(srcTube) > 0 {
		top, _ := srcTube.top()
		if top.Tag == NodeUnknown {
			pos := top.OriginalPos
			srcTube[len(srcTube)-1] = NewUnknownRevealedNode(pos)
			newTubes[src] = srcTube
			revealedAt = &pos
		}
	}

	successor := g.withTubes(newTubes)
	successor.previous = g
	successor.allRevealed = copyRevealedSet(g.allRevealed)
	if revealedAt != nil {
		successor.allRevealed[*revealedAt] = struct{}{}
		successor.revealedNew = true
	}
	return successor, nil
}

// moveOne pops the operative end of src (top, or bottom under QUEUE) and
// appends it to the top of dst.
func moveOne(src, dst Tube, mode Mode) (Tube, Tube) {
	if mode == QUEUE {
		n := src[0]
		src = src[1:]
		dst = append(dst, n)
		return src, dst
	}
	n := src[len(src)-1]
	src = src[:len(src)-1]
	dst = append(dst, n)
	return src, dst
}

func (g *Game) applyUndo() (*Game, error) {
	if g.previous == nil {
		return nil, ErrInvalidOperation
	}

	prevTubes := make([]Tube, len(g.previous.tubes))
	for i, t := range g.previous.tubes {
		nt := t.clone()
		for j, n := range nt {
			if _, revealed := g.allRevealed[n.OriginalPos]; revealed {
				nt[j] = NewUnknownRevealedNode(n.OriginalPos)
			}
		}
		prevTubes[i] = nt
	}

	reconstructed, err := NewGame(prevTubes, g.capacity, g.mode, g.undoCount-1)
	if err != nil {
		return nil, err
	}
	reconstructed.previous = g.previous.previous
	reconstructed.allRevealed = copyRevealedSet(g.allRevealed)
	return reconstructed, nil
}

func copyRevealedSet(src map[Pos]struct{}) map[Pos]struct{} {
	out := make(map[Pos]struct{}, len(src))
	for k := range src {
		out[k] = struct{}{}
	}
	return out
}
