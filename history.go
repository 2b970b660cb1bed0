package watersort

// reconstructChain walks the previous-state back-pointers from final to
// the root and returns the chain in forward (root-first) order, so index
// i is the Game that step i's operation was applied to.
func reconstructChain(final *Game) []*Game {
	var reversed []*Game
	for g := final; g != nil; g = g.previous {
		reversed = append(reversed, g)
	}
	chain := make([]*Game, len(reversed))
	for i, g := range reversed {
		chain[len(reversed)-1-i] = g
	}
	return chain
}
