package watersort

import (
	"fmt"
	"sort"
)

const (
	dagSource = "s"
	dagSink   = "t"
)

// stepMeta is the data the post-processor attaches to each step node: the
// move itself, the color it poured, and the color newly exposed at the
// source tube's top afterward (if any).
type stepMeta struct {
	src, dst          int
	color             Color
	revealingColor    Color
	hasRevealingColor bool
}

// dependencyDAG is the post-processor's per-tube serial-dependency graph:
// one node per step index plus the s/t sentinels.
type dependencyDAG struct {
	steps []stepMeta
	edges map[string]map[string]bool // forward adjacency, deduped
}

func stepNode(i int) string { return fmt.Sprintf("%d", i) }

// buildDependencyDAG implements §4.5's construction rule: each step links
// from the most recent step that touched either of its tubes, or from the
// source sentinel if neither tube had been touched yet. Any step nobody
// depends on links forward to the sink sentinel.
func buildDependencyDAG(chain []*Game, path []Operation) *dependencyDAG {
	d := &dependencyDAG{
		steps: make([]stepMeta, len(path)),
		edges: map[string]map[string]bool{},
	}
	addEdge := func(from, to string) {
		if d.edges[from] == nil {
			d.edges[from] = map[string]bool{}
		}
		d.edges[from][to] = true
	}

	last := make([]int, len(chain[0].Tubes()))
	for j := range last {
		last[j] = -1
	}
	outDegree := map[string]int{}

	for i, op := range path {
		node := stepNode(i)
		before, after := chain[i], chain[i+1]

		hadEdge := false
		if last[op.Src] != -1 {
			addEdge(stepNode(last[op.Src]), node)
			outDegree[stepNode(last[op.Src])]++
			hadEdge = true
		}
		if last[op.Dst] != -1 {
			addEdge(stepNode(last[op.Dst]), node)
			outDegree[stepNode(last[op.Dst])]++
			hadEdge = true
		}
		if !hadEdge {
			addEdge(dagSource, node)
			outDegree[dagSource]++
		}
		last[op.Src] = i
		last[op.Dst] = i

		item, _ := operativeItem(before.Tubes()[op.Src], before.Mode())
		meta := stepMeta{src: op.Src, dst: op.Dst, color: item.Color}
		if newSrc := after.Tubes()[op.Src]; len(newSrc) > 0 {
			if top, _ := newSrc.top(); top.Tag == NodeKnown {
				meta.revealingColor = top.Color
				meta.hasRevealingColor = true
			}
		}
		d.steps[i] = meta
	}

	for i := range path {
		node := stepNode(i)
		if outDegree[node] == 0 {
			addEdge(node, dagSink)
		}
	}

	return d
}

// allNodes returns every node id present in the DAG.
func (d *dependencyDAG) allNodes() []string {
	set := map[string]bool{dagSource: true, dagSink: true}
	for i := range d.steps {
		set[stepNode(i)] = true
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}

func (d *dependencyDAG) successors(n string) []string {
	succs := make([]string, 0, len(d.edges[n]))
	for s := range d.edges[n] {
		succs = append(succs, s)
	}
	sort.Strings(succs)
	return succs
}

// transitiveReduce removes any edge (u,v) for which some other path from u
// to v already exists, leaving only the direct dependency edges.
func (d *dependencyDAG) transitiveReduce() {
	reachable := map[string]map[string]bool{}
	var descendants func(n string) map[string]bool
	descendants = func(n string) map[string]bool {
		if r, ok := reachable[n]; ok {
			return r
		}
		r := map[string]bool{}
		reachable[n] = r // guard against cycles, none expected in a DAG
		for s := range d.edges[n] {
			r[s] = true
			for d2 := range descendants(s) {
				r[d2] = true
			}
		}
		return r
	}
	for _, n := range d.allNodes() {
		descendants(n)
	}

	for u, succs := range d.edges {
		for v := range succs {
			redundant := false
			for w := range succs {
				if w == v {
					continue
				}
				if reachable[w][v] {
					redundant = true
					break
				}
			}
			if redundant {
				delete(succs, v)
			}
		}
	}
}

func (d *dependencyDAG) indegrees() map[string]int {
	in := map[string]int{}
	for _, n := range d.allNodes() {
		in[n] = 0
	}
	for _, succs := range d.edges {
		for v := range succs {
			in[v]++
		}
	}
	return in
}

// cursor is the mutable replay state the priority topological sort scores
// candidate steps against: the simulated current Game plus the previous
// yielded move's color, revealing color, and touched tubes.
type cursor struct {
	game           *Game
	prevColor      Color
	prevHasColor   bool
	prevReveal     Color
	prevHasReveal  bool
	prevSrc, prevDst int
	havePrev       bool
}

func (c *cursor) score(i int, meta stepMeta) int {
	score := 0
	if simulateCompletes(c.game, meta) {
		score += 8
	}
	if c.havePrev {
		if c.prevHasColor && meta.color == c.prevColor {
			score += 4
		}
		if c.prevHasReveal && meta.color == c.prevReveal {
			score += 2
		}
		if meta.src == c.prevSrc || meta.src == c.prevDst || meta.dst == c.prevSrc || meta.dst == c.prevDst {
			score += 1
		}
	}
	return score
}

// simulateCompletes reports whether applying the step described by meta to
// g (the simulated cursor's current Game) completes its destination tube.
// It replays the move on the immutable Game and inspects the result rather
// than re-deriving the combo rules, so it always agrees with ApplyOp.
func simulateCompletes(g *Game, meta stepMeta) bool {
	next, err := g.ApplyOp(StepForward(meta.src, meta.dst))
	if err != nil {
		return false
	}
	return next.Tubes()[meta.dst].isCompleted(next.Capacity())
}

// applyStep advances the cursor by applying the step's operation and
// recording it as the new "previous move" for subsequent scoring.
func (c *cursor) applyStep(i int, meta stepMeta) error {
	next, err := c.game.ApplyOp(StepForward(meta.src, meta.dst))
	if err != nil {
		return err
	}
	c.game = next
	c.prevColor, c.prevHasColor = meta.color, true
	c.prevReveal, c.prevHasReveal = meta.revealingColor, meta.hasRevealingColor
	c.prevSrc, c.prevDst = meta.src, meta.dst
	c.havePrev = true
	return nil
}

// priorityTopoSort performs the streamed Kahn's-algorithm traversal from
// §4.5: the source sentinel always goes first when available, otherwise
// the zero-indegree node with the highest score (ties broken by original
// step order) is chosen next.
func priorityTopoSort(d *dependencyDAG, start *Game) ([]int, error) {
	indeg := d.indegrees()
	zero := map[string]bool{}
	for n, deg := range indeg {
		if deg == 0 {
			zero[n] = true
		}
	}

	cur := &cursor{game: start}
	order := []int{}
	total := len(d.allNodes())
	processed := 0

	for processed < total {
		var pick string
		switch {
		case zero[dagSource]:
			pick = dagSource
		default:
			bestScore := -2
			bestIndex := -1
			for n := range zero {
				idx, score := nodeRank(d, cur, n)
				if score > bestScore || (score == bestScore && idx < bestIndex) {
					bestScore = score
					bestIndex = idx
					pick = n
				}
			}
		}
		if pick == "" {
			return nil, fmt.Errorf("priority topological sort stalled: cycle in dependency graph")
		}

		delete(zero, pick)
		processed++

		if pick != dagSource && pick != dagSink {
			var idx int
			fmt.Sscanf(pick, "%d", &idx)
			meta := d.steps[idx]
			if err := cur.applyStep(idx, meta); err != nil {
				return nil, err
			}
			order = append(order, idx)
		}

		for _, succ := range d.successors(pick) {
			indeg[succ]--
			if indeg[succ] == 0 {
				zero[succ] = true
			}
		}
	}

	return order, nil
}

// nodeRank returns (stability index, score) for a zero-indegree node; the
// sentinels score fixed low so real steps are always preferred while any
// remain.
func nodeRank(d *dependencyDAG, cur *cursor, n string) (int, int) {
	if n == dagSink {
		return 1 << 30, -1
	}
	var idx int
	fmt.Sscanf(n, "%d", &idx)
	return idx, cur.score(idx, d.steps[idx])
}

// PostProcess rebuilds solved's path in the prioritized topological order
// and returns a new SearchState over the same final Game.
func PostProcess(solved *SearchState) (*SearchState, error) {
	if len(solved.Path) == 0 {
		return solved, nil
	}
	chain := reconstructChain(solved.Game)
	start := chain[0]

	dag := buildDependencyDAG(chain, solved.Path)
	dag.transitiveReduce()

	order, err := priorityTopoSort(dag, start)
	if err != nil {
		return nil, err
	}

	newPath := make([]Operation, len(order))
	for i, stepIdx := range order {
		m := dag.steps[stepIdx]
		newPath[i] = StepForward(m.src, m.dst)
	}

	return &SearchState{Game: solved.Game, Path: newPath, instanceID: solved.instanceID}, nil
}
