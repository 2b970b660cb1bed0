package watersort

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// ToDot renders the post-processor's dependency DAG for the given solved
// path as Graphviz DOT text. Producing the DOT text is the in-scope
// boundary for the external graph-visualization collaborator; rendering it
// to an image is out of scope.
func ToDot(solved *SearchState) (string, error) {
	if len(solved.Path) == 0 {
		return "", fmt.Errorf("no steps to render")
	}
	chain := reconstructChain(solved.Game)
	dag := buildDependencyDAG(chain, solved.Path)
	dag.transitiveReduce()

	graph := gographviz.NewGraph()
	if err := graph.SetName("watersort_plan"); err != nil {
		return "", err
	}
	if err := graph.SetDir(true); err != nil {
		return "", err
	}

	if err := graph.AddNode("watersort_plan", dagSource, map[string]string{"shape": "doublecircle"}); err != nil {
		return "", err
	}
	if err := graph.AddNode("watersort_plan", dagSink, map[string]string{"shape": "doublecircle"}); err != nil {
		return "", err
	}
	for i, m := range dag.steps {
		label := fmt.Sprintf(`"%d: %s"`, i+1, stepString(m.src, m.dst))
		if err := graph.AddNode("watersort_plan", stepNode(i), map[string]string{"label": label}); err != nil {
			return "", err
		}
	}

	for u, succs := range dag.edges {
		for v := range succs {
			if err := graph.AddEdge(u, v, true, nil); err != nil {
				return "", err
			}
		}
	}

	return graph.String(), nil
}
