package compiler

import (
	"github.com/fmzchao/studio-sub005/internal/graph"
)

// depGraph is the dependency structure of the executable view in arena form:
// plain slices indexed by the dense node index, no shared maps across stages.
type depGraph struct {
	// inDegree counts distinct incoming dependency edges per node.
	inDegree []int

	// adjacency lists successor indices per node, deduplicated, in first-seen
	// edge order.
	adjacency [][]int

	// edgesByTarget lists every incoming edge per node in declaration order,
	// parallel edges included; input mapping consumes them all.
	edgesByTarget [][]graph.Edge
}

// buildDependencyGraph derives adjacency and in-degree from the retained
// edges. Any edge endpoint that does not name an executable node is a fatal
// UnknownNodeReference, raised before sorting.
func buildDependencyGraph(view *executableView) (*depGraph, *CompileError) {
	n := len(view.nodes)
	dg := &depGraph{
		inDegree:      make([]int, n),
		adjacency:     make([][]int, n),
		edgesByTarget: make([][]graph.Edge, n),
	}

	type pair struct{ from, to int }
	seen := make(map[pair]bool, len(view.edges))

	for _, edge := range view.edges {
		from, ok := view.index[edge.Source]
		if !ok {
			err := newError(ErrCodeUnknownNodeReference,
				"edge %q references non-existent source node %q", edge.ID, edge.Source)
			err.Suggestion = "remove the edge or fix the node id"
			return nil, err
		}
		to, ok := view.index[edge.Target]
		if !ok {
			err := newError(ErrCodeUnknownNodeReference,
				"edge %q references non-existent target node %q", edge.ID, edge.Target)
			err.Suggestion = "remove the edge or fix the node id"
			return nil, err
		}

		dg.edgesByTarget[to] = append(dg.edgesByTarget[to], edge)

		// Parallel edges between the same pair count once for ordering.
		p := pair{from, to}
		if seen[p] {
			continue
		}
		seen[p] = true
		dg.adjacency[from] = append(dg.adjacency[from], to)
		dg.inDegree[to]++
	}

	return dg, nil
}
