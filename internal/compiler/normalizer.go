package compiler

import (
	"github.com/fmzchao/studio-sub005/internal/graph"
	"github.com/fmzchao/studio-sub005/internal/registry"
)

// executableView is the compilation view of a graph: presentation-only nodes
// removed, remaining nodes addressed by a dense index assigned in declaration
// order. The underlying graph is never mutated.
type executableView struct {
	// nodes holds the executable nodes in declaration order.
	nodes []graph.Node

	// index maps node id to its dense index in nodes.
	index map[string]int

	// edges holds the retained edges in declaration order.
	edges []graph.Edge

	// warnings collects edges dropped because they touched a
	// presentation-only node; the semantic validator surfaces them.
	warnings []ValidationIssue
}

// normalize builds the executable view. Nodes whose component is known and
// marked presentation-only are filtered out together with their edges. Nodes
// with an unknown component type are kept: the unknown-component check raises
// a clear error downstream instead of silently dropping work.
func normalize(g *graph.Graph, reg registry.ComponentRegistry) *executableView {
	view := &executableView{
		index: make(map[string]int),
	}

	presentational := make(map[string]bool)
	for _, node := range g.Nodes {
		if spec, ok := reg.Get(node.Type); ok && spec.PresentationOnly {
			presentational[node.ID] = true
			continue
		}
		view.index[node.ID] = len(view.nodes)
		view.nodes = append(view.nodes, node)
	}

	for _, edge := range g.Edges {
		if presentational[edge.Source] || presentational[edge.Target] {
			view.warnings = append(view.warnings, ValidationIssue{
				Node:    edge.Target,
				Field:   "edges",
				Message: "edge " + edge.ID + " references a presentation-only node and was dropped",
			})
			continue
		}
		view.edges = append(view.edges, edge)
	}

	return view
}

// checkComponents verifies that every executable node references a registered
// component type. This runs immediately after normalization so later stages
// can assume specs exist for all nodes.
func checkComponents(view *executableView, reg registry.ComponentRegistry) (map[string]*registry.ComponentSpec, *CompileError) {
	specs := make(map[string]*registry.ComponentSpec)
	for _, node := range view.nodes {
		spec, ok := reg.Get(node.Type)
		if !ok {
			err := newError(ErrCodeUnknownComponent,
				"component type %q is not registered", node.Type)
			err.NodeID = node.ID
			err.Suggestion = "register the component or fix the node's type reference"
			return nil, err
		}
		specs[node.Type] = spec
	}
	return specs, nil
}
