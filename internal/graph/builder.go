package graph

import (
	"fmt"

	"github.com/fmzchao/studio-sub005/internal/types"
)

// Builder provides a fluent API for constructing graphs programmatically.
// It accumulates errors during building and reports them all at Build() time.
type Builder struct {
	graph  *Graph
	seen   map[string]bool
	errors []error
}

// NewGraph creates a new Builder with an initialized graph.
func NewGraph(name string) *Builder {
	return &Builder{
		graph: &Graph{
			ID:    types.NewID(),
			Name:  name,
			Nodes: []Node{},
			Edges: []Edge{},
		},
		seen: make(map[string]bool),
	}
}

// WithDescription sets the description for the graph.
func (b *Builder) WithDescription(desc string) *Builder {
	b.graph.Description = desc
	return b
}

// AddNode adds a node referencing the given component type.
// If a node with the same ID already exists, an error is accumulated.
func (b *Builder) AddNode(id, componentType string) *Builder {
	return b.AddConfiguredNode(Node{ID: id, Type: componentType})
}

// AddNodeWithParams adds a node with component parameters.
func (b *Builder) AddNodeWithParams(id, componentType string, params map[string]any) *Builder {
	return b.AddConfiguredNode(Node{
		ID:   id,
		Type: componentType,
		Data: NodeData{Config: NodeConfig{Params: params}},
	})
}

// AddConfiguredNode adds a fully specified node to the graph.
func (b *Builder) AddConfiguredNode(node Node) *Builder {
	if node.ID == "" {
		b.errors = append(b.errors, fmt.Errorf("node must have an ID"))
		return b
	}
	if node.Type == "" {
		b.errors = append(b.errors, fmt.Errorf("node %q must have a component type", node.ID))
		return b
	}
	if b.seen[node.ID] {
		b.errors = append(b.errors, fmt.Errorf("node with ID %q already exists", node.ID))
		return b
	}
	b.seen[node.ID] = true
	b.graph.Nodes = append(b.graph.Nodes, node)
	return b
}

// AddEdge adds a directed edge between two nodes without port handles.
// An edge id is derived from the endpoints.
func (b *Builder) AddEdge(source, target string) *Builder {
	return b.Connect(source, "", target, "")
}

// Connect adds a directed edge from an output port handle on the source node
// to an input port handle on the target node. Empty handles are allowed; the
// compiler applies its handle fallback rules.
func (b *Builder) Connect(source, sourceHandle, target, targetHandle string) *Builder {
	if source == "" {
		b.errors = append(b.errors, fmt.Errorf("edge must have a non-empty source node"))
		return b
	}
	if target == "" {
		b.errors = append(b.errors, fmt.Errorf("edge must have a non-empty target node"))
		return b
	}

	edge := Edge{
		ID:           fmt.Sprintf("e%d-%s-%s", len(b.graph.Edges)+1, source, target),
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
	}

	b.graph.Edges = append(b.graph.Edges, edge)
	return b
}

// Build returns the constructed graph or the accumulated errors.
// Edge endpoints are checked against the node set here so programmatic
// mistakes surface before compilation.
func (b *Builder) Build() (*Graph, error) {
	if len(b.graph.Nodes) == 0 {
		b.errors = append(b.errors, fmt.Errorf("graph must have at least one node"))
	}

	for _, edge := range b.graph.Edges {
		if !b.seen[edge.Source] {
			b.errors = append(b.errors, fmt.Errorf("edge %q references non-existent source node %q", edge.ID, edge.Source))
		}
		if !b.seen[edge.Target] {
			b.errors = append(b.errors, fmt.Errorf("edge %q references non-existent target node %q", edge.ID, edge.Target))
		}
	}

	if len(b.errors) > 0 {
		return nil, fmt.Errorf("graph validation failed with %d error(s): %v", len(b.errors), b.errors)
	}

	return b.graph, nil
}
