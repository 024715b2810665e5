// Package graph models the user-authored workflow graph: nodes referencing
// components, edges connecting port handles, and per-node configuration. A
// Graph is the immutable input to compilation; it carries no execution state.
package graph

import (
	"github.com/fmzchao/studio-sub005/internal/types"
)

// Graph is a user-authored, unordered node/edge description of a pipeline.
type Graph struct {
	// ID is the unique identifier for this graph.
	ID types.ID `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is a human-readable name for the graph.
	Name string `json:"name" yaml:"name"`

	// Description provides additional context about what this graph does.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Nodes contains all nodes in declaration order. Declaration order is
	// meaningful: it seeds deterministic topological ordering.
	Nodes []Node `json:"nodes" yaml:"nodes"`

	// Edges contains all directed edges connecting node port handles.
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a single placed component instance in the graph.
type Node struct {
	// ID is unique within the graph.
	ID string `json:"id" yaml:"id"`

	// Type references a component in the capability registry.
	Type string `json:"type" yaml:"type"`

	// Data carries the editor payload: label and configuration.
	Data NodeData `json:"data" yaml:"data"`
}

// NodeData is the editor-owned payload of a node.
type NodeData struct {
	Label  string     `json:"label,omitempty" yaml:"label,omitempty"`
	Config NodeConfig `json:"config" yaml:"config"`
}

// NodeConfig holds the node's component parameters, manual input values, and
// the scheduling-only settings the compiler lifts into node metadata.
type NodeConfig struct {
	// Params are the component's own arguments.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`

	// InputOverrides are manual values supplied for specific input ports.
	InputOverrides map[string]any `json:"inputOverrides,omitempty" yaml:"inputOverrides,omitempty"`

	// JoinStrategy governs how converging inputs are treated (all|any|first).
	JoinStrategy string `json:"joinStrategy,omitempty" yaml:"joinStrategy,omitempty"`

	// StreamID groups nodes onto a shared execution stream.
	StreamID string `json:"streamId,omitempty" yaml:"streamId,omitempty"`

	// GroupID assigns the node to a scheduling group.
	GroupID string `json:"groupId,omitempty" yaml:"groupId,omitempty"`

	// MaxConcurrency caps parallel executions of this node, when finite.
	MaxConcurrency *float64 `json:"maxConcurrency,omitempty" yaml:"maxConcurrency,omitempty"`

	// Mode is an opaque execution-mode hint passed through to the engine.
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// ToolConfig is opaque tool configuration passed through to the engine.
	ToolConfig map[string]any `json:"toolConfig,omitempty" yaml:"toolConfig,omitempty"`
}

// Edge is a directed connection between two node port handles.
type Edge struct {
	// ID is the unique identifier of the edge within the graph.
	ID string `json:"id" yaml:"id"`

	// Source and Target must each name an existing node id.
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`

	// SourceHandle names the output port on the source node. The editor may
	// omit it for single-output components.
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`

	// TargetHandle names the input port on the target node. When omitted, the
	// source handle is used as the target handle.
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
}

// GetNode retrieves a node by its ID. Returns nil if the node is not found.
func (g *Graph) GetNode(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// NodeIDs returns all node ids in declaration order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for i := range g.Nodes {
		ids = append(ids, g.Nodes[i].ID)
	}
	return ids
}

// EdgesInto returns all edges whose target is the given node id, in
// declaration order.
func (g *Graph) EdgesInto(nodeID string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Target == nodeID {
			edges = append(edges, e)
		}
	}
	return edges
}
