package compiler

import (
	"fmt"
)

// DefinitionVersion is the wire-contract version stamped on every compiled
// definition. The JSON shape of WorkflowDefinition is consumed by the external
// execution engine and must stay stable within a version value; breaking shape
// changes require a bump.
const DefinitionVersion = "v1"

// SelfHandle is the source handle recorded when an edge carries no explicit
// source handle: the whole output of the source action.
const SelfHandle = "__self__"

// JoinStrategy is a node-level policy governing how the execution engine
// treats multiple converging inputs. The compiler carries it, the engine
// interprets it.
type JoinStrategy string

const (
	JoinAll   JoinStrategy = "all"
	JoinAny   JoinStrategy = "any"
	JoinFirst JoinStrategy = "first"
)

// IsValid checks if the JoinStrategy is a valid enum value.
func (j JoinStrategy) IsValid() bool {
	switch j {
	case JoinAll, JoinAny, JoinFirst:
		return true
	default:
		return false
	}
}

// InputMapping records where a target port receives its value from.
type InputMapping struct {
	// SourceRef is the ref of the action producing the value.
	SourceRef string `json:"sourceRef"`

	// SourceHandle is the output port on the source action, or SelfHandle for
	// the whole output.
	SourceHandle string `json:"sourceHandle"`
}

// WorkflowAction is the compiled, schedulable form of one graph node.
type WorkflowAction struct {
	// Ref is the action reference, equal to the originating node id.
	Ref string `json:"ref"`

	// ComponentID is the component type the action executes.
	ComponentID string `json:"componentId"`

	// Params are the component arguments after override reconciliation.
	Params map[string]any `json:"params,omitempty"`

	// InputOverrides are retained manual port values after reconciliation.
	InputOverrides map[string]any `json:"inputOverrides,omitempty"`

	// DependsOn is the set of distinct edge sources targeting this node, in
	// first-seen edge order.
	DependsOn []string `json:"dependsOn"`

	// InputMappings maps each connected target port to its source.
	InputMappings map[string]InputMapping `json:"inputMappings,omitempty"`
}

// NodeMetadata carries the execution-affecting node-level settings, kept
// separate from component parameters because they drive how the engine
// schedules a node, not what the component receives.
type NodeMetadata struct {
	ComponentID    string         `json:"componentId"`
	Label          string         `json:"label,omitempty"`
	JoinStrategy   JoinStrategy   `json:"joinStrategy,omitempty"`
	StreamID       string         `json:"streamId,omitempty"`
	GroupID        string         `json:"groupId,omitempty"`
	MaxConcurrency *float64       `json:"maxConcurrency,omitempty"`
	Mode           string         `json:"mode,omitempty"`
	ToolConfig     map[string]any `json:"toolConfig,omitempty"`
}

// CompiledEdge is an edge of the executable view, with handle fallbacks
// already applied.
type CompiledEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Entrypoint names the action the execution engine starts from.
type Entrypoint struct {
	Ref string `json:"ref"`
}

// WorkflowDefinition is the ordered, validated artifact handed to the
// execution engine. Actions are topologically sorted: every ref in an
// action's DependsOn appears strictly earlier in the list.
type WorkflowDefinition struct {
	Version          string                  `json:"version"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description,omitempty"`
	Entrypoint       Entrypoint              `json:"entrypoint"`
	Nodes            map[string]NodeMetadata `json:"nodes"`
	Edges            []CompiledEdge          `json:"edges"`
	DependencyCounts map[string]int          `json:"dependencyCounts"`
	Actions          []WorkflowAction        `json:"actions"`
	Config           map[string]any          `json:"config"`
}

// Action returns the action with the given ref, or nil if absent.
func (d *WorkflowDefinition) Action(ref string) *WorkflowAction {
	for i := range d.Actions {
		if d.Actions[i].Ref == ref {
			return &d.Actions[i]
		}
	}
	return nil
}

// CheckInvariants re-verifies the structural invariants of the definition:
// topological action order and dependency count consistency. It exists for
// callers that receive definitions across the wire and for tests.
func (d *WorkflowDefinition) CheckInvariants() error {
	position := make(map[string]int, len(d.Actions))
	for i, action := range d.Actions {
		if _, dup := position[action.Ref]; dup {
			return fmt.Errorf("duplicate action ref %q", action.Ref)
		}
		position[action.Ref] = i
	}

	for i, action := range d.Actions {
		for _, dep := range action.DependsOn {
			pos, ok := position[dep]
			if !ok {
				return fmt.Errorf("action %q depends on unknown ref %q", action.Ref, dep)
			}
			if pos >= i {
				return fmt.Errorf("action %q depends on %q which does not precede it", action.Ref, dep)
			}
		}
		if count, ok := d.DependencyCounts[action.Ref]; !ok || count != len(action.DependsOn) {
			return fmt.Errorf("dependency count for %q is %d, want %d", action.Ref, count, len(action.DependsOn))
		}
	}

	if d.Entrypoint.Ref == "" {
		return fmt.Errorf("definition has no entrypoint ref")
	}
	if _, ok := position[d.Entrypoint.Ref]; !ok {
		return fmt.Errorf("entrypoint ref %q does not name an action", d.Entrypoint.Ref)
	}

	return nil
}
