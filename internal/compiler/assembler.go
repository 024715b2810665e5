package compiler

import (
	"fmt"
	"strings"

	"github.com/fmzchao/studio-sub005/internal/graph"
	"github.com/fmzchao/studio-sub005/internal/ports"
)

// assemble builds the final WorkflowDefinition from the compiled pieces.
// Actions arrive already in topological order.
func assemble(g *graph.Graph, view *executableView, actions []WorkflowAction, metadata map[string]NodeMetadata, entry Entrypoint) *WorkflowDefinition {
	def := &WorkflowDefinition{
		Version:          DefinitionVersion,
		Title:            g.Name,
		Description:      g.Description,
		Entrypoint:       entry,
		Nodes:            metadata,
		Edges:            make([]CompiledEdge, 0, len(view.edges)),
		DependencyCounts: make(map[string]int, len(actions)),
		Actions:          actions,
		Config:           map[string]any{},
	}

	if !g.ID.IsZero() {
		def.Config["graphId"] = g.ID.String()
	}

	for _, edge := range view.edges {
		def.Edges = append(def.Edges, CompiledEdge{
			ID:           edge.ID,
			Source:       edge.Source,
			Target:       edge.Target,
			SourceHandle: edge.SourceHandle,
			TargetHandle: edge.TargetHandle,
		})
	}

	for _, action := range actions {
		def.DependencyCounts[action.Ref] = len(action.DependsOn)
	}

	return def
}

// validateDefinition is the holistic semantic validator: it re-checks
// cross-cutting rules the per-stage checks do not cover. Errors abort
// compilation; warnings are surfaced alongside a successful result.
func validateDefinition(def *WorkflowDefinition, portsByRef map[string]nodePorts, carried []ValidationIssue) ValidationResult {
	result := ValidationResult{
		Errors:   []ValidationIssue{},
		Warnings: append([]ValidationIssue{}, carried...),
	}

	// Duplicate edge ids corrupt engine-side edge bookkeeping.
	seenEdge := make(map[string]bool, len(def.Edges))
	for _, edge := range def.Edges {
		if seenEdge[edge.ID] {
			result.Errors = append(result.Errors, ValidationIssue{
				Field:      "edges",
				Message:    fmt.Sprintf("duplicate edge id %q", edge.ID),
				Suggestion: "edge ids must be unique within a graph",
			})
			continue
		}
		seenEdge[edge.ID] = true
	}

	// Port-level checks per compiled edge: handle existence and recursive
	// type compatibility between the connected ports.
	for _, edge := range def.Edges {
		result.checkEdgePorts(edge, portsByRef)
	}

	// A join strategy on a node with fewer than two dependencies is legal but
	// almost certainly a leftover from an edited graph.
	for ref, meta := range def.Nodes {
		if meta.JoinStrategy != "" && def.DependencyCounts[ref] < 2 {
			result.Warnings = append(result.Warnings, ValidationIssue{
				Node:       ref,
				Field:      "joinStrategy",
				Message:    fmt.Sprintf("join strategy %q has no effect with %d converging input(s)", meta.JoinStrategy, def.DependencyCounts[ref]),
				Suggestion: "remove the join strategy or connect more inputs",
			})
		}
	}

	// The entrypoint must be a topological root.
	if entry := def.Action(def.Entrypoint.Ref); entry != nil && len(entry.DependsOn) > 0 {
		result.Errors = append(result.Errors, ValidationIssue{
			Node:       entry.Ref,
			Field:      "entrypoint",
			Message:    "entry point has incoming dependencies",
			Suggestion: "the entry component must not be the target of any edge",
		})
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// checkEdgePorts validates one edge against the effective port sets of its
// endpoints. Unknown handles degrade to warnings (dynamic components may
// expose ports the registry cannot see); a type mismatch between two known
// ports is an error.
func (r *ValidationResult) checkEdgePorts(edge CompiledEdge, portsByRef map[string]nodePorts) {
	sourcePorts, sourceKnown := portsByRef[edge.Source]
	targetPorts, targetKnown := portsByRef[edge.Target]
	if !sourceKnown || !targetKnown {
		return
	}

	targetHandle := edge.TargetHandle
	if targetHandle == "" {
		targetHandle = edge.SourceHandle
	}

	var sourceType *ports.PortType
	if edge.SourceHandle != "" {
		port := ports.FindPort(sourcePorts.outputs, edge.SourceHandle)
		if port == nil {
			r.Warnings = append(r.Warnings, ValidationIssue{
				Node:    edge.Source,
				Field:   "sourceHandle",
				Message: fmt.Sprintf("edge %q references unknown output port %q", edge.ID, edge.SourceHandle),
			})
		} else {
			sourceType = &port.DataType
		}
	}

	var targetType *ports.PortType
	if targetHandle != "" {
		port := ports.FindPort(targetPorts.inputs, targetHandle)
		if port == nil {
			r.Warnings = append(r.Warnings, ValidationIssue{
				Node:    edge.Target,
				Field:   "targetHandle",
				Message: fmt.Sprintf("edge %q references unknown input port %q", edge.ID, targetHandle),
			})
		} else {
			targetType = &port.DataType
		}
	}

	if sourceType != nil && targetType != nil && !ports.Compatible(*sourceType, *targetType) {
		r.Errors = append(r.Errors, ValidationIssue{
			Node:  edge.Target,
			Field: targetHandle,
			Message: fmt.Sprintf("port %q of type %s cannot accept %s from %s.%s",
				targetHandle, targetType.String(), sourceType.String(), edge.Source, edge.SourceHandle),
			Suggestion: "connect a port of a compatible type or insert a conversion component",
		})
	}
}

// aggregateValidationError folds every validator error into a single terminal
// CompileError, one line per error.
func aggregateValidationError(result ValidationResult) *CompileError {
	lines := make([]string, 0, len(result.Errors))
	for _, issue := range result.Errors {
		lines = append(lines, issue.String())
	}
	return newError(ErrCodeSemanticValidationFailed,
		"definition failed semantic validation with %d error(s):\n%s",
		len(result.Errors), strings.Join(lines, "\n"))
}
