package compiler

import (
	"github.com/fmzchao/studio-sub005/internal/graph"
	"github.com/fmzchao/studio-sub005/internal/ports"
)

// resolvedInputs is the outcome of input mapping and override reconciliation
// for one node.
type resolvedInputs struct {
	params         map[string]any
	inputOverrides map[string]any
	dependsOn      []string
	inputMappings  map[string]InputMapping
}

// resolveInputs merges edge-derived connections with manually supplied values
// for one node.
//
// For every incoming edge, the target handle falls back to the source handle
// when the editor omitted it, and a missing source handle is recorded as
// SelfHandle. When a port is connected and its metadata does not declare
// manual-first priority, the connection wins: the manual value is discarded
// from both params and inputOverrides. Afterwards every required port must be
// satisfied by a mapping or a non-empty manual value.
func resolveInputs(node graph.Node, incoming []graph.Edge, inputPorts []ports.PortMetadata) (*resolvedInputs, *CompileError) {
	out := &resolvedInputs{
		params:         copyValues(node.Data.Config.Params),
		inputOverrides: copyValues(node.Data.Config.InputOverrides),
		dependsOn:      []string{},
		inputMappings:  make(map[string]InputMapping),
	}

	seenSource := make(map[string]bool)
	for _, edge := range incoming {
		targetHandle := edge.TargetHandle
		if targetHandle == "" {
			targetHandle = edge.SourceHandle
		}
		sourceHandle := edge.SourceHandle
		if sourceHandle == "" {
			sourceHandle = SelfHandle
		}

		out.inputMappings[targetHandle] = InputMapping{
			SourceRef:    edge.Source,
			SourceHandle: sourceHandle,
		}

		if !seenSource[edge.Source] {
			seenSource[edge.Source] = true
			out.dependsOn = append(out.dependsOn, edge.Source)
		}
	}

	for _, port := range inputPorts {
		_, connected := out.inputMappings[port.ID]
		if connected && port.ValuePriority != ports.ValuePriorityManualFirst {
			delete(out.params, port.ID)
			delete(out.inputOverrides, port.ID)
		}
	}

	for _, port := range inputPorts {
		if !port.Required {
			continue
		}
		if _, connected := out.inputMappings[port.ID]; connected {
			continue
		}
		if hasManualValue(out.inputOverrides[port.ID]) || hasManualValue(out.params[port.ID]) {
			continue
		}

		err := newError(ErrCodeMissingRequiredInput,
			"required input %q is not satisfied", port.ID)
		err.NodeID = node.ID
		err.Port = port.ID
		err.Suggestion = "provide a manual value or connect a port"
		return nil, err
	}

	return out, nil
}

// hasManualValue reports whether a manually supplied value counts as present.
// Empty strings and nil do not count; other zero values (0, false) do.
func hasManualValue(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// copyValues shallow-copies a value map so reconciliation never mutates the
// caller's graph.
func copyValues(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
