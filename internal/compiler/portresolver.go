package compiler

import (
	"fmt"
	"log/slog"

	"github.com/fmzchao/studio-sub005/internal/graph"
	"github.com/fmzchao/studio-sub005/internal/ports"
	"github.com/fmzchao/studio-sub005/internal/registry"
)

// nodePorts is the effective input/output port set of one node: the
// component's static metadata, or the dynamically resolved set when the
// component recomputes ports from the node's parameters.
type nodePorts struct {
	inputs  []ports.PortMetadata
	outputs []ports.PortMetadata
}

// resolveNodePorts returns the effective port set for a node. When the
// component exposes a port resolver it is invoked with the node's current
// params; any error or panic from that callback is isolated to this node:
// the failure is logged, recorded as a warning, and the static metadata is
// used. A single misbehaving component must not abort compilation of the
// whole graph.
func resolveNodePorts(node graph.Node, spec *registry.ComponentSpec, logger *slog.Logger, warnings *[]ValidationIssue) nodePorts {
	static := nodePorts{inputs: spec.Inputs, outputs: spec.Outputs}

	if spec.ResolvePorts == nil {
		return static
	}

	resolved, err := callPortResolver(spec, node.Data.Config.Params)
	if err != nil {
		logger.Warn("dynamic port resolution failed, falling back to static ports",
			"node", node.ID,
			"component", spec.ID,
			"error", err)
		*warnings = append(*warnings, ValidationIssue{
			Node:       node.ID,
			Field:      "ports",
			Message:    fmt.Sprintf("dynamic port resolution for component %q failed: %v", spec.ID, err),
			Suggestion: "static port metadata was used for this node",
		})
		return static
	}

	return nodePorts{inputs: resolved.Inputs, outputs: resolved.Outputs}
}

// callPortResolver invokes the component's port resolver, converting panics
// into errors. The callback is untrusted code.
func callPortResolver(spec *registry.ComponentSpec, params map[string]any) (result *registry.ResolvedPorts, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("port resolver panicked: %v", r)
		}
	}()

	result, err = spec.ResolvePorts(params)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("port resolver returned no ports")
	}
	return result, nil
}
