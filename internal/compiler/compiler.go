// Package compiler turns a user-authored workflow graph into a validated,
// topologically ordered workflow definition consumable by the execution
// engine. Compilation is a pure function of (graph, component registry): it
// executes nothing, performs no I/O of its own, and holds no state between
// calls.
//
// The pipeline runs strictly left to right: normalize the graph to its
// executable view, check component references, derive the dependency graph,
// topologically sort it, then per node resolve ports, reconcile inputs, and
// extract scheduling metadata, before validating the entry point and
// assembling the definition. Each stage either produces its output or raises
// a terminal CompileError that unwinds the whole call.
package compiler

import (
	"io"
	"log/slog"

	"github.com/fmzchao/studio-sub005/internal/graph"
	"github.com/fmzchao/studio-sub005/internal/registry"
	"github.com/fmzchao/studio-sub005/internal/types"
)

// Result is the outcome of a successful compile call: the definition plus
// any non-blocking warnings, which are surfaced to the user, never silently
// dropped.
type Result struct {
	Definition *WorkflowDefinition `json:"definition"`
	Warnings   []ValidationIssue   `json:"warnings,omitempty"`
}

// Compiler compiles graphs against a component capability registry.
// A Compiler is stateless across calls and safe for concurrent use.
type Compiler struct {
	logger *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the structured logger used for compile diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Compiler. Without options, diagnostics are discarded.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile is a convenience wrapper around New().Compile.
func Compile(g *graph.Graph, reg registry.ComponentRegistry) (*Result, error) {
	return New().Compile(g, reg)
}

// Compile turns a graph into a workflow definition, or returns a terminal
// *CompileError. The input graph is never mutated; a fresh definition is
// produced on every call so compiled artifacts stay reproducible.
func (c *Compiler) Compile(g *graph.Graph, reg registry.ComponentRegistry) (*Result, error) {
	if g == nil {
		return nil, newError(ErrCodeSemanticValidationFailed, "graph cannot be nil")
	}

	logger := c.logger.With("graph", g.Name, "compile_run", types.NewID().String())
	logger.Debug("compiling graph", "nodes", len(g.Nodes), "edges", len(g.Edges))

	view := normalize(g, reg)
	logger.Debug("normalized graph",
		"executable_nodes", len(view.nodes),
		"retained_edges", len(view.edges))

	specs, cerr := checkComponents(view, reg)
	if cerr != nil {
		return nil, cerr
	}

	dg, cerr := buildDependencyGraph(view)
	if cerr != nil {
		return nil, cerr
	}

	order, cerr := topologicalOrder(view, dg)
	if cerr != nil {
		return nil, cerr
	}

	warnings := append([]ValidationIssue{}, view.warnings...)

	actions := make([]WorkflowAction, 0, len(order))
	metadata := make(map[string]NodeMetadata, len(order))
	portsByRef := make(map[string]nodePorts, len(order))

	for _, idx := range order {
		node := view.nodes[idx]
		spec := specs[node.Type]

		effective := resolveNodePorts(node, spec, logger, &warnings)
		portsByRef[node.ID] = effective

		inputs, cerr := resolveInputs(node, dg.edgesByTarget[idx], effective.inputs)
		if cerr != nil {
			return nil, cerr
		}
		stripReservedParams(inputs.params)

		actions = append(actions, WorkflowAction{
			Ref:            node.ID,
			ComponentID:    node.Type,
			Params:         inputs.params,
			InputOverrides: inputs.inputOverrides,
			DependsOn:      inputs.dependsOn,
			InputMappings:  inputs.inputMappings,
		})
		metadata[node.ID] = compileNodeMetadata(node)
	}

	entry, cerr := resolveEntrypoint(actions, specs)
	if cerr != nil {
		return nil, cerr
	}

	def := assemble(g, view, actions, metadata, entry)

	validation := validateDefinition(def, portsByRef, warnings)
	if !validation.IsValid {
		return nil, aggregateValidationError(validation)
	}

	logger.Debug("compiled definition",
		"actions", len(def.Actions),
		"entrypoint", def.Entrypoint.Ref,
		"warnings", len(validation.Warnings))

	return &Result{
		Definition: def,
		Warnings:   validation.Warnings,
	}, nil
}

// Validate compiles the graph for diagnostics only: it returns the holistic
// validation view without a definition. Terminal pipeline errors are reported
// as a single validation error so callers get a uniform report.
func (c *Compiler) Validate(g *graph.Graph, reg registry.ComponentRegistry) ValidationResult {
	res, err := c.Compile(g, reg)
	if err != nil {
		issue := ValidationIssue{Message: err.Error()}
		if compileErr, ok := err.(*CompileError); ok {
			issue = ValidationIssue{
				Node:       compileErr.NodeID,
				Field:      compileErr.Port,
				Message:    compileErr.Message,
				Suggestion: compileErr.Suggestion,
			}
		}
		return ValidationResult{
			IsValid: false,
			Errors:  []ValidationIssue{issue},
		}
	}

	return ValidationResult{
		IsValid:  true,
		Errors:   []ValidationIssue{},
		Warnings: res.Warnings,
	}
}
