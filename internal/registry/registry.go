// Package registry provides the component capability registry consumed by the
// workflow graph compiler. A registry answers one question: given a component
// type id, what are its ports, parameters, and scheduling-relevant flags.
package registry

import (
	"sync"

	"github.com/fmzchao/studio-sub005/internal/ports"
	"github.com/fmzchao/studio-sub005/internal/types"
)

// ResolvedPorts is the result of dynamic port resolution for a node.
type ResolvedPorts struct {
	Inputs  []ports.PortMetadata
	Outputs []ports.PortMetadata
}

// PortResolverFunc recomputes a component's ports from the current parameter
// values of a node. Implementations must be pure; the compiler treats them as
// untrusted and isolates failures to the node being resolved.
type PortResolverFunc func(params map[string]any) (*ResolvedPorts, error)

// ComponentSpec is the static capability description of a component type.
type ComponentSpec struct {
	// ID is the component type id referenced by graph nodes.
	ID string `json:"id" yaml:"id"`

	// Label is the human-readable component name.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Description provides additional context about the component.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// PresentationOnly marks annotation/UI components that must never be
	// scheduled. The compiler filters them out of the executable view.
	PresentationOnly bool `json:"presentation_only,omitempty" yaml:"presentation_only,omitempty"`

	// Entrypoint marks the designated workflow entry component type.
	Entrypoint bool `json:"entrypoint,omitempty" yaml:"entrypoint,omitempty"`

	// Inputs and Outputs are the static port sets.
	Inputs  []ports.PortMetadata `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []ports.PortMetadata `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	// Parameters describes the component's configurable arguments.
	Parameters []ParameterMetadata `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// ResolvePorts, when non-nil, recomputes ports from node parameters.
	// It is code, not data, so it never round-trips through a manifest.
	ResolvePorts PortResolverFunc `json:"-" yaml:"-"`
}

// ParameterMetadata describes one configurable component argument.
type ParameterMetadata struct {
	ID       string         `json:"id" yaml:"id"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty"`
	Required bool           `json:"required,omitempty" yaml:"required,omitempty"`
	DataType ports.PortType `json:"data_type" yaml:"type"`
}

// Validate checks that the component spec is well formed.
func (s *ComponentSpec) Validate() error {
	if s.ID == "" {
		return types.NewError(types.REGISTRY_VALIDATION_FAILED, "component must have an id")
	}
	for _, p := range s.Inputs {
		if err := p.Validate(); err != nil {
			return types.WrapError(types.REGISTRY_VALIDATION_FAILED,
				"component "+s.ID+" has invalid input port", err)
		}
	}
	for _, p := range s.Outputs {
		if err := p.Validate(); err != nil {
			return types.WrapError(types.REGISTRY_VALIDATION_FAILED,
				"component "+s.ID+" has invalid output port", err)
		}
	}
	for _, p := range s.Parameters {
		if p.ID == "" {
			return types.NewError(types.REGISTRY_VALIDATION_FAILED,
				"component "+s.ID+" has a parameter without an id")
		}
	}
	return nil
}

// ComponentRegistry is the capability lookup interface the compiler depends
// on. Implementations must be safe for concurrent reads.
type ComponentRegistry interface {
	// Get retrieves a component spec by type id.
	// The second return value reports whether the component is known.
	Get(componentType string) (*ComponentSpec, bool)

	// List returns all registered component specs in registration order.
	List() []*ComponentSpec
}

// StaticRegistry is an in-memory ComponentRegistry populated by Register calls
// or from a YAML manifest. It uses a sync.RWMutex for thread-safe access.
type StaticRegistry struct {
	mu    sync.RWMutex
	specs map[string]*ComponentSpec
	order []string
}

// NewStaticRegistry creates an empty StaticRegistry.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		specs: make(map[string]*ComponentSpec),
	}
}

// Register adds a component spec to the registry.
// Returns an error if the spec is invalid or the id is already registered.
func (r *StaticRegistry) Register(spec *ComponentSpec) error {
	if spec == nil {
		return types.NewError(types.REGISTRY_VALIDATION_FAILED, "component spec cannot be nil")
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[spec.ID]; exists {
		return types.NewErrorf(types.REGISTRY_COMPONENT_EXISTS,
			"component %q is already registered", spec.ID)
	}

	r.specs[spec.ID] = spec
	r.order = append(r.order, spec.ID)
	return nil
}

// Get retrieves a component spec by type id.
func (r *StaticRegistry) Get(componentType string) (*ComponentSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[componentType]
	return spec, ok
}

// List returns all registered component specs in registration order.
func (r *StaticRegistry) List() []*ComponentSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ComponentSpec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.specs[id])
	}
	return out
}
