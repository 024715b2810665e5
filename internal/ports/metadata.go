package ports

import "fmt"

// ValuePriority controls how a manually supplied value for a port interacts
// with an incoming edge connection during compilation.
type ValuePriority string

const (
	// ValuePriorityConnection is the default: when a port is connected, the
	// connection wins and any manual value is discarded.
	ValuePriorityConnection ValuePriority = ""

	// ValuePriorityManualFirst keeps the manual value alongside the connection
	// mapping, letting the execution engine prefer it at runtime.
	ValuePriorityManualFirst ValuePriority = "manual-first"
)

// IsValid checks if the ValuePriority is a valid enum value.
func (p ValuePriority) IsValid() bool {
	switch p {
	case ValuePriorityConnection, ValuePriorityManualFirst:
		return true
	default:
		return false
	}
}

// PortMetadata describes a single named, typed input or output slot on a
// component. Registries return PortMetadata; the compiler never invents ports.
type PortMetadata struct {
	// ID is the port handle, unique within the component and direction.
	ID string `json:"id" yaml:"id"`

	// Label is the human-readable port name shown in the editor.
	Label string `json:"label" yaml:"label"`

	// Required marks input ports that must be satisfied by a connection or a
	// non-empty manual value before the graph compiles.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// DataType is the port's type in the port type algebra.
	DataType PortType `json:"data_type" yaml:"type"`

	// ValuePriority controls manual-value vs connection precedence.
	ValuePriority ValuePriority `json:"value_priority,omitempty" yaml:"value_priority,omitempty"`
}

// Validate checks that the port metadata is well formed.
func (m PortMetadata) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("port must have an id")
	}
	if !m.ValuePriority.IsValid() {
		return fmt.Errorf("port %q has invalid value priority %q", m.ID, m.ValuePriority)
	}
	if err := m.DataType.Validate(); err != nil {
		return fmt.Errorf("port %q has invalid type: %w", m.ID, err)
	}
	return nil
}

// FindPort returns the port with the given id from a port list, or nil.
func FindPort(ports []PortMetadata, id string) *PortMetadata {
	for i := range ports {
		if ports[i].ID == id {
			return &ports[i]
		}
	}
	return nil
}
