// Package ports defines the port type algebra used by the workflow graph
// compiler. A port type is a small closed sum: a named primitive, a list of a
// contained type, a map over a contained value type, or a named contract that
// is opaque to the compiler beyond name equality.
package ports

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the variants of the PortType sum.
type Kind string

const (
	KindPrimitive Kind = "primitive"
	KindList      Kind = "list"
	KindMap       Kind = "map"
	KindContract  Kind = "contract"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is a valid enum value.
func (k Kind) IsValid() bool {
	switch k {
	case KindPrimitive, KindList, KindMap, KindContract:
		return true
	default:
		return false
	}
}

// PrimitiveName identifies one of the primitive port types.
type PrimitiveName string

const (
	PrimitiveText    PrimitiveName = "text"
	PrimitiveNumber  PrimitiveName = "number"
	PrimitiveBoolean PrimitiveName = "boolean"
	PrimitiveSecret  PrimitiveName = "secret"
	PrimitiveFile    PrimitiveName = "file"
	PrimitiveJSON    PrimitiveName = "json"
	PrimitiveAny     PrimitiveName = "any"
)

// String returns the string representation of the PrimitiveName.
func (p PrimitiveName) String() string {
	return string(p)
}

// IsValid checks if the PrimitiveName is a valid enum value.
func (p PrimitiveName) IsValid() bool {
	switch p {
	case PrimitiveText, PrimitiveNumber, PrimitiveBoolean, PrimitiveSecret,
		PrimitiveFile, PrimitiveJSON, PrimitiveAny:
		return true
	default:
		return false
	}
}

// AllPrimitiveNames returns a slice containing all valid PrimitiveName values.
func AllPrimitiveNames() []PrimitiveName {
	return []PrimitiveName{
		PrimitiveText,
		PrimitiveNumber,
		PrimitiveBoolean,
		PrimitiveSecret,
		PrimitiveFile,
		PrimitiveJSON,
		PrimitiveAny,
	}
}

// ParsePrimitiveName parses a string into a PrimitiveName, returning an error if invalid.
func ParsePrimitiveName(s string) (PrimitiveName, error) {
	p := PrimitiveName(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid primitive type name: %s", s)
	}
	return p, nil
}

// PortType is the closed sum type over port types. Exactly one variant is
// populated, selected by Kind:
//
//   - KindPrimitive: Name is set
//   - KindList: Element is set
//   - KindMap: Value is set
//   - KindContract: Contract is set
type PortType struct {
	Kind     Kind
	Name     PrimitiveName
	Contract string
	Element  *PortType
	Value    *PortType
}

// Primitive constructs a primitive port type.
func Primitive(name PrimitiveName) PortType {
	return PortType{Kind: KindPrimitive, Name: name}
}

// List constructs a list port type over the given element type.
func List(element PortType) PortType {
	return PortType{Kind: KindList, Element: &element}
}

// MapOf constructs a map port type over the given value type.
func MapOf(value PortType) PortType {
	return PortType{Kind: KindMap, Value: &value}
}

// Contract constructs a named contract port type.
func Contract(name string) PortType {
	return PortType{Kind: KindContract, Contract: name}
}

// Any returns the universal primitive type.
func Any() PortType {
	return Primitive(PrimitiveAny)
}

// IsAny reports whether the type is the universal primitive.
func (t PortType) IsAny() bool {
	return t.Kind == KindPrimitive && t.Name == PrimitiveAny
}

// Validate checks the structural integrity of the port type: a valid kind,
// exactly the variant field for that kind set, and contained types valid
// recursively.
func (t PortType) Validate() error {
	switch t.Kind {
	case KindPrimitive:
		if !t.Name.IsValid() {
			return fmt.Errorf("invalid primitive type name: %s", t.Name)
		}
		return nil
	case KindList:
		if t.Element == nil {
			return fmt.Errorf("list type must have an element type")
		}
		return t.Element.Validate()
	case KindMap:
		if t.Value == nil {
			return fmt.Errorf("map type must have a value type")
		}
		return t.Value.Validate()
	case KindContract:
		if t.Contract == "" {
			return fmt.Errorf("contract type must have a name")
		}
		return nil
	default:
		return fmt.Errorf("invalid port type kind: %q", t.Kind)
	}
}

// String renders the type in a compact human-readable form, e.g.
// "text", "list<number>", "map<contract:github>".
func (t PortType) String() string {
	switch t.Kind {
	case KindPrimitive:
		return string(t.Name)
	case KindList:
		if t.Element == nil {
			return "list<?>"
		}
		return fmt.Sprintf("list<%s>", t.Element.String())
	case KindMap:
		if t.Value == nil {
			return "map<?>"
		}
		return fmt.Sprintf("map<%s>", t.Value.String())
	case KindContract:
		return "contract:" + t.Contract
	default:
		return "invalid"
	}
}

// Equal reports exact structural equality between two port types.
func (t PortType) Equal(other PortType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Name == other.Name
	case KindContract:
		return t.Contract == other.Contract
	case KindList:
		if t.Element == nil || other.Element == nil {
			return t.Element == other.Element
		}
		return t.Element.Equal(*other.Element)
	case KindMap:
		if t.Value == nil || other.Value == nil {
			return t.Value == other.Value
		}
		return t.Value.Equal(*other.Value)
	default:
		return false
	}
}

// portTypeWire is the object form of a port type on the wire.
type portTypeWire struct {
	Kind     Kind          `json:"kind" yaml:"kind"`
	Name     PrimitiveName `json:"name,omitempty" yaml:"name,omitempty"`
	Contract string        `json:"contract,omitempty" yaml:"contract,omitempty"`
	Element  *PortType     `json:"element,omitempty" yaml:"element,omitempty"`
	Value    *PortType     `json:"value,omitempty" yaml:"value,omitempty"`
}

// parseScalar interprets the scalar shorthand for a port type: a primitive
// name ("text") or a contract reference ("contract:github").
func parseScalar(s string) (PortType, error) {
	if name, ok := strings.CutPrefix(s, "contract:"); ok {
		if name == "" {
			return PortType{}, fmt.Errorf("contract type must have a name")
		}
		return Contract(name), nil
	}
	name, err := ParsePrimitiveName(s)
	if err != nil {
		return PortType{}, err
	}
	return Primitive(name), nil
}

// MarshalJSON implements the json.Marshaler interface.
// Primitive and contract types serialize to their scalar shorthand; list and
// map types serialize to the object form.
func (t PortType) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	switch t.Kind {
	case KindPrimitive, KindContract:
		return json.Marshal(t.String())
	default:
		return json.Marshal(portTypeWire{
			Kind:    t.Kind,
			Element: t.Element,
			Value:   t.Value,
		})
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Accepts both the scalar shorthand and the object form.
func (t *PortType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := parseScalar(s)
		if perr != nil {
			return perr
		}
		*t = parsed
		return nil
	}

	var wire portTypeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("port type must be a string shorthand or an object: %w", err)
	}

	parsed := PortType{
		Kind:     wire.Kind,
		Name:     wire.Name,
		Contract: wire.Contract,
		Element:  wire.Element,
		Value:    wire.Value,
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (t PortType) MarshalYAML() (any, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	switch t.Kind {
	case KindPrimitive, KindContract:
		return t.String(), nil
	default:
		return portTypeWire{
			Kind:    t.Kind,
			Element: t.Element,
			Value:   t.Value,
		}, nil
	}
}

// UnmarshalYAML implements custom YAML unmarshaling to handle both the scalar
// shorthand and the object form.
func (t *PortType) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		parsed, perr := parseScalar(s)
		if perr != nil {
			return perr
		}
		*t = parsed
		return nil
	}

	var wire portTypeWire
	if err := unmarshal(&wire); err != nil {
		return fmt.Errorf("port type must be a string shorthand or an object: %w", err)
	}

	parsed := PortType{
		Kind:     wire.Kind,
		Name:     wire.Name,
		Contract: wire.Contract,
		Element:  wire.Element,
		Value:    wire.Value,
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*t = parsed
	return nil
}
