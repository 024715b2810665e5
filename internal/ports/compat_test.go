package ports

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatible_Primitives(t *testing.T) {
	tests := []struct {
		name   string
		source PortType
		target PortType
		want   bool
	}{
		{"equal names", Primitive(PrimitiveText), Primitive(PrimitiveText), true},
		{"different names without coercion", Primitive(PrimitiveText), Primitive(PrimitiveNumber), false},
		{"number coerces to text", Primitive(PrimitiveNumber), Primitive(PrimitiveText), true},
		{"boolean coerces to text", Primitive(PrimitiveBoolean), Primitive(PrimitiveText), true},
		{"text does not coerce to number", Primitive(PrimitiveText), Primitive(PrimitiveNumber), false},
		{"text coerces to json", Primitive(PrimitiveText), Primitive(PrimitiveJSON), true},
		{"text coerces to secret", Primitive(PrimitiveText), Primitive(PrimitiveSecret), true},
		{"secret does not coerce to text", Primitive(PrimitiveSecret), Primitive(PrimitiveText), false},
		{"file only accepts file", Primitive(PrimitiveText), Primitive(PrimitiveFile), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compatible(tt.source, tt.target))
		})
	}
}

func TestCompatible_AnyIsUniversalBothDirections(t *testing.T) {
	others := []PortType{
		Primitive(PrimitiveText),
		Primitive(PrimitiveNumber),
		List(Primitive(PrimitiveText)),
		MapOf(Primitive(PrimitiveJSON)),
		Contract("github"),
	}

	for _, other := range others {
		t.Run(other.String(), func(t *testing.T) {
			assert.True(t, Compatible(Any(), other))
			assert.True(t, Compatible(other, Any()))
		})
	}
}

func TestCompatible_Contracts(t *testing.T) {
	assert.True(t, Compatible(Contract("github"), Contract("github")))
	assert.False(t, Compatible(Contract("github"), Contract("zoom")))
}

func TestCompatible_ListsAndMaps(t *testing.T) {
	tests := []struct {
		name   string
		source PortType
		target PortType
		want   bool
	}{
		{"list of text to list of text", List(Primitive(PrimitiveText)), List(Primitive(PrimitiveText)), true},
		{"list of text to list of number", List(Primitive(PrimitiveText)), List(Primitive(PrimitiveNumber)), false},
		{"list element coercion applies", List(Primitive(PrimitiveNumber)), List(Primitive(PrimitiveText)), true},
		{"list of any element", List(Primitive(PrimitiveAny)), List(Contract("github")), true},
		{"map over same value", MapOf(Primitive(PrimitiveJSON)), MapOf(Primitive(PrimitiveJSON)), true},
		{"map value mismatch", MapOf(Primitive(PrimitiveNumber)), MapOf(Primitive(PrimitiveBoolean)), false},
		{"nested list of maps", List(MapOf(Contract("github"))), List(MapOf(Contract("github"))), true},
		{"nested contract mismatch", List(MapOf(Contract("github"))), List(MapOf(Contract("zoom"))), false},
		{"list to map is incompatible", List(Primitive(PrimitiveText)), MapOf(Primitive(PrimitiveText)), false},
		{"primitive to list is incompatible", Primitive(PrimitiveText), List(Primitive(PrimitiveText)), false},
		{"contract to primitive is incompatible", Contract("github"), Primitive(PrimitiveText), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compatible(tt.source, tt.target))
		})
	}
}

// Compatibility is anchored on the target's coercion set, so the relation is
// not symmetric. Assert that explicitly rather than leaving it implied.
func TestCompatible_IsAsymmetric(t *testing.T) {
	asymmetric := []struct {
		source PortType
		target PortType
	}{
		{Primitive(PrimitiveNumber), Primitive(PrimitiveText)},
		{Primitive(PrimitiveText), Primitive(PrimitiveJSON)},
		{Primitive(PrimitiveText), Primitive(PrimitiveSecret)},
		{List(Primitive(PrimitiveNumber)), List(Primitive(PrimitiveText))},
	}

	for _, pair := range asymmetric {
		name := fmt.Sprintf("%s->%s", pair.source, pair.target)
		t.Run(name, func(t *testing.T) {
			assert.True(t, Compatible(pair.source, pair.target))
			assert.False(t, Compatible(pair.target, pair.source))
		})
	}
}
