package ports

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPortType_String(t *testing.T) {
	tests := []struct {
		name string
		typ  PortType
		want string
	}{
		{"primitive", Primitive(PrimitiveText), "text"},
		{"any", Any(), "any"},
		{"contract", Contract("github"), "contract:github"},
		{"list", List(Primitive(PrimitiveNumber)), "list<number>"},
		{"map", MapOf(Contract("zoom")), "map<contract:zoom>"},
		{"nested", List(MapOf(Primitive(PrimitiveJSON))), "list<map<json>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestPortType_Validate(t *testing.T) {
	tests := []struct {
		name      string
		typ       PortType
		expectErr bool
	}{
		{"valid primitive", Primitive(PrimitiveBoolean), false},
		{"invalid primitive name", PortType{Kind: KindPrimitive, Name: "integer"}, true},
		{"valid contract", Contract("github"), false},
		{"contract without name", PortType{Kind: KindContract}, true},
		{"list without element", PortType{Kind: KindList}, true},
		{"map without value", PortType{Kind: KindMap}, true},
		{"invalid kind", PortType{Kind: "tuple"}, true},
		{"nested invalid element", List(PortType{Kind: KindPrimitive, Name: "float"}), true},
		{"valid nested", MapOf(List(Primitive(PrimitiveSecret))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPortType_Equal(t *testing.T) {
	assert.True(t, Primitive(PrimitiveText).Equal(Primitive(PrimitiveText)))
	assert.False(t, Primitive(PrimitiveText).Equal(Primitive(PrimitiveNumber)))
	assert.True(t, List(Contract("github")).Equal(List(Contract("github"))))
	assert.False(t, List(Contract("github")).Equal(MapOf(Contract("github"))))
}

func TestPortType_JSONRoundTrip(t *testing.T) {
	tests := []PortType{
		Primitive(PrimitiveText),
		Any(),
		Contract("github"),
		List(Primitive(PrimitiveNumber)),
		MapOf(List(Contract("http_response"))),
	}

	for _, typ := range tests {
		t.Run(typ.String(), func(t *testing.T) {
			data, err := json.Marshal(typ)
			require.NoError(t, err)

			var decoded PortType
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.True(t, typ.Equal(decoded), "round trip changed %s into %s", typ, decoded)
		})
	}
}

func TestPortType_JSONScalarShorthand(t *testing.T) {
	var typ PortType
	require.NoError(t, json.Unmarshal([]byte(`"text"`), &typ))
	assert.True(t, Primitive(PrimitiveText).Equal(typ))

	require.NoError(t, json.Unmarshal([]byte(`"contract:github"`), &typ))
	assert.True(t, Contract("github").Equal(typ))

	assert.Error(t, json.Unmarshal([]byte(`"integer"`), &typ))
	assert.Error(t, json.Unmarshal([]byte(`"contract:"`), &typ))
}

func TestPortType_YAMLForms(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want PortType
	}{
		{"scalar primitive", `type: number`, Primitive(PrimitiveNumber)},
		{"scalar contract", `type: contract:zoom`, Contract("zoom")},
		{
			"object list",
			"type:\n  kind: list\n  element: text",
			List(Primitive(PrimitiveText)),
		},
		{
			"object map with nested contract",
			"type:\n  kind: map\n  value: contract:github",
			MapOf(Contract("github")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var holder struct {
				Type PortType `yaml:"type"`
			}
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &holder))
			assert.True(t, tt.want.Equal(holder.Type), "parsed %s, want %s", holder.Type, tt.want)
		})
	}
}

func TestPortMetadata_Validate(t *testing.T) {
	valid := PortMetadata{ID: "url", DataType: Primitive(PrimitiveText)}
	assert.NoError(t, valid.Validate())

	missing := PortMetadata{DataType: Primitive(PrimitiveText)}
	assert.Error(t, missing.Validate())

	badPriority := PortMetadata{ID: "url", DataType: Primitive(PrimitiveText), ValuePriority: "edge-first"}
	assert.Error(t, badPriority.Validate())

	badType := PortMetadata{ID: "url", DataType: PortType{Kind: KindList}}
	assert.Error(t, badType.Validate())
}

func TestFindPort(t *testing.T) {
	list := []PortMetadata{
		{ID: "a", DataType: Primitive(PrimitiveText)},
		{ID: "b", DataType: Primitive(PrimitiveNumber)},
	}

	require.NotNil(t, FindPort(list, "b"))
	assert.Equal(t, "b", FindPort(list, "b").ID)
	assert.Nil(t, FindPort(list, "missing"))
}
