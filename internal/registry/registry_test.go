package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmzchao/studio-sub005/internal/ports"
	"github.com/fmzchao/studio-sub005/internal/types"
)

func httpRequestSpec() *ComponentSpec {
	return &ComponentSpec{
		ID:    "http.request",
		Label: "HTTP Request",
		Inputs: []ports.PortMetadata{
			{ID: "url", Label: "URL", Required: true, DataType: ports.Primitive(ports.PrimitiveText)},
			{ID: "headers", Label: "Headers", DataType: ports.MapOf(ports.Primitive(ports.PrimitiveText))},
		},
		Outputs: []ports.PortMetadata{
			{ID: "response", Label: "Response", DataType: ports.Contract("http_response")},
		},
	}
}

func TestStaticRegistry_RegisterAndGet(t *testing.T) {
	reg := NewStaticRegistry()
	require.NoError(t, reg.Register(httpRequestSpec()))

	spec, ok := reg.Get("http.request")
	require.True(t, ok)
	assert.Equal(t, "HTTP Request", spec.Label)

	_, ok = reg.Get("unknown.component")
	assert.False(t, ok)
}

func TestStaticRegistry_RejectsDuplicates(t *testing.T) {
	reg := NewStaticRegistry()
	require.NoError(t, reg.Register(httpRequestSpec()))

	err := reg.Register(httpRequestSpec())
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.REGISTRY_COMPONENT_EXISTS))
}

func TestStaticRegistry_RejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec *ComponentSpec
	}{
		{"nil spec", nil},
		{"missing id", &ComponentSpec{Label: "X"}},
		{
			"invalid input port",
			&ComponentSpec{
				ID:     "x",
				Inputs: []ports.PortMetadata{{DataType: ports.Primitive(ports.PrimitiveText)}},
			},
		},
		{
			"invalid output port type",
			&ComponentSpec{
				ID:      "x",
				Outputs: []ports.PortMetadata{{ID: "out", DataType: ports.PortType{Kind: ports.KindMap}}},
			},
		},
		{
			"parameter without id",
			&ComponentSpec{
				ID:         "x",
				Parameters: []ParameterMetadata{{DataType: ports.Primitive(ports.PrimitiveText)}},
			},
		},
	}

	reg := NewStaticRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.spec)
			require.Error(t, err)
			assert.True(t, types.IsCode(err, types.REGISTRY_VALIDATION_FAILED))
		})
	}
}

func TestStaticRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	reg := NewStaticRegistry()
	require.NoError(t, reg.Register(&ComponentSpec{ID: "b"}))
	require.NoError(t, reg.Register(&ComponentSpec{ID: "a"}))
	require.NoError(t, reg.Register(&ComponentSpec{ID: "c"}))

	var ids []string
	for _, spec := range reg.List() {
		ids = append(ids, spec.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}
