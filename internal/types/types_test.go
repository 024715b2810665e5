package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.NoError(t, id.Validate())
	assert.False(t, id.IsZero())
	assert.NotEqual(t, id, NewID())
}

func TestParseID(t *testing.T) {
	valid := NewID().String()

	id, err := ParseID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.String())

	_, err = ParseID("")
	assert.Error(t, err)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}

func TestID_JSONRoundTrip(t *testing.T) {
	id := NewID()

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded ID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	var zero ID
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var invalid ID
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &invalid))
}

func TestStudioError(t *testing.T) {
	cause := NewError(GRAPH_PARSE_FAILED, "bad document")
	wrapped := WrapError(GRAPH_LOAD_FAILED, "failed to load graph", cause)

	assert.Contains(t, wrapped.Error(), "GRAPH_LOAD_FAILED")
	assert.Contains(t, wrapped.Error(), "bad document")
	assert.Equal(t, cause, wrapped.Unwrap())

	assert.True(t, IsCode(wrapped, GRAPH_LOAD_FAILED))
	assert.False(t, IsCode(wrapped, GRAPH_PARSE_FAILED))
	assert.False(t, IsCode(nil, GRAPH_LOAD_FAILED))
}

func TestStudioError_Formatting(t *testing.T) {
	plain := NewErrorf(REGISTRY_COMPONENT_EXISTS, "component %q is already registered", "x")
	assert.Equal(t, `[REGISTRY_COMPONENT_EXISTS] component "x" is already registered`, plain.Error())
}
