package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmzchao/studio-sub005/internal/types"
)

const sampleYAML = `
name: phishing triage
description: triage reported emails
nodes:
  - id: trigger
    type: trigger.alert
    data:
      label: Alert received
  - id: enrich
    type: enrich.urlscan
    data:
      config:
        params:
          depth: 2
        inputOverrides:
          url: https://example.test
        joinStrategy: all
        streamId: triage
        maxConcurrency: 4
edges:
  - id: e1
    source: trigger
    target: enrich
    sourceHandle: alert
    targetHandle: url
`

const sampleJSON = `{
  "name": "phishing triage",
  "nodes": [
    {"id": "trigger", "type": "trigger.alert", "data": {}},
    {"id": "enrich", "type": "enrich.urlscan", "data": {"config": {"params": {"depth": 2}}}}
  ],
  "edges": [
    {"id": "e1", "source": "trigger", "target": "enrich", "sourceHandle": "alert", "targetHandle": "url"}
  ]
}`

func TestParseYAML(t *testing.T) {
	g, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "phishing triage", g.Name)
	require.Len(t, g.Nodes, 2)

	enrich := g.GetNode("enrich")
	require.NotNil(t, enrich)
	assert.Equal(t, "enrich.urlscan", enrich.Type)
	assert.Equal(t, 2, enrich.Data.Config.Params["depth"])
	assert.Equal(t, "https://example.test", enrich.Data.Config.InputOverrides["url"])
	assert.Equal(t, "all", enrich.Data.Config.JoinStrategy)
	assert.Equal(t, "triage", enrich.Data.Config.StreamID)
	require.NotNil(t, enrich.Data.Config.MaxConcurrency)
	assert.Equal(t, 4.0, *enrich.Data.Config.MaxConcurrency)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "alert", g.Edges[0].SourceHandle)
	assert.Equal(t, "url", g.Edges[0].TargetHandle)
}

func TestParseJSON(t *testing.T) {
	g, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, "phishing triage", g.Name)
	assert.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "url", g.Edges[0].TargetHandle)

	enrich := g.GetNode("enrich")
	require.NotNil(t, enrich)
	assert.Equal(t, 2.0, enrich.Data.Config.Params["depth"])
}

func TestParse_DocumentValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "nodes:\n  - id: a\n    type: x\n"},
		{"node without id", "name: g\nnodes:\n  - type: x\n"},
		{"node without type", "name: g\nnodes:\n  - id: a\n"},
		{"duplicate node id", "name: g\nnodes:\n  - id: a\n    type: x\n  - id: a\n    type: y\n"},
		{"edge missing endpoint", "name: g\nnodes:\n  - id: a\n    type: x\nedges:\n  - id: e1\n    source: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, types.IsCode(err, types.GRAPH_VALIDATION_FAILED), "unexpected error: %v", err)
		})
	}
}

func TestParse_MalformedDocuments(t *testing.T) {
	_, err := ParseYAML([]byte("nodes: [}"))
	assert.True(t, types.IsCode(err, types.GRAPH_PARSE_FAILED))

	_, err = ParseJSON([]byte("{not json"))
	assert.True(t, types.IsCode(err, types.GRAPH_PARSE_FAILED))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "graph.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))

	jsonPath := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o644))

	g, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)

	g, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, types.IsCode(err, types.GRAPH_LOAD_FAILED))
}
