package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	g, err := NewGraph("recon pipeline").
		WithDescription("scan then analyze").
		AddNode("trigger", "trigger.manual").
		AddNodeWithParams("scan", "scanner.nmap", map[string]any{"target": "10.0.0.0/24"}).
		Connect("trigger", "payload", "scan", "target").
		Build()

	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "recon pipeline", g.Name)
	assert.Equal(t, "scan then analyze", g.Description)
	assert.NoError(t, g.ID.Validate())
	assert.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "trigger", g.Edges[0].Source)
	assert.Equal(t, "payload", g.Edges[0].SourceHandle)
	assert.Equal(t, "target", g.Edges[0].TargetHandle)
}

func TestBuilder_AccumulatesErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Graph, error)
	}{
		{
			"empty graph",
			func() (*Graph, error) { return NewGraph("empty").Build() },
		},
		{
			"node without id",
			func() (*Graph, error) { return NewGraph("g").AddNode("", "x").Build() },
		},
		{
			"node without type",
			func() (*Graph, error) { return NewGraph("g").AddNode("a", "").Build() },
		},
		{
			"duplicate node id",
			func() (*Graph, error) {
				return NewGraph("g").AddNode("a", "x").AddNode("a", "y").Build()
			},
		},
		{
			"edge to unknown node",
			func() (*Graph, error) {
				return NewGraph("g").AddNode("a", "x").AddEdge("a", "ghost").Build()
			},
		},
		{
			"edge with empty endpoint",
			func() (*Graph, error) {
				return NewGraph("g").AddNode("a", "x").AddEdge("", "a").Build()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.build()
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}
}

func TestBuilder_ReportsAllErrorsAtOnce(t *testing.T) {
	_, err := NewGraph("g").
		AddNode("", "x").
		AddNode("a", "").
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s)")
}

func TestGraph_Accessors(t *testing.T) {
	g, err := NewGraph("g").
		AddNode("a", "x").
		AddNode("b", "y").
		AddNode("c", "z").
		AddEdge("a", "c").
		AddEdge("b", "c").
		Build()
	require.NoError(t, err)

	require.NotNil(t, g.GetNode("b"))
	assert.Equal(t, "y", g.GetNode("b").Type)
	assert.Nil(t, g.GetNode("ghost"))

	assert.Equal(t, []string{"a", "b", "c"}, g.NodeIDs())

	into := g.EdgesInto("c")
	require.Len(t, into, 2)
	assert.Equal(t, "a", into[0].Source)
	assert.Equal(t, "b", into[1].Source)
	assert.Empty(t, g.EdgesInto("a"))
}
