package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fmzchao/studio-sub005/internal/types"
)

// LoadFile reads a graph document from disk. The format is selected by file
// extension: .json is parsed as JSON, .yaml/.yml (and anything else) as YAML.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.GRAPH_LOAD_FAILED,
			fmt.Sprintf("failed to read graph file %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	default:
		return ParseYAML(data)
	}
}

// ParseYAML parses a YAML graph document.
func ParseYAML(data []byte) (*Graph, error) {
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, types.WrapError(types.GRAPH_PARSE_FAILED, "failed to parse graph YAML", err)
	}

	if err := validateDocument(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ParseJSON parses a JSON graph document, the shape exported by the visual
// editor.
func ParseJSON(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, types.WrapError(types.GRAPH_PARSE_FAILED, "failed to parse graph JSON", err)
	}

	if err := validateDocument(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// validateDocument checks the structural minimum for a loaded graph document.
// Semantic rules (endpoint existence, cycles, required inputs) belong to the
// compiler; this only rejects documents the compiler cannot meaningfully
// report about.
func validateDocument(g *Graph) error {
	if g.Name == "" {
		return types.NewError(types.GRAPH_VALIDATION_FAILED, "graph must have a name")
	}

	seen := make(map[string]bool, len(g.Nodes))
	for i, node := range g.Nodes {
		if node.ID == "" {
			return types.NewErrorf(types.GRAPH_VALIDATION_FAILED, "node at index %d has no id", i)
		}
		if node.Type == "" {
			return types.NewErrorf(types.GRAPH_VALIDATION_FAILED, "node %q has no component type", node.ID)
		}
		if seen[node.ID] {
			return types.NewErrorf(types.GRAPH_VALIDATION_FAILED, "duplicate node id %q", node.ID)
		}
		seen[node.ID] = true
	}

	for i, edge := range g.Edges {
		if edge.Source == "" || edge.Target == "" {
			return types.NewErrorf(types.GRAPH_VALIDATION_FAILED, "edge at index %d is missing an endpoint", i)
		}
	}

	return nil
}
