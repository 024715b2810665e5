package compiler

import (
	"math"

	"github.com/fmzchao/studio-sub005/internal/graph"
)

// reservedParamKeys are scheduling-only settings that must never leak into a
// compiled action's params: they affect how the engine schedules a node, not
// the component's own arguments. Editors sometimes mirror them into params.
var reservedParamKeys = []string{
	"joinStrategy",
	"streamId",
	"groupId",
	"maxConcurrency",
	"mode",
	"toolConfig",
}

// compileNodeMetadata extracts the execution-affecting node-level settings
// from a node's config into a per-node metadata record. Invalid values are
// dropped rather than failing the compile: an unknown join strategy, an empty
// stream/group id, or a non-finite concurrency cap simply does not appear.
func compileNodeMetadata(node graph.Node) NodeMetadata {
	cfg := node.Data.Config

	meta := NodeMetadata{
		ComponentID: node.Type,
		Label:       node.Data.Label,
		Mode:        cfg.Mode,
		ToolConfig:  cfg.ToolConfig,
	}

	if strategy := JoinStrategy(cfg.JoinStrategy); strategy.IsValid() {
		meta.JoinStrategy = strategy
	}
	if cfg.StreamID != "" {
		meta.StreamID = cfg.StreamID
	}
	if cfg.GroupID != "" {
		meta.GroupID = cfg.GroupID
	}
	if cfg.MaxConcurrency != nil && isFinite(*cfg.MaxConcurrency) {
		v := *cfg.MaxConcurrency
		meta.MaxConcurrency = &v
	}

	return meta
}

// stripReservedParams removes scheduling-only keys from a compiled params
// map in place.
func stripReservedParams(params map[string]any) {
	for _, key := range reservedParamKeys {
		delete(params, key)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
