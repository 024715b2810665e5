package compiler

import (
	"github.com/fmzchao/studio-sub005/internal/registry"
)

// resolveEntrypoint enforces the entry point policy: exactly one compiled
// action references a component marked as the workflow entry, and that action
// is the first such node in topological order.
//
// Zero entry actions raise MissingEntrypoint. More than one raises
// InvalidEntrypoint naming both the expected and the conflicting component
// ids, because two entry claims produce ambiguous compiled entrypoints.
func resolveEntrypoint(actions []WorkflowAction, specs map[string]*registry.ComponentSpec) (Entrypoint, *CompileError) {
	var entries []WorkflowAction
	for _, action := range actions {
		spec, ok := specs[action.ComponentID]
		if !ok {
			continue
		}
		if spec.Entrypoint {
			entries = append(entries, action)
		}
	}

	if len(entries) == 0 {
		err := newError(ErrCodeMissingEntrypoint,
			"graph has no entry point: no node references an entry component")
		err.Suggestion = "add a node of an entry component type"
		return Entrypoint{}, err
	}

	if len(entries) > 1 {
		err := newError(ErrCodeInvalidEntrypoint,
			"graph has %d entry point candidates: expected a single action of component %q, found another of component %q (ref %q)",
			len(entries), entries[0].ComponentID, entries[1].ComponentID, entries[1].Ref)
		err.NodeID = entries[1].Ref
		err.Suggestion = "keep exactly one entry component node"
		return Entrypoint{}, err
	}

	return Entrypoint{Ref: entries[0].Ref}, nil
}
