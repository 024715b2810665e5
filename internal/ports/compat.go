package ports

// coercions lists, per target primitive, the source primitives a target port
// additionally accepts. The relation is one-way: it is consulted only for the
// target side, so primitive compatibility is not symmetric.
var coercions = map[PrimitiveName]map[PrimitiveName]bool{
	PrimitiveText: {
		PrimitiveNumber:  true,
		PrimitiveBoolean: true,
	},
	PrimitiveJSON: {
		PrimitiveText:    true,
		PrimitiveNumber:  true,
		PrimitiveBoolean: true,
	},
	PrimitiveSecret: {
		PrimitiveText: true,
	},
}

// Compatible reports whether a value produced on a source port can feed a
// target port. The check is recursive over the port type structure:
//
//   - either side being the universal primitive "any" is compatible
//   - two primitives are compatible iff the names are equal, or the target
//     declares the source name in its allowed coercion set
//   - two contracts are compatible iff the names are equal
//   - two lists (maps) are compatible iff their contained types are
//
// Everything else is incompatible. Because coercion is anchored on the target,
// Compatible(a, b) does not imply Compatible(b, a).
func Compatible(source, target PortType) bool {
	if source.IsAny() || target.IsAny() {
		return true
	}

	switch {
	case source.Kind == KindPrimitive && target.Kind == KindPrimitive:
		if source.Name == target.Name {
			return true
		}
		return coercions[target.Name][source.Name]

	case source.Kind == KindContract && target.Kind == KindContract:
		return source.Contract == target.Contract

	case source.Kind == KindList && target.Kind == KindList:
		if source.Element == nil || target.Element == nil {
			return false
		}
		return Compatible(*source.Element, *target.Element)

	case source.Kind == KindMap && target.Kind == KindMap:
		if source.Value == nil || target.Value == nil {
			return false
		}
		return Compatible(*source.Value, *target.Value)

	default:
		return false
	}
}
