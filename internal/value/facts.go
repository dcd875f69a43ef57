package value

import "strings"

// Facts is the top-level string-keyed mapping evaluated by rules and
// carried through the agent pipeline. It is always a map, never an array,
// at the root.
type Facts map[string]Value

// FromMap builds a Facts value from a generic JSON-decoded map, converting
// every nested value via FromAny.
func FromMap(m map[string]any) Facts {
	f := make(Facts, len(m))
	for k, v := range m {
		f[k] = FromAny(v)
	}
	return f
}

// ToMap converts Facts back into plain Go types.
func (f Facts) ToMap() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v.ToAny()
	}
	return out
}

// Get resolves a dotted path (e.g. "user.role") against the Facts mapping.
// Any missing intermediate segment, or an attempt to descend into a
// non-map value, yields Undefined rather than an error.
func (f Facts) Get(path string) Value {
	segments := strings.Split(path, ".")
	if len(segments) == 0 {
		return Undefined
	}
	current, ok := f[segments[0]]
	if !ok {
		return Undefined
	}
	for _, seg := range segments[1:] {
		m, isMap := current.AsMap()
		if !isMap {
			return Undefined
		}
		current, ok = m[seg]
		if !ok {
			return Undefined
		}
	}
	return current
}

// Merge returns a new Facts map that is f shallow-merged with overlay;
// overlay's keys win on conflict. Neither f nor overlay is mutated.
func (f Facts) Merge(overlay Facts) Facts {
	out := make(Facts, len(f)+len(overlay))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// With returns a copy of f with a single key set, used for the pipeline's
// `facts ⊕ {llmOutput: output}` merge.
func (f Facts) With(key string, v Value) Facts {
	return f.Merge(Facts{key: v})
}
