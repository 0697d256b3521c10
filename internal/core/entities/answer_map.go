package entities

import "maps"

// AnswerMap is a mapping from identifier strings to dynamic Values.
// Insertion order is not observable; duplicate identifiers overwrite.
//
// Merge idiom grounded in the corpus's VariableSet.Merge pattern
// (map[string]string plus maps.Copy), generalized to the richer
// Value type AnswerMap requires.
type AnswerMap map[string]Value

// NewAnswerMap returns an empty, non-nil AnswerMap.
func NewAnswerMap() AnswerMap { return AnswerMap{} }

// Merge overlays other on top of m, mutating m in place, and returns m.
// Callers compose precedence (config answers ≺ answer files in
// command-line order ≺ individual --answer pairs) by calling Merge
// repeatedly in ascending precedence order.
func (m AnswerMap) Merge(other AnswerMap) AnswerMap {
	if m == nil {
		m = NewAnswerMap()
	}
	maps.Copy(m, other)
	return m
}

// MergeAll merges a sequence of AnswerMaps in ascending precedence order
// (the last one wins on any conflicting identifier) and returns a new map.
func MergeAll(layers ...AnswerMap) AnswerMap {
	result := NewAnswerMap()
	for _, layer := range layers {
		result.Merge(layer)
	}
	return result
}

// Get returns the value for key and whether it was present.
func (m AnswerMap) Get(key string) (Value, bool) {
	v, ok := m[key]
	return v, ok
}

// Set assigns key to value, overwriting any existing entry.
func (m AnswerMap) Set(key string, value Value) { m[key] = value }

// Clone returns a shallow copy suitable for building a scoped child map
// (§4.3 composition: a forwarded sub-map for a nested archetype).
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	maps.Copy(out, m)
	return out
}

// Scope extracts only the named keys into a new AnswerMap, used when a
// driver script composes a nested archetype with an explicit sub-context.
func (m AnswerMap) Scope(keys ...string) AnswerMap {
	out := NewAnswerMap()
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

// ToAnyMap converts to a plain map[string]any, e.g. to hand answers to the
// scripting host or to an encoder.
func (m AnswerMap) ToAnyMap() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.ToAny()
	}
	return out
}

// AnswerMapFromAny builds an AnswerMap from a decoded YAML/JSON document,
// which must be a map at the top level per the answer-file grammar.
func AnswerMapFromAny(v any) (AnswerMap, error) {
	m, ok := v.(map[string]any)
	if !ok {
		if m2, ok2 := v.(map[any]any); ok2 {
			// gopkg.in/yaml.v2-style untyped map keys; normalize to string keys.
			converted := make(map[string]any, len(m2))
			for k, val := range m2 {
				ks, ok3 := k.(string)
				if !ok3 {
					return nil, NewError(KindManifest, "answer file root must be a string-keyed map")
				}
				converted[ks] = val
			}
			m = converted
		} else {
			return nil, NewError(KindManifest, "answer file top-level value must be an object/map")
		}
	}
	out := NewAnswerMap()
	for k, val := range m {
		out[k] = FromAny(val)
	}
	return out, nil
}

// SwitchSet is a set of strings enabling optional behaviors inside driver
// scripts, merged from configuration and CLI flags.
type SwitchSet map[string]struct{}

// NewSwitchSet builds a SwitchSet from a slice of names.
func NewSwitchSet(names ...string) SwitchSet {
	s := make(SwitchSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is present.
func (s SwitchSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new SwitchSet containing every member of s and other.
func (s SwitchSet) Union(other SwitchSet) SwitchSet {
	out := make(SwitchSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Names returns the switch names, unordered.
func (s SwitchSet) Names() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}
