package entities

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the dynamic type carried by a Value. The driver script
// (a goja VM) is dynamically typed; every value that crosses into or out
// of the core is coerced to one of these kinds at the boundary. Nothing
// downstream of this package ever touches a raw goja.Value.
type ValueKind int

const (
	KindUnit ValueKind = iota
	KindInt
	KindBool
	KindString
	KindList
	KindMap
	// KindUndefined is the template engine's UNDEFINED: a first-class
	// value distinct from KindUnit ("no answer"). Iteration over it
	// yields nothing; rendering it prints "Undefined" (§4.6).
	KindUndefined
)

func (k ValueKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Value is a tagged dynamic value: the common currency of AnswerMap entries,
// prompt settings, and driver-script return values. Exactly one of the
// typed fields is meaningful, selected by Kind; KindUnit means "no answer".
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	Str  string
	List []Value
	Map  map[string]Value

	// Safe marks a KindString value as pre-escaped: the template engine
	// must not pass it through any HTML-escape filter, and it must
	// round-trip through serialization with this flag intact (§4.6,
	// §8 "Safe-string round-trip").
	Safe bool
}

// Unit is the canonical "no answer" value.
var Unit = Value{Kind: KindUnit}

// Undefined is the template engine's first-class UNDEFINED value.
var Undefined = Value{Kind: KindUndefined}

func NewIntValue(i int64) Value             { return Value{Kind: KindInt, Int: i} }
func NewBoolValue(b bool) Value             { return Value{Kind: KindBool, Bool: b} }
func NewStringValue(s string) Value         { return Value{Kind: KindString, Str: s} }
func NewSafeStringValue(s string) Value     { return Value{Kind: KindString, Str: s, Safe: true} }
func NewListValue(vs []Value) Value         { return Value{Kind: KindList, List: vs} }
func NewMapValue(m map[string]Value) Value  { return Value{Kind: KindMap, Map: m} }

// IsUnit reports whether v represents "no answer".
func (v Value) IsUnit() bool { return v.Kind == KindUnit }

// IsUndefined reports whether v is the template engine's UNDEFINED value.
func (v Value) IsUndefined() bool { return v.Kind == KindUndefined }

// AsString returns the value coerced to a display string, used for template
// expansion and CLI echoing. It never errors: lists/maps render via Go's
// default formatting, which is acceptable for diagnostics but not for
// prompt validation (use AsStringStrict for that).
func (v Value) AsString() string {
	switch v.Kind {
	case KindUnit:
		return ""
	case KindUndefined:
		return "Undefined"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindString:
		return v.Str
	case KindList:
		out := make([]string, len(v.List))
		for i, e := range v.List {
			out[i] = e.AsString()
		}
		return fmt.Sprintf("%v", out)
	case KindMap:
		return fmt.Sprintf("%v", v.Map)
	default:
		return ""
	}
}

// String implements fmt.Stringer so a Value printed by the template
// engine (e.g. the result of the "safe" filter) renders as its display
// string rather than its Go struct syntax.
func (v Value) String() string { return v.AsString() }

// AsStringStrict returns the underlying string, erroring if Kind is not
// KindString — used by prompt coercion where a type mismatch must fail
// with AnswerTypeError rather than silently stringify.
func (v Value) AsStringStrict() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// AsIntStrict returns the underlying int64, erroring if Kind is not KindInt.
func (v Value) AsIntStrict() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

// AsBoolStrict returns the underlying bool, erroring if Kind is not KindBool.
func (v Value) AsBoolStrict() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

// AsListStrict returns the underlying list, erroring if Kind is not KindList.
func (v Value) AsListStrict() ([]Value, bool) {
	if v.Kind != KindList {
		return nil, false
	}
	return v.List, true
}

// Equal reports deep equality, used by the safe-string / value round-trip tests.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == other.Int
	case KindBool:
		return v.Bool == other.Bool
	case KindString:
		return v.Str == other.Str && v.Safe == other.Safe
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for k, e := range v.Map {
			oe, ok := other.Map[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return true // both Unit
	}
}

// FromAny converts a plain Go value (as decoded from YAML/JSON or produced by
// the scripting host) into a Value. Unknown types become a string via
// fmt.Sprintf, never an error — callers that need strict typing use the
// AsXStrict accessors once the Value exists.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Unit
	case Value:
		return t
	case string:
		return NewStringValue(t)
	case bool:
		return NewBoolValue(t)
	case int:
		return NewIntValue(int64(t))
	case int64:
		return NewIntValue(t)
	case float64:
		return NewIntValue(int64(t))
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = FromAny(e)
		}
		return NewListValue(out)
	case []string:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = NewStringValue(e)
		}
		return NewListValue(out)
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = FromAny(e)
		}
		return NewMapValue(out)
	default:
		return NewStringValue(fmt.Sprintf("%v", t))
	}
}

// ToAny converts a Value back to a plain Go value, the inverse of FromAny,
// used when handing answers back into the goja VM or to a YAML/JSON encoder.
func (v Value) ToAny() any {
	switch v.Kind {
	case KindUnit:
		return nil
	case KindInt:
		return v.Int
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str
	case KindList:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = e.ToAny()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.Map))
		for k, e := range v.Map {
			out[k] = e.ToAny()
		}
		return out
	default:
		return nil
	}
}

// wireValue is Value's on-the-wire shape for serialize/deserialize
// round-tripping (§8 "Safe-string round-trip"): a tagged representation
// that keeps the Safe flag alongside a string, independent of whatever
// encoding format (JSON today) carries it.
type wireValue struct {
	Kind ValueKind       `json:"kind"`
	Int  int64           `json:"int,omitempty"`
	Bool bool            `json:"bool,omitempty"`
	Str  string          `json:"str,omitempty"`
	Safe bool            `json:"safe,omitempty"`
	List []Value         `json:"list,omitempty"`
	Map  map[string]Value `json:"map,omitempty"`
}

// MarshalJSON serializes v preserving its Kind and, for strings, its Safe
// flag.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireValue{
		Kind: v.Kind, Int: v.Int, Bool: v.Bool, Str: v.Str, Safe: v.Safe, List: v.List, Map: v.Map,
	})
}

// UnmarshalJSON deserializes v, restoring the Safe flag so that
// deserialize(serialize(v)) == v holds for safe strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*v = Value{Kind: w.Kind, Int: w.Int, Bool: w.Bool, Str: w.Str, Safe: w.Safe, List: w.List, Map: w.Map}
	return nil
}
