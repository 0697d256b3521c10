package template

import "github.com/archetect/archetect/internal/core/entities"

// MapObject adapts a KindMap Value to entities.StructObject, the §9
// downcast target for field access on host-defined objects inside a
// template expression.
type MapObject struct{ Value entities.Value }

func (m MapObject) GetField(name string) (entities.Value, bool) {
	v, ok := m.Value.Map[name]
	return v, ok
}

func (m MapObject) Fields() []string {
	out := make([]string, 0, len(m.Value.Map))
	for k := range m.Value.Map {
		out = append(out, k)
	}
	return out
}

// SliceObject adapts a KindList Value to entities.SeqObject.
type SliceObject struct{ Value entities.Value }

func (s SliceObject) Get(index int) (entities.Value, bool) {
	if index < 0 || index >= len(s.Value.List) {
		return entities.Unit, false
	}
	return s.Value.List[index], true
}

func (s SliceObject) ItemCount() int { return len(s.Value.List) }

// asObject downcasts v to its StructObject/SeqObject adapter, used by the
// "fields"/"at" template helpers for code that wants the §9 object
// protocol instead of native text/template map/index access.
func asObject(v entities.Value) entities.ObjectValue {
	switch v.Kind {
	case entities.KindMap:
		return entities.ObjectValue{Struct: MapObject{Value: v}}
	case entities.KindList:
		return entities.ObjectValue{Seq: SliceObject{Value: v}}
	default:
		return entities.ObjectValue{}
	}
}
