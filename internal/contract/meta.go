package contract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the value kinds allowed inside a Meta bag.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is one entry of a Meta bag: a tagged union over a closed set of
// primitive and container kinds. Keeping the set closed is what keeps
// extension data inspectable on both sides of the language boundary.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int64
	f    float64
	list []Value
	m    Meta
}

// Meta is the open key-value extension bag carried by several contract
// types. It is non-authoritative: no validation rule in this layer depends
// on its contents.
type Meta map[string]Value

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Bool(v bool) Value      { return Value{kind: KindBool, b: v} }
func Int(v int64) Value      { return Value{kind: KindInt, i: v} }
func Float(v float64) Value  { return Value{kind: KindFloat, f: v} }
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }
func Map(m Meta) Value       { return Value{kind: KindMap, m: m} }

// Kind reports which member of the union the value holds.
func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }
func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) AsInt() (int64, bool)     { return v.i, v.kind == KindInt }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }
func (v Value) AsList() ([]Value, bool)  { return v.list, v.kind == KindList }
func (v Value) AsMap() (Meta, bool)      { return v.m, v.kind == KindMap }

// Interface returns the natural Go representation of the value, suitable
// for handing to any encoder.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case KindMap:
		return v.m.Interface()
	}
	return nil
}

// Interface returns the bag as plain nested maps and slices.
func (m Meta) Interface() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Interface()
	}
	return out
}

// FromAny converts a freshly decoded JSON or YAML value into a Value.
// Anything outside the closed union (null, binary, ...) is rejected rather
// than smuggled through as an untyped blob.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("metadata: bad number %q", t.String())
		}
		return Float(f), nil
	case []any:
		list := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			list[i] = v
		}
		return Value{kind: KindList, list: list}, nil
	case map[string]any:
		m, err := MetaFromAny(t)
		if err != nil {
			return Value{}, err
		}
		return Map(m), nil
	default:
		return Value{}, fmt.Errorf("metadata: unsupported value kind %T", raw)
	}
}

// MetaFromAny converts a plain decoded map into a Meta bag.
func MetaFromAny(raw map[string]any) (Meta, error) {
	m := make(Meta, len(raw))
	for k, e := range raw {
		v, err := FromAny(e)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		m[k] = v
	}
	return m, nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	val, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
