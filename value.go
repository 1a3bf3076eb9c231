package config

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies the underlying shape of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindTable
)

// String returns the shape name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Value is a single configuration datum: a scalar, an ordered array of
// values, or a table of named values. The zero Value is Nil.
type Value struct {
	// Origin describes where the value came from: a file path,
	// "environment", a remote URI. It is used only for diagnostics,
	// never for equality or merging.
	Origin string

	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	tab  map[string]Value
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// ValueOf converts a native Go value into a Value. It accepts the shapes
// produced by the TOML, YAML and JSON parsers as well as pre-built Values
// and slices/maps of them. Unrecognized types fall back to their string
// representation.
func ValueOf(v any) Value { return valueOf("", v) }

// NewValue is like ValueOf but tags the value, and every value nested
// inside it, with an origin description.
func NewValue(origin string, v any) Value { return valueOf(origin, v) }

func valueOf(origin string, v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{Origin: origin}
	case Value:
		if origin != "" && x.Origin == "" {
			x.Origin = origin
		}
		return x
	case bool:
		return Value{Origin: origin, kind: KindBool, b: x}
	case int:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case int8:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case int16:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case int32:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case int64:
		return Value{Origin: origin, kind: KindInt, i: x}
	case uint:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case uint8:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case uint16:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case uint32:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case uint64:
		return Value{Origin: origin, kind: KindInt, i: int64(x)}
	case float32:
		return Value{Origin: origin, kind: KindFloat, f: float64(x)}
	case float64:
		return Value{Origin: origin, kind: KindFloat, f: x}
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Value{Origin: origin, kind: KindInt, i: i}
		}
		if f, err := x.Float64(); err == nil {
			return Value{Origin: origin, kind: KindFloat, f: f}
		}
		return Value{Origin: origin, kind: KindString, s: x.String()}
	case string:
		return Value{Origin: origin, kind: KindString, s: x}
	case []Value:
		arr := make([]Value, len(x))
		copy(arr, x)
		return Value{Origin: origin, kind: KindArray, arr: arr}
	case []any:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindArray, arr: arr}
	case []string:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindArray, arr: arr}
	case []int:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindArray, arr: arr}
	case []int64:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindArray, arr: arr}
	case []float64:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindArray, arr: arr}
	case []bool:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindArray, arr: arr}
	case map[string]Value:
		tab := make(map[string]Value, len(x))
		for k, e := range x {
			tab[k] = e
		}
		return Value{Origin: origin, kind: KindTable, tab: tab}
	case map[string]any:
		tab := make(map[string]Value, len(x))
		for k, e := range x {
			tab[k] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindTable, tab: tab}
	case map[any]any:
		tab := make(map[string]Value, len(x))
		for k, e := range x {
			tab[fmt.Sprint(k)] = valueOf(origin, e)
		}
		return Value{Origin: origin, kind: KindTable, tab: tab}
	default:
		return Value{Origin: origin, kind: KindString, s: fmt.Sprint(x)}
	}
}

// clone deep-copies the value; the result shares no children with v.
func (v Value) clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.clone()
		}
		v.arr = arr
	case KindTable:
		tab := make(map[string]Value, len(v.tab))
		for k, e := range v.tab {
			tab[k] = e.clone()
		}
		v.tab = tab
	}
	return v
}

// flattenInto visits one entry per leaf path: a nested table under path p
// contributes p.k per child key, an array contributes p[i] per index,
// recursively, so deeply nested values resolve to fully-qualified leaf
// paths. Table keys are visited in sorted order so the traversal is
// deterministic.
func (v Value) flattenInto(prefix string, visit func(path string, v Value)) {
	switch v.kind {
	case KindTable:
		keys := make([]string, 0, len(v.tab))
		for k := range v.tab {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			v.tab[k].flattenInto(p, visit)
		}
	case KindArray:
		for i, e := range v.arr {
			e.flattenInto(fmt.Sprintf("%s[%d]", prefix, i), visit)
		}
	default:
		if prefix != "" {
			visit(prefix, v)
		}
	}
}

// native converts the value tree into plain Go shapes, the form the
// mapstructure decoder consumes.
func (v Value) native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.native()
		}
		return out
	case KindTable:
		out := make(map[string]any, len(v.tab))
		for k, e := range v.tab {
			out[k] = e.native()
		}
		return out
	}
	return nil
}

// emptyTable returns a fresh table value ready for path writes.
func emptyTable() Value {
	return Value{kind: KindTable, tab: make(map[string]Value)}
}
