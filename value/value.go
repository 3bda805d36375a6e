// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value implements the tagged Value variant shared by every layer
// of the query engine: literals in the AST, bindings in the execution
// context, columns in a result row, and the property payloads read from
// and written to the storage adapter.
package value

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the closed set of Value variants.
type Kind int

const (
	KNull Kind = iota
	KBool
	KInt
	KFloat
	KString
	KNodeRef
	KRelRef
	KList
	KMap
)

// Pair is a single (key, Value) entry of a Map. Keys are unique within a
// Map and insertion order is preserved.
type Pair struct {
	Key string
	Val Value
}

// Value is a tagged sum type. Exactly one of the fields below is
// meaningful, selected by Kind. Every non-scalar variant (List, Map,
// String) owns its contents exclusively; Clone produces a deep copy.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	S    string
	List []Value
	Map  []Pair
}

// Null is the distinguished null value.
var Null = Value{Kind: KNull}

func Bool(b bool) Value    { return Value{Kind: KBool, B: b} }
func Int(i int64) Value    { return Value{Kind: KInt, I: i} }
func Float(f float64) Value { return Value{Kind: KFloat, F: f} }
func Str(s string) Value   { return Value{Kind: KString, S: s} }
func NodeRef(id int64) Value { return Value{Kind: KNodeRef, I: id} }
func RelRef(id int64) Value  { return Value{Kind: KRelRef, I: id} }

// NewList builds a List value, taking ownership of items.
func NewList(items []Value) Value {
	return Value{Kind: KList, List: items}
}

// NewMap builds a Map value from ordered pairs. Callers must ensure keys
// are unique; Set enforces uniqueness incrementally.
func NewMap(pairs []Pair) Value {
	return Value{Kind: KMap, Map: pairs}
}

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.Kind == KNull }

// Truthy reports whether v counts as true for WHERE/Filter purposes: a
// non-null, non-false value.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KNull:
		return false
	case KBool:
		return v.B
	default:
		return true
	}
}

// Get looks up key in a Map value; returns Null, false if absent or if v
// is not a Map.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KMap {
		return Null, false
	}
	for _, p := range v.Map {
		if p.Key == key {
			return p.Val, true
		}
	}
	return Null, false
}

// Set inserts or overwrites key in a Map value, preserving first-insertion
// order for new keys. v must already be a Map.
func (v Value) Set(key string, val Value) Value {
	for i, p := range v.Map {
		if p.Key == key {
			v.Map[i].Val = val
			return v
		}
	}
	v.Map = append(v.Map, Pair{Key: key, Val: val})
	return v
}

// Remove deletes key from a Map value, if present.
func (v Value) Remove(key string) Value {
	for i, p := range v.Map {
		if p.Key == key {
			v.Map = append(v.Map[:i], v.Map[i+1:]...)
			return v
		}
	}
	return v
}

// Clone returns a deep copy of v that owns disjoint memory from v.
func (v Value) Clone() Value {
	switch v.Kind {
	case KList:
		out := make([]Value, len(v.List))
		for i, item := range v.List {
			out[i] = item.Clone()
		}
		return Value{Kind: KList, List: out}
	case KMap:
		out := make([]Pair, len(v.Map))
		for i, p := range v.Map {
			out[i] = Pair{Key: p.Key, Val: p.Val.Clone()}
		}
		return Value{Kind: KMap, Map: out}
	default:
		return v
	}
}

// Equal reports whether a and b carry the same tag and content. Unlike
// Compare, Equal does not apply the "type mismatch" sentinel: cross-type
// values are simply unequal.
func (a Value) Equal(b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KNull:
		return true
	case KBool:
		return a.B == b.B
	case KInt:
		return a.I == b.I
	case KFloat:
		return a.F == b.F
	case KString:
		return a.S == b.S
	case KNodeRef, KRelRef:
		return a.I == b.I
	case KList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !a.List[i].Equal(b.List[i]) {
				return false
			}
		}
		return true
	case KMap:
		if len(a.Map) != len(b.Map) {
			return false
		}
		am := make(map[string]Value, len(a.Map))
		for _, p := range a.Map {
			am[p.Key] = p.Val
		}
		for _, p := range b.Map {
			av, ok := am[p.Key]
			if !ok || !av.Equal(p.Val) {
				return false
			}
		}
		return true
	}
	return false
}

// TypeName returns the lower-case name of v's Kind, used in Mismatch
// error messages.
func (v Value) TypeName() string {
	switch v.Kind {
	case KNull:
		return "null"
	case KBool:
		return "bool"
	case KInt:
		return "integer"
	case KFloat:
		return "float"
	case KString:
		return "string"
	case KNodeRef:
		return "node"
	case KRelRef:
		return "relationship"
	case KList:
		return "list"
	case KMap:
		return "map"
	default:
		return "unknown"
	}
}

// String renders v for display (result row formatting, error messages,
// pretty-printed plans). It intentionally does not emit JSON-specific
// escaping; see JSON for that.
func (v Value) String() string {
	switch v.Kind {
	case KNull:
		return "null"
	case KBool:
		return strconv.FormatBool(v.B)
	case KInt:
		return strconv.FormatInt(v.I, 10)
	case KFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case KString:
		return v.S
	case KNodeRef:
		return fmt.Sprintf("(node %d)", v.I)
	case KRelRef:
		return fmt.Sprintf("[rel %d]", v.I)
	case KList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.JSON()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KMap:
		parts := make([]string, len(v.Map))
		for i, p := range v.Map {
			parts[i] = fmt.Sprintf("%s: %s", p.Key, p.Val.JSON())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

// JSON renders v as a JSON value. Keys are emitted in the Map's
// stored order; nested containers recurse.
func (v Value) JSON() string {
	var b strings.Builder
	v.writeJSON(&b)
	return b.String()
}

func (v Value) writeJSON(b *strings.Builder) {
	switch v.Kind {
	case KNull:
		b.WriteString("null")
	case KBool:
		b.WriteString(strconv.FormatBool(v.B))
	case KInt:
		b.WriteString(strconv.FormatInt(v.I, 10))
	case KFloat:
		b.WriteString(strconv.FormatFloat(v.F, 'g', -1, 64))
	case KString:
		b.WriteString(jsonQuote(v.S))
	case KNodeRef, KRelRef:
		b.WriteString(strconv.FormatInt(v.I, 10))
	case KList:
		b.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				b.WriteByte(',')
			}
			item.writeJSON(b)
		}
		b.WriteByte(']')
	case KMap:
		b.WriteByte('{')
		for i, p := range v.Map {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(jsonQuote(p.Key))
			b.WriteByte(':')
			p.Val.writeJSON(b)
		}
		b.WriteByte('}')
	}
}

func jsonQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// FromJSON parses a single JSON-encoded literal (object, array, number,
// string, bool or null) into a Value, the inverse of JSON. Used to turn
// a property's stored JSON text, or a json-literal command-line flag,
// into a bound Value.
func FromJSON(raw []byte) (Value, error) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return Null, fmt.Errorf("value: malformed JSON: %w", err)
	}
	return fromGeneric(generic)
}

func fromGeneric(g interface{}) (Value, error) {
	switch t := g.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool(t), nil
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t)), nil
		}
		return Float(t), nil
	case string:
		return Str(t), nil
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, elem := range t {
			v, err := fromGeneric(elem)
			if err != nil {
				return Null, err
			}
			items = append(items, v)
		}
		return NewList(items), nil
	case map[string]interface{}:
		pairs := make([]Pair, 0, len(t))
		for k, elem := range t {
			v, err := fromGeneric(elem)
			if err != nil {
				return Null, err
			}
			pairs = append(pairs, Pair{Key: k, Val: v})
		}
		return NewMap(pairs), nil
	}
	return Null, fmt.Errorf("value: unrepresentable JSON value %T", g)
}

// SortedKeys returns the Map's keys in sorted order; used by Compare when
// two maps must be ordered deterministically.
func (v Value) SortedKeys() []string {
	keys := make([]string, 0, len(v.Map))
	for _, p := range v.Map {
		keys = append(keys, p.Key)
	}
	sort.Strings(keys)
	return keys
}
