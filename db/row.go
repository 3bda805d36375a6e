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

package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogo-agent/cyphergraph/value"
)

// Row is a single result row produced by the top of an iterator tree:
// an ordered list of (column name, Value) pairs. Column order is assigned
// by RETURN/WITH and preserved through to_json.
type Row struct {
	names  []string
	values []value.Value
}

// NewRow returns an empty Row.
func NewRow() *Row {
	return &Row{}
}

// AddColumn appends a column, deep-copying v.
func (r *Row) AddColumn(name string, v value.Value) {
	r.names = append(r.names, name)
	r.values = append(r.values, v.Clone())
}

// Len returns the number of columns.
func (r *Row) Len() int { return len(r.names) }

// Column returns the name and value of the i'th column.
func (r *Row) Column(i int) (string, value.Value) {
	return r.names[i], r.values[i]
}

// ToJSON renders the row as a JSON object using column order, the same
// order the row was built in. Nested List and Map values render
// recursively with indentation.
func (r *Row) ToJSON() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
		b.WriteString("  ")
		writeJSONString(&b, name)
		b.WriteString(": ")
		writeValue(&b, r.values[i], 1)
	}
	if len(r.names) > 0 {
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String()
}

func writeValue(b *strings.Builder, v value.Value, depth int) {
	switch v.Kind {
	case value.KNull:
		b.WriteString("null")
	case value.KBool:
		if v.B {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KInt:
		b.WriteString(strconv.FormatInt(v.I, 10))
	case value.KFloat:
		b.WriteString(strconv.FormatFloat(v.F, 'g', -1, 64))
	case value.KString:
		writeJSONString(b, v.S)
	case value.KNodeRef:
		fmt.Fprintf(b, "%d", v.I)
	case value.KRelRef:
		fmt.Fprintf(b, "%d", v.I)
	case value.KList:
		writeList(b, v.List, depth)
	case value.KMap:
		writeMap(b, v.Map, depth)
	default:
		b.WriteString("null")
	}
}

func writeList(b *strings.Builder, items []value.Value, depth int) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	indent := strings.Repeat("  ", depth+1)
	b.WriteString("[\n")
	for i, item := range items {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(indent)
		writeValue(b, item, depth+1)
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteByte(']')
}

func writeMap(b *strings.Builder, pairs []value.Pair, depth int) {
	if len(pairs) == 0 {
		b.WriteString("{}")
		return
	}
	indent := strings.Repeat("  ", depth+1)
	b.WriteString("{\n")
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(indent)
		writeJSONString(b, p.Key)
		b.WriteString(": ")
		writeValue(b, p.Val, depth+1)
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteByte('}')
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
