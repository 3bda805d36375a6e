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

// Package physical implements the physical plan tree: the logical plan
// lowered to a tree of concrete execution strategies, ready for the
// iterator package to build a pull-based operator tree from.
package physical

import (
	"fmt"
	"strings"
)

// Kind is the closed set of physical operators.
type Kind int

const (
	AllNodesScan Kind = iota
	LabelIndexScan
	PropertyIndexScan
	AllRelsScan
	TypeIndexScan
	HashJoin
	NestedLoopJoin
	IndexNestedLoop
	Filter
	Projection
	Sort
	Limit
	Aggregation
	Create
	Merge
	Set
	Delete
	DetachDelete
)

var kindNames = [...]string{
	"AllNodesScan", "LabelIndexScan", "PropertyIndexScan", "AllRelsScan",
	"TypeIndexScan", "HashJoin", "NestedLoopJoin", "IndexNestedLoop", "Filter",
	"Projection", "Sort", "Limit", "Aggregation", "Create", "Merge", "Set",
	"Delete", "DetachDelete",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is a physical plan operator. Everything needed to build the
// matching iterator lives on the node: the index name, the filter
// expression, the projection/sort-key expression lists, the limit count.
type Node struct {
	Kind  Kind
	Alias string
	Index string
	Label string

	Property string
	Value    string

	FilterExpr  interface{} // *ast.Node
	ProjectExpr []interface{}
	ProjectName []string
	SortExpr    []interface{}
	SortDesc    []bool
	LimitN      int

	Children []*Node

	Cost        float64
	Rows        int64
	Selectivity float64
}

// New constructs a Node of the given kind with no children.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Add appends child to n's children.
func (n *Node) Add(child *Node) *Node {
	if child != nil {
		n.Children = append(n.Children, child)
	}
	return n
}

// Destroy recursively releases n's subtree. Safe on nil; idempotent.
func (n *Node) Destroy() {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		c.Destroy()
	}
	n.Children = nil
}

// String pretty-prints the physical plan, used by the `plan`/`explain`
// surface.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s", n.Kind)
	if n.Alias != "" {
		fmt.Fprintf(b, " alias=%s", n.Alias)
	}
	if n.Index != "" {
		fmt.Fprintf(b, " index=%s", n.Index)
	}
	if n.Label != "" {
		fmt.Fprintf(b, " label=%s", n.Label)
	}
	if n.Property != "" {
		fmt.Fprintf(b, " property=%s", n.Property)
	}
	if n.Value != "" {
		fmt.Fprintf(b, " value=%s", n.Value)
	}
	if n.LimitN != 0 {
		fmt.Fprintf(b, " limit=%d", n.LimitN)
	}
	fmt.Fprintf(b, " cost=%.2f rows=%d sel=%.3f\n", n.Cost, n.Rows, n.Selectivity)
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}

// Aliases mirrors logical.Node.Aliases, for the alias-preservation check
// applied after lowering.
func (n *Node) Aliases() []string {
	seen := map[string]bool{}
	var out []string
	var walk func(*Node)
	walk = func(m *Node) {
		if m == nil {
			return
		}
		if m.Alias != "" && !seen[m.Alias] {
			seen[m.Alias] = true
			out = append(out, m.Alias)
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}
