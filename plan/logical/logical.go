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

// Package logical implements the logical plan tree: a tagged operator
// tree carrying cost/row estimates, produced by the planner from the AST
// and later lowered to a physical plan.
package logical

import (
	"fmt"
	"strings"
)

// Kind is the closed set of logical operators.
type Kind int

const (
	NodeScan Kind = iota
	LabelScan
	IndexScan
	RelScan
	TypeScan
	Expand
	VarLengthExpand
	OptionalExpand
	Filter
	PropertyFilter
	LabelFilter
	HashJoin
	NestedLoopJoin
	CartesianProduct
	Projection
	Distinct
	Aggregation
	Sort
	Limit
	Skip
	Create
	Merge
	Set
	Delete
	DetachDelete
)

var kindNames = [...]string{
	"NodeScan", "LabelScan", "IndexScan", "RelScan", "TypeScan", "Expand",
	"VarLengthExpand", "OptionalExpand", "Filter", "PropertyFilter", "LabelFilter",
	"HashJoin", "NestedLoopJoin", "CartesianProduct", "Projection", "Distinct",
	"Aggregation", "Sort", "Limit", "Skip", "Create", "Merge", "Set", "Delete",
	"DetachDelete",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is a logical plan operator. The tree owns its Children; Parent is
// a weak back-reference used only for traversal and must never be
// followed to free memory.
type Node struct {
	Kind     Kind
	Alias    string
	Label    string
	Property string
	Value    string
	Expr     interface{} // *ast.Node carried by generic Filter nodes
	Children []*Node
	Parent   *Node

	Cost float64
	Rows int64
}

// New constructs a Node of the given kind with no children.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Add appends child to n's children and sets the weak parent pointer.
func (n *Node) Add(child *Node) *Node {
	if child == nil {
		return n
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return n
}

// Destroy recursively releases n's subtree. Safe on nil; idempotent in
// the sense that it never panics if called more than once on an
// already-cleared node.
func (n *Node) Destroy() {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		c.Destroy()
	}
	n.Children = nil
	n.Parent = nil
}

// String pretty-prints the plan, including the estimated cost and row
// count computed by EstimateCost: estimates are stored on the node after
// computation so String can render them.
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
	if n.Label != "" {
		fmt.Fprintf(b, " label=%s", n.Label)
	}
	if n.Property != "" {
		fmt.Fprintf(b, " property=%s", n.Property)
	}
	if n.Value != "" {
		fmt.Fprintf(b, " value=%s", n.Value)
	}
	fmt.Fprintf(b, " cost=%.2f rows=%d\n", n.Cost, n.Rows)
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}

// Aliases collects the set of aliases bound at and below n, used to check
// that lowering to a physical plan preserves the set of aliases bound at
// the root.
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
