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

package planner

import "github.com/gogo-agent/cyphergraph/plan/logical"

// optimizeJoins walks the plan bottom-up and, at every join, reorders its
// two operands (build side vs probe side) when swapping them is strictly
// cheaper under the detailed build/probe cost formulas:
//
//	hash join:         build(right)*1.2 + probe(left)*1.0
//	nested-loop join:  rows(left) * rows(right) * 0.001 * 0.1
//
// Both the current ordering and the swapped ordering are costed with the
// formula matching the join's own kind; a tie keeps the original ordering
// so the rewrite is stable (idempotent) across repeated runs. This only
// ever reorders operands; it never changes a HashJoin into a
// NestedLoopJoin or vice versa.
func optimizeJoins(n *logical.Node) {

	if n == nil {
		return
	}
	for _, c := range n.Children {
		optimizeJoins(c)
	}

	if n.Kind != logical.HashJoin && n.Kind != logical.NestedLoopJoin {
		return
	}
	if len(n.Children) != 2 {
		return
	}

	n.EstimateCost()
	left, right := n.Children[0], n.Children[1]

	current := joinOperandCost(n.Kind, left.Rows, right.Rows)
	swapped := joinOperandCost(n.Kind, right.Rows, left.Rows)

	if swapped < current {
		n.Children[0], n.Children[1] = right, left
	}

	n.EstimateCost()

}

// joinOperandCost applies the build/probe cost formula for a join of the
// given kind with left as the probe side and right as the build side.
func joinOperandCost(kind logical.Kind, leftRows, rightRows int64) float64 {
	if kind == logical.HashJoin {
		return float64(rightRows)*1.2 + float64(leftRows)*1.0
	}
	return float64(leftRows) * float64(rightRows) * 0.001 * 0.1
}

// optimizeIndexUsage rewrites a PropertyFilter directly atop a LabelScan
// into a single IndexScan, the NodeScan→LabelScan→IndexScan promotion
// chain. Disabled via Options.Index.Enabled, in which
// case label/property filtering is left to the iterator layer at runtime.
func optimizeIndexUsage(n *logical.Node, opts Options) *logical.Node {

	if n == nil {
		return nil
	}
	for i, c := range n.Children {
		n.Children[i] = optimizeIndexUsage(c, opts)
	}

	if !opts.Index.Enabled {
		return n
	}
	if n.Kind != logical.PropertyFilter || len(n.Children) != 1 {
		return n
	}
	child := n.Children[0]
	if child.Kind != logical.LabelScan {
		return n
	}

	idx := logical.New(logical.IndexScan)
	idx.Alias = child.Alias
	idx.Label = child.Label
	idx.Property = n.Property
	idx.Value = n.Value
	idx.Expr = n.Expr
	return idx

}
