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

package logical

// Base costs and row estimates for leaf/unary operators.
const (
	costNodeScan  = 1000.0
	rowsNodeScan  = 10000

	costLabelScan = 10.0
	rowsLabelScan = 1000

	costIndexScan = 1.0
	rowsIndexScan = 100

	costFilter = 1.0

	costExpand = 5.0

	costHashJoin = 10.0

	costNestedLoopJoin = 100.0

	costProjection = 0.1

	costSort = 50.0

	costLimit     = 1.0
	rowsLimitBase = 10
)

// EstimateCost computes n's Cost and Rows fields bottom-up, recursing
// into children first. Cost is additive over children.
func (n *Node) EstimateCost() {

	if n == nil {
		return
	}

	for _, c := range n.Children {
		c.EstimateCost()
	}

	childCost := func(i int) float64 {
		if i < len(n.Children) {
			return n.Children[i].Cost
		}
		return 0
	}
	childRows := func(i int) int64 {
		if i < len(n.Children) {
			return n.Children[i].Rows
		}
		return 0
	}

	switch n.Kind {

	case NodeScan, RelScan, TypeScan:
		n.Cost = costNodeScan
		n.Rows = rowsNodeScan

	case LabelScan:
		n.Cost = costLabelScan
		n.Rows = rowsLabelScan

	case IndexScan:
		n.Cost = costIndexScan
		n.Rows = rowsIndexScan

	case Filter, PropertyFilter, LabelFilter:
		n.Cost = childCost(0) + costFilter
		n.Rows = childRows(0) / 10

	case Expand, VarLengthExpand, OptionalExpand:
		n.Cost = childCost(0) + costExpand
		n.Rows = childRows(0) * 5

	case HashJoin:
		l, r := childRows(0), childRows(1)
		n.Cost = childCost(0) + childCost(1) + costHashJoin
		n.Rows = l * r / 100

	case NestedLoopJoin, CartesianProduct:
		l, r := childRows(0), childRows(1)
		n.Cost = childCost(0) + childCost(1) + costNestedLoopJoin
		n.Rows = l * r / 100

	case Projection:
		n.Cost = childCost(0) + costProjection
		n.Rows = childRows(0)

	case Distinct, Aggregation:
		n.Cost = childCost(0) + costProjection
		n.Rows = childRows(0)

	case Sort:
		n.Cost = childCost(0) + costSort
		n.Rows = childRows(0)

	case Limit:
		n.Cost = childCost(0) + costLimit
		n.Rows = rowsLimitBase

	case Skip:
		n.Cost = childCost(0)
		n.Rows = childRows(0)

	case Create, Merge, Set, Delete, DetachDelete:
		n.Cost = childCost(0) + costFilter
		n.Rows = childRows(0)

	default:
		n.Cost = childCost(0)
		n.Rows = childRows(0)
	}

}
