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

import (
	"strconv"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/plan/logical"
	"github.com/gogo-agent/cyphergraph/plan/physical"
)

// lower walks the optimized logical plan bottom-up and builds the matching
// physical plan. Every logical.Kind must appear in the switch below; an
// operator with no rule is reported as a planner error rather than
// silently folded into Filter.
func lower(n *logical.Node) (*physical.Node, error) {

	if n == nil {
		return nil, nil
	}

	children := make([]*physical.Node, 0, len(n.Children))
	for _, c := range n.Children {
		pc, err := lower(c)
		if err != nil {
			return nil, err
		}
		if pc != nil {
			children = append(children, pc)
		}
	}

	var p *physical.Node

	switch n.Kind {

	case logical.NodeScan:
		p = physical.New(physical.AllNodesScan)
		p.Alias = n.Alias

	case logical.RelScan, logical.TypeScan:
		p = physical.New(physical.AllRelsScan)
		p.Alias = n.Alias
		p.Label = n.Label

	case logical.LabelScan:
		p = physical.New(physical.LabelIndexScan)
		p.Alias = n.Alias
		p.Label = n.Label

	case logical.IndexScan:
		p = physical.New(physical.PropertyIndexScan)
		p.Alias = n.Alias
		p.Label = n.Label
		p.Property = n.Property
		p.Value = n.Value
		p.FilterExpr = n.Expr

	case logical.Filter, logical.PropertyFilter, logical.LabelFilter:
		p = physical.New(physical.Filter)
		p.Alias = n.Alias
		p.Property = n.Property
		p.Value = n.Value
		p.FilterExpr = n.Expr

	case logical.Expand, logical.VarLengthExpand, logical.OptionalExpand:
		p = physical.New(physical.IndexNestedLoop)
		p.Alias = n.Alias
		p.Label = n.Label
		p.Property = n.Property
		p.Value = n.Value

	case logical.HashJoin:
		p = physical.New(physical.HashJoin)

	case logical.NestedLoopJoin, logical.CartesianProduct:
		p = physical.New(physical.NestedLoopJoin)

	case logical.Projection, logical.Distinct, logical.Aggregation:
		p = physical.New(physical.Projection)
		if n.Kind == logical.Aggregation {
			p.Kind = physical.Aggregation
		}
		if n.Kind == logical.Distinct {
			// The physical Kind enum has no separate Distinct
			// operator; the iterator engine keys off Index to know it must
			// deduplicate emitted rows rather than adding a Kind variant.
			p.Index = "DISTINCT"
		}
		if err := fillProjection(p, n); err != nil {
			return nil, err
		}

	case logical.Sort:
		p = physical.New(physical.Sort)
		fillSort(p, n)

	case logical.Limit:
		p = physical.New(physical.Limit)
		p.LimitN = literalInt(n.Expr, -1)

	case logical.Skip:
		p = physical.New(physical.Limit)
		p.LimitN = -1
		p.Value = strconv.Itoa(literalInt(n.Expr, 0))

	case logical.Create:
		p = physical.New(physical.Create)
		p.FilterExpr = n.Expr

	case logical.Merge:
		p = physical.New(physical.Merge)
		p.FilterExpr = n.Expr

	case logical.Set:
		p = physical.New(physical.Set)
		p.FilterExpr = n.Expr

	case logical.Delete:
		p = physical.New(physical.Delete)
		p.FilterExpr = n.Expr

	case logical.DetachDelete:
		p = physical.New(physical.DetachDelete)
		p.FilterExpr = n.Expr

	default:
		return nil, plannerError("planner: no lowering rule for logical operator %s", n.Kind)
	}

	p.Children = children
	p.Cost = n.Cost
	p.Rows = n.Rows

	return p, nil

}

// fillProjection reads the Return/With/Unwind ast node carried on n.Expr
// and fills in the physical Projection's column list. A projection item
// with no explicit alias is named `col0`, `col1`, ... here, by its
// position in the list, rather than by a name derived from the
// expression shape.
func fillProjection(p *physical.Node, n *logical.Node) error {

	clause, ok := n.Expr.(*ast.Node)
	if !ok || clause == nil {
		return nil
	}

	switch clause.Kind {

	case ast.Return, ast.With:
		var items []*ast.Node
		items = clause.Children
		for _, c := range clause.Children {
			if c.Kind == ast.ProjectionList {
				items = c.Children
				break
			}
		}
		idx := 0
		for _, item := range items {
			if item.Kind != ast.ProjectionItem {
				continue
			}
			name := item.Val
			if name == "" {
				name = "col" + strconv.Itoa(idx)
			}
			p.ProjectName = append(p.ProjectName, name)
			if len(item.Children) > 0 {
				p.ProjectExpr = append(p.ProjectExpr, item.Children[0])
			} else {
				p.ProjectExpr = append(p.ProjectExpr, nil)
			}
			idx++
		}

	case ast.Unwind:
		p.ProjectName = []string{clause.Val}
		if len(clause.Children) > 0 {
			p.ProjectExpr = []interface{}{clause.Children[0]}
		}
		p.Property = "UNWIND"

	default:
		return plannerError("planner: projection built from unexpected clause %s", clause.Kind)
	}

	return nil

}

func fillSort(p *physical.Node, n *logical.Node) {

	ob, ok := n.Expr.(*ast.Node)
	if !ok || ob == nil || len(ob.Children) == 0 {
		return
	}
	list := ob.Children[0]
	for _, item := range list.Children {
		if item.Kind != ast.SortItem || len(item.Children) == 0 {
			continue
		}
		p.SortExpr = append(p.SortExpr, item.Children[0])
		p.SortDesc = append(p.SortDesc, item.Has(ast.FlagDesc))
	}

}

func literalInt(e interface{}, fallback int) int {
	node, ok := e.(*ast.Node)
	if !ok || node == nil {
		return fallback
	}
	v, err := strconv.Atoi(node.Val)
	if err != nil {
		return fallback
	}
	return v
}
