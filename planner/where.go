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
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/plan/logical"
)

// applyWhere splits a WHERE predicate on its top-level AND conjunctions and
// wraps plan in one Filter (or PropertyFilter, when the shape is a simple
// `alias.prop = literal` comparison) per conjunct, so the optimizer has a
// granular filter to push toward its matching scan.
func applyWhere(plan *logical.Node, expr *ast.Node) *logical.Node {
	for _, conjunct := range flattenAnd(expr) {
		f := compilePredicate(conjunct)
		f.Add(plan)
		plan = f
	}
	return plan
}

func flattenAnd(n *ast.Node) []*ast.Node {
	if n.Kind == ast.And {
		return append(flattenAnd(n.Children[0]), flattenAnd(n.Children[1])...)
	}
	return []*ast.Node{n}
}

// compilePredicate detects the `alias.prop = literal` shape that can later
// be promoted to an index scan; everything else becomes a generic Filter
// carrying the raw expression for the evaluator.
func compilePredicate(expr *ast.Node) *logical.Node {

	if expr.Kind == ast.Comparison && expr.Val == "=" && len(expr.Children) == 2 {
		left, right := expr.Children[0], expr.Children[1]
		if left.Kind == ast.Property && len(left.Children) == 1 &&
			left.Children[0].Kind == ast.Identifier && right.Kind == ast.Literal {
			f := logical.New(logical.PropertyFilter)
			f.Alias = left.Children[0].Val
			f.Property = left.Val
			f.Value = right.Val
			f.Expr = expr
			return f
		}
	}

	f := logical.New(logical.Filter)
	f.Expr = expr
	return f

}
