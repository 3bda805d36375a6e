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

package iterator

import (
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/eval"
	"github.com/gogo-agent/cyphergraph/plan/physical"
	"github.com/gogo-agent/cyphergraph/value"
)

// aggregationIter drains its entire child on first Next, evaluating each
// projection column across every row. A column whose expression is an
// aggregate FunctionCall (count/sum/avg/min/max) is reduced with
// eval.ApplyAggregate over the per-row argument values; any other column
// is taken from the first row (this engine does not implement grouped
// aggregation — a single implicit group over the whole match set, which
// is all RETURN count(*)-style queries need).
type aggregationIter struct {
	base
	child Iterator
	plan  *physical.Node
	done  bool
	row   *db.Row
}

func newAggregation(p *physical.Node, child Iterator) *aggregationIter {
	return &aggregationIter{base: base{children: []Iterator{child}}, child: child, plan: p}
}

func (a *aggregationIter) Open(ctx *db.Context) error {
	a.ctx = ctx
	return a.child.Open(ctx)
}

func (a *aggregationIter) Next() (bool, error) {
	if a.done {
		return false, nil
	}
	a.done = true

	ev := eval.New(a.ctx)
	collected := make([][]value.Value, len(a.plan.ProjectExpr))
	var first bool

	for {
		ok, err := a.child.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		first = true
		for i, e := range a.plan.ProjectExpr {
			expr, _ := e.(*ast.Node)
			var arg *ast.Node
			if expr != nil && expr.Kind == ast.FunctionCall && len(expr.Children) > 0 {
				arg = expr.Children[0]
			} else {
				arg = expr
			}
			if arg != nil && arg.Kind == ast.Identifier && arg.Val == "*" {
				collected[i] = append(collected[i], value.Int(1))
				continue
			}
			v, err := ev.Eval(arg)
			if err != nil {
				return false, err
			}
			collected[i] = append(collected[i], v)
		}
	}

	row := db.NewRow()
	for i, name := range a.plan.ProjectName {
		expr, _ := a.plan.ProjectExpr[i].(*ast.Node)
		var out value.Value
		if expr != nil && expr.Kind == ast.FunctionCall {
			v, err := eval.ApplyAggregate(expr.Val, collected[i])
			if err != nil {
				return false, err
			}
			out = v
		} else if first && len(collected[i]) > 0 {
			out = collected[i][0]
		}
		row.AddColumn(name, out)
	}

	a.row = row
	return true, nil
}

func (a *aggregationIter) Row() *db.Row { return a.row }

func (a *aggregationIter) Close() error { return a.child.Close() }
func (a *aggregationIter) Destroy()     { a.child.Destroy() }
