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

// projectIter implements Projection: for each input row it evaluates
// every configured projection expression and binds the result under its
// column name, so both a downstream Row (via Row()) and later operators
// (Sort, Filter on a WITH-introduced alias) can see it.
//
// A physical node lowered from Unwind (Property == "UNWIND") instead
// evaluates its single expression once per upstream row and emits one
// output row per element of the resulting list.
type projectIter struct {
	base
	child Iterator
	plan  *physical.Node

	unwind     bool
	unwindList []value.Value
	unwindIdx  int

	distinct bool
	seen     []db.Row
	lastRow  *db.Row
}

func newProject(p *physical.Node, child Iterator) *projectIter {
	return &projectIter{
		base:     base{children: []Iterator{child}},
		child:    child,
		plan:     p,
		unwind:   p.Property == "UNWIND",
		distinct: p.Index == "DISTINCT",
	}
}

func (pr *projectIter) Open(ctx *db.Context) error {
	pr.ctx = ctx
	return pr.child.Open(ctx)
}

func (pr *projectIter) Next() (bool, error) {
	ev := eval.New(pr.ctx)

	for {
		if pr.unwind {
			if pr.unwindIdx < len(pr.unwindList) {
				pr.ctx.Bind(pr.plan.ProjectName[0], pr.unwindList[pr.unwindIdx])
				pr.unwindIdx++
				return true, nil
			}
			ok, err := pr.child.Next()
			if err != nil || !ok {
				return false, err
			}
			var expr *ast.Node
			if len(pr.plan.ProjectExpr) > 0 {
				expr, _ = pr.plan.ProjectExpr[0].(*ast.Node)
			}
			list, err := ev.Eval(expr)
			if err != nil {
				return false, err
			}
			pr.unwindList = list.List
			pr.unwindIdx = 0
			continue
		}

		ok, err := pr.child.Next()
		if err != nil || !ok {
			return false, err
		}

		row := db.NewRow()
		for i, name := range pr.plan.ProjectName {
			var expr *ast.Node
			if i < len(pr.plan.ProjectExpr) {
				expr, _ = pr.plan.ProjectExpr[i].(*ast.Node)
			}
			v, err := ev.Eval(expr)
			if err != nil {
				return false, err
			}
			row.AddColumn(name, v)
			pr.ctx.Bind(name, v)
		}

		if pr.distinct {
			if pr.alreadySeen(row) {
				continue
			}
			pr.seen = append(pr.seen, *row)
		}

		pr.lastRow = row
		return true, nil
	}
}

// lastRow is read back by the caller (the top-level driver, or a nested
// Sort/Aggregation) via Row() after Next returns true.
func (pr *projectIter) Row() *db.Row { return pr.lastRow }

func (pr *projectIter) alreadySeen(row *db.Row) bool {
	for _, s := range pr.seen {
		if rowEqual(s, *row) {
			return true
		}
	}
	return false
}

func rowEqual(a, b db.Row) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		_, av := a.Column(i)
		_, bv := b.Column(i)
		if !av.Equal(bv) {
			return false
		}
	}
	return true
}

func (pr *projectIter) Close() error { return pr.child.Close() }
func (pr *projectIter) Destroy()     { pr.child.Destroy() }
