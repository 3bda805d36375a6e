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
)

// filterIter wraps a child; a row is emitted iff the filter expression
// evaluates to a non-null, non-false value.
type filterIter struct {
	base
	child Iterator
	expr  *ast.Node
}

func newFilter(p *physical.Node, child Iterator) *filterIter {
	expr, _ := p.FilterExpr.(*ast.Node)
	return &filterIter{base: base{children: []Iterator{child}}, child: child, expr: expr}
}

func (f *filterIter) Open(ctx *db.Context) error {
	f.ctx = ctx
	return f.child.Open(ctx)
}

func (f *filterIter) Next() (bool, error) {
	ev := eval.New(f.ctx)
	for {
		ok, err := f.child.Next()
		if err != nil || !ok {
			return false, err
		}
		if f.expr == nil {
			return true, nil
		}
		v, err := ev.Eval(f.expr)
		if err != nil {
			return false, err
		}
		if !v.IsNull() && v.Truthy() {
			return true, nil
		}
	}
}

func (f *filterIter) Close() error { return f.child.Close() }
func (f *filterIter) Destroy()     { f.child.Destroy() }
