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
	"sort"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/eval"
	"github.com/gogo-agent/cyphergraph/plan/physical"
	"github.com/gogo-agent/cyphergraph/value"
)

// sortIter fully materializes its input on Open, evaluates every sort
// key expression once per row, and sorts with a stable O(n log n) sort,
// replacing the teacher's bubble sort.
type sortIter struct {
	base
	child Iterator
	exprs []*ast.Node
	desc  []bool

	rows []sortedRow
	idx  int
}

type sortedRow struct {
	row  *db.Row
	keys []value.Value
}

func newSort(p *physical.Node, child Iterator) *sortIter {
	exprs := make([]*ast.Node, 0, len(p.SortExpr))
	for _, e := range p.SortExpr {
		n, _ := e.(*ast.Node)
		exprs = append(exprs, n)
	}
	return &sortIter{base: base{children: []Iterator{child}}, child: child, exprs: exprs, desc: p.SortDesc}
}

func (s *sortIter) Open(ctx *db.Context) error {
	s.ctx = ctx
	if err := s.child.Open(ctx); err != nil {
		return err
	}

	ev := eval.New(ctx)
	prod, ok := s.child.(RowProducer)

	for {
		next, err := s.child.Next()
		if err != nil {
			return err
		}
		if !next {
			break
		}

		keys := make([]value.Value, len(s.exprs))
		for i, e := range s.exprs {
			v, err := ev.Eval(e)
			if err != nil {
				return err
			}
			keys[i] = v
		}

		var row *db.Row
		if ok {
			row = prod.Row()
		}
		s.rows = append(s.rows, sortedRow{row: row, keys: keys})
	}

	sort.SliceStable(s.rows, func(i, j int) bool {
		a, b := s.rows[i], s.rows[j]
		for k := range a.keys {
			if a.keys[k].Equal(b.keys[k]) {
				continue
			}
			less := value.SortLess(a.keys[k], b.keys[k])
			if k < len(s.desc) && s.desc[k] {
				return !less
			}
			return less
		}
		return false
	})

	return nil
}

func (s *sortIter) Next() (bool, error) {
	if s.idx >= len(s.rows) {
		return false, nil
	}
	s.idx++
	return true, nil
}

// Row returns the row most recently advanced to by Next, for a parent
// Projection/driver sitting above a Sort.
func (s *sortIter) Row() *db.Row {
	if s.idx == 0 || s.idx > len(s.rows) {
		return nil
	}
	return s.rows[s.idx-1].row
}

func (s *sortIter) Close() error { return s.child.Close() }
func (s *sortIter) Destroy()     { s.child.Destroy() }
