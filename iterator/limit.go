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
	"strconv"

	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/plan/physical"
)

// limitIter emits at most N rows from its child, then returns DONE
// without pulling further. The planner also lowers SKIP
// to a Limit node carrying the sentinel LimitN == -1 (skip-only, no cap)
// with the skip count stashed in Value; Open consumes that many rows
// before Next starts counting toward N.
type limitIter struct {
	base
	child   Iterator
	n       int
	skip    int
	emitted int
}

func newLimit(p *physical.Node, child Iterator) (*limitIter, error) {
	l := &limitIter{base: base{children: []Iterator{child}}, child: child, n: p.LimitN}
	if p.LimitN == -1 {
		skip, err := strconv.Atoi(p.Value)
		if err != nil {
			return nil, cerr.New(cerr.Misuse, "iterator: bad skip count %q", p.Value)
		}
		l.skip = skip
		l.n = -1
	} else if p.LimitN <= 0 {
		return nil, cerr.New(cerr.Misuse, "iterator: LIMIT requires N > 0, got %d", p.LimitN)
	}
	return l, nil
}

func (l *limitIter) Open(ctx *db.Context) error {
	l.ctx = ctx
	if err := l.child.Open(ctx); err != nil {
		return err
	}
	for i := 0; i < l.skip; i++ {
		ok, err := l.child.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

func (l *limitIter) Next() (bool, error) {
	if l.n >= 0 && l.emitted >= l.n {
		return false, nil
	}
	ok, err := l.child.Next()
	if err != nil || !ok {
		return false, err
	}
	l.emitted++
	return true, nil
}

func (l *limitIter) Row() *db.Row {
	if prod, ok := l.child.(RowProducer); ok {
		return prod.Row()
	}
	return nil
}

func (l *limitIter) Close() error { return l.child.Close() }
func (l *limitIter) Destroy()     { l.child.Destroy() }
