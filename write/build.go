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

package write

import (
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/iterator"
	"github.com/gogo-agent/cyphergraph/plan/physical"
)

// Build extends iterator.Build to the five updating operators
// (Create/Merge/Set/Delete/DetachDelete) that iterator.Build itself
// refuses to construct. A write node's own child, when
// present, is always a read-only subtree (the preceding MATCH) or
// another write node (a query with several updating clauses in
// sequence, e.g. "CREATE (n) SET n.x = 1"); Build recurses so either
// shape works.
func Build(tx *Tx, p *physical.Node) (iterator.Iterator, error) {
	if p == nil {
		return nil, cerr.New(cerr.Misuse, "write: cannot build from a nil physical node")
	}

	switch p.Kind {

	case physical.Create, physical.Merge, physical.Set, physical.Delete, physical.DetachDelete:
		child, err := buildChild(tx, p)
		if err != nil {
			return nil, err
		}
		clause, ok := p.FilterExpr.(*ast.Node)
		if !ok || clause == nil {
			return nil, cerr.New(cerr.Misuse, "write: %s node carries no clause", p.Kind)
		}
		switch p.Kind {
		case physical.Create:
			return newCreateOp(tx, clause, child), nil
		case physical.Merge:
			return newMergeOp(tx, clause, child), nil
		case physical.Set:
			return newSetOp(tx, clause, child), nil
		default: // Delete, DetachDelete
			return newDeleteOp(tx, clause, child), nil
		}

	default:
		return iterator.Build(p)
	}
}

func buildChild(tx *Tx, p *physical.Node) (iterator.Iterator, error) {
	if len(p.Children) == 0 {
		return nil, nil
	}
	if len(p.Children) != 1 {
		return nil, cerr.New(cerr.Misuse, "write: %s requires at most one child", p.Kind)
	}
	return Build(tx, p.Children[0])
}
