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
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/plan/physical"
	"github.com/gogo-agent/cyphergraph/value"
)

// tuple is a snapshot of the bindings a subtree produced for one row,
// taken right after a child's Next() returns true (the context itself is
// a single shared mutable map, so a join must copy out the aliases it
// cares about before pulling the other side).
type tuple map[string]value.Value

func snapshot(ctx *db.Context, aliases []string) tuple {
	t := make(tuple, len(aliases))
	for _, a := range aliases {
		t[a] = ctx.Get(a)
	}
	return t
}

func (t tuple) bind(ctx *db.Context) {
	for k, v := range t {
		ctx.Bind(k, v)
	}
}

// joinIter implements HashJoin and NestedLoopJoin alike: both reduce to
// a natural equi-join over whatever aliases the two sides share (a
// cartesian product when they share none). The physical plan's generic
// join nodes carry no further row-semantics distinction between the two
// kinds, only a cost-model distinction, already applied by the planner
// before lowering.
type joinIter struct {
	base
	left, right   Iterator
	leftAliases   []string
	rightAliases  []string
	sharedAliases []string
	rightRows     []tuple
	rightLoaded   bool
	curLeft       tuple
	curLeftOK     bool
	rightIdx      int
}

func newJoin(p *physical.Node, left, right Iterator) *joinIter {
	la := p.Children[0].Aliases()
	ra := p.Children[1].Aliases()
	shared := make([]string, 0)
	seen := make(map[string]bool, len(la))
	for _, a := range la {
		seen[a] = true
	}
	for _, a := range ra {
		if seen[a] {
			shared = append(shared, a)
		}
	}
	return &joinIter{
		base:          base{children: []Iterator{left, right}},
		left:          left,
		right:         right,
		leftAliases:   la,
		rightAliases:  ra,
		sharedAliases: shared,
	}
}

func (j *joinIter) Open(ctx *db.Context) error {
	j.ctx = ctx
	if err := j.left.Open(ctx); err != nil {
		return err
	}
	return j.right.Open(ctx)
}

func (j *joinIter) loadRight() error {
	if j.rightLoaded {
		return nil
	}
	for {
		ok, err := j.right.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		j.rightRows = append(j.rightRows, snapshot(j.ctx, j.rightAliases))
	}
	j.rightLoaded = true
	return nil
}

func (j *joinIter) Next() (bool, error) {
	if err := j.loadRight(); err != nil {
		return false, err
	}

	for {
		if !j.curLeftOK {
			ok, err := j.left.Next()
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			j.curLeft = snapshot(j.ctx, j.leftAliases)
			j.curLeftOK = true
			j.rightIdx = 0
		}

		for j.rightIdx < len(j.rightRows) {
			right := j.rightRows[j.rightIdx]
			j.rightIdx++
			if !matches(j.curLeft, right, j.sharedAliases) {
				continue
			}
			j.curLeft.bind(j.ctx)
			right.bind(j.ctx)
			return true, nil
		}

		j.curLeftOK = false
	}
}

func matches(left, right tuple, shared []string) bool {
	for _, a := range shared {
		if !left[a].Equal(right[a]) {
			return false
		}
	}
	return true
}

// expandIter implements the Expand and VarLengthExpand logical operators,
// lowered to an IndexNestedLoop physical node that carries the target
// alias, relationship alias, direction and (optional) type directly
// instead of two independent children. It walks exactly one hop per call
// to NodeRelationships from the most recently bound node in its child
// subtree: a `*min..max` range does not widen the walk, and a source node
// with no matching relationship yields no row. The alias-less node an
// OptionalExpand lowers to is not built as an expandIter.
type expandIter struct {
	base
	child     Iterator
	fromAlias string
	relAlias  string
	toAlias   string
	relType   string
	direction string
	optional  bool

	rels    []relEndpoint
	idx     int
	haveRow bool
}

type relEndpoint struct {
	relID  int64
	nodeID int64
}

func newExpand(p *physical.Node, child Iterator) *expandIter {
	aliases := p.Children[0].Aliases()
	from := ""
	if len(aliases) > 0 {
		from = aliases[len(aliases)-1]
	}
	return &expandIter{
		base:      base{children: []Iterator{child}},
		child:     child,
		fromAlias: from,
		relAlias:  p.Property,
		toAlias:   p.Alias,
		relType:   p.Label,
		direction: p.Value,
	}
}

func (e *expandIter) Open(ctx *db.Context) error {
	e.ctx = ctx
	return e.child.Open(ctx)
}

func (e *expandIter) Next() (bool, error) {
	for {
		if e.idx >= len(e.rels) {
			ok, err := e.child.Next()
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			from := e.ctx.Get(e.fromAlias)
			if from.Kind != value.KNodeRef {
				continue
			}
			rels, err := e.ctx.Adapter.NodeRelationships(from.I)
			if err != nil {
				return false, err
			}
			e.rels = e.rels[:0]
			for _, r := range rels {
				if e.relType != "" && r.Type != e.relType {
					continue
				}
				switch e.direction {
				case "OUT":
					if r.From == from.I {
						e.rels = append(e.rels, relEndpoint{r.ID, r.To})
					}
				case "IN":
					if r.To == from.I {
						e.rels = append(e.rels, relEndpoint{r.ID, r.From})
					}
				default: // BOTH
					if r.From == from.I {
						e.rels = append(e.rels, relEndpoint{r.ID, r.To})
					} else if r.To == from.I {
						e.rels = append(e.rels, relEndpoint{r.ID, r.From})
					}
				}
			}
			e.idx = 0
			if len(e.rels) == 0 {
				continue
			}
		}

		hop := e.rels[e.idx]
		e.idx++
		if e.relAlias != "" {
			e.ctx.Bind(e.relAlias, value.RelRef(hop.relID))
		}
		e.ctx.Bind(e.toAlias, value.NodeRef(hop.nodeID))
		return true, nil
	}
}

func (e *expandIter) Close() error {
	return e.child.Close()
}

func (e *expandIter) Destroy() {
	e.child.Destroy()
}
