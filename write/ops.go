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
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/eval"
	"github.com/gogo-agent/cyphergraph/iterator"
	"github.com/gogo-agent/cyphergraph/value"
)

// op is the shape shared by every write operator: a bound Tx, the raw
// AST clause carried on the physical node, an optional read-side child
// supplying one row of bindings per mutation, and a once-only fallback
// for a standalone updating clause with no preceding reading clause.
type op struct {
	tx     *Tx
	clause *ast.Node
	child  iterator.Iterator
	ctx    *db.Context
	done   bool
	apply  func(ev *eval.Evaluator) error
}

func (o *op) Open(ctx *db.Context) error {
	o.ctx = ctx
	if o.child != nil {
		return o.child.Open(ctx)
	}
	return nil
}

func (o *op) Next() (bool, error) {
	if o.child != nil {
		ok, err := o.child.Next()
		if err != nil || !ok {
			return false, err
		}
	} else {
		if o.done {
			return false, nil
		}
		o.done = true
	}
	if err := o.apply(eval.New(o.ctx)); err != nil {
		return false, err
	}
	return true, nil
}

func (o *op) Close() error {
	if o.child != nil {
		return o.child.Close()
	}
	return nil
}

func (o *op) Destroy() {
	if o.child != nil {
		o.child.Destroy()
	}
}

func newCreateOp(tx *Tx, clause *ast.Node, child iterator.Iterator) *op {
	o := &op{tx: tx, clause: clause, child: child}
	o.apply = func(ev *eval.Evaluator) error { return applyCreate(tx, ev, o.ctx, clause) }
	return o
}

func newMergeOp(tx *Tx, clause *ast.Node, child iterator.Iterator) *op {
	o := &op{tx: tx, clause: clause, child: child}
	o.apply = func(ev *eval.Evaluator) error { return applyMerge(tx, ev, o.ctx, clause) }
	return o
}

func newSetOp(tx *Tx, clause *ast.Node, child iterator.Iterator) *op {
	o := &op{tx: tx, clause: clause, child: child}
	o.apply = func(ev *eval.Evaluator) error { return applySet(tx, ev, o.ctx, clause) }
	return o
}

func newDeleteOp(tx *Tx, clause *ast.Node, child iterator.Iterator) *op {
	o := &op{tx: tx, clause: clause, child: child}
	o.apply = func(ev *eval.Evaluator) error { return applyDelete(tx, ev, clause) }
	return o
}

// applyCreate walks a Create clause's Pattern: each Path is a sequence of
// alternating NodePattern/RelPattern children. A NodePattern whose alias
// is already bound and carries no
// labels or map literal references the existing node instead of creating
// a new one, matching standard Cypher chaining (e.g. MATCH (a),(b)
// CREATE (a)-[:KNOWS]->(b)); every other NodePattern creates a fresh
// node.
func applyCreate(tx *Tx, ev *eval.Evaluator, ctx *db.Context, clause *ast.Node) error {
	pattern := clause.Children[0]
	for _, path := range pattern.Children {
		if err := createPath(tx, ev, ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func createPath(tx *Tx, ev *eval.Evaluator, ctx *db.Context, path *ast.Node) error {
	parts := path.Children
	if len(parts) == 0 {
		return cerr.New(cerr.Misuse, "write: CREATE: empty pattern path")
	}

	prevID, err := createOrReuseNode(tx, ev, ctx, parts[0])
	if err != nil {
		return err
	}

	for i := 1; i < len(parts); i += 2 {
		relNode := parts[i]
		if i+1 >= len(parts) {
			return cerr.New(cerr.Misuse, "write: CREATE: relationship pattern missing its target node")
		}
		nodeNode := parts[i+1]

		nextID, err := createOrReuseNode(tx, ev, ctx, nodeNode)
		if err != nil {
			return err
		}

		fromID, toID := prevID, nextID
		if relNode.Has(ast.FlagDirIn) {
			fromID, toID = nextID, prevID
		}

		relType := firstLabel(findChild(relNode, ast.Labels))
		if relType == "" {
			return cerr.New(cerr.InvalidFormat, "write: CREATE: relationship requires exactly one type")
		}

		props, err := evalProps(ev, findChild(relNode, ast.Map))
		if err != nil {
			return err
		}

		relID, err := tx.CreateRel(fromID, toID, relType, props)
		if err != nil {
			return err
		}
		if relNode.Val != "" {
			ctx.Bind(relNode.Val, value.RelRef(relID))
		}

		prevID = nextID
	}

	return nil
}

func createOrReuseNode(tx *Tx, ev *eval.Evaluator, ctx *db.Context, n *ast.Node) (int64, error) {
	labelsNode := findChild(n, ast.Labels)
	mapNode := findChild(n, ast.Map)

	if n.Val != "" && labelsNode == nil && mapNode == nil {
		if bound := ctx.Get(n.Val); bound.Kind == value.KNodeRef {
			return bound.I, nil
		}
	}

	labels := collectLabels(labelsNode)
	props, err := evalProps(ev, mapNode)
	if err != nil {
		return 0, err
	}

	id, err := tx.CreateNode(labels, props)
	if err != nil {
		return 0, err
	}
	if n.Val != "" {
		ctx.Bind(n.Val, value.NodeRef(id))
	}
	return id, nil
}

// applyMerge implements MERGE for a single node pattern; MERGE on
// relationships is not implemented.
func applyMerge(tx *Tx, ev *eval.Evaluator, ctx *db.Context, clause *ast.Node) error {
	pattern := clause.Children[0]
	if len(pattern.Children) != 1 || len(pattern.Children[0].Children) != 1 {
		return cerr.New(cerr.Misuse, "write: MERGE: only a single node pattern is supported")
	}
	node := pattern.Children[0].Children[0]
	if node.Kind != ast.NodePattern {
		return cerr.New(cerr.Misuse, "write: MERGE: only a single node pattern is supported")
	}

	labels := collectLabels(findChild(node, ast.Labels))
	matchProps, err := evalProps(ev, findChild(node, ast.Map))
	if err != nil {
		return err
	}

	var onCreate, onMatch value.Value
	for _, c := range clause.Children[1:] {
		switch c.Kind {
		case ast.OnCreate:
			if onCreate, err = extractSetProps(ev, c.Children[0]); err != nil {
				return err
			}
		case ast.OnMatch:
			if onMatch, err = extractSetProps(ev, c.Children[0]); err != nil {
				return err
			}
		}
	}
	if onCreate.Kind != value.KMap {
		onCreate = value.NewMap(nil)
	}
	if onMatch.Kind != value.KMap {
		onMatch = value.NewMap(nil)
	}

	id, wasCreated, err := tx.MergeNode(labels, matchProps, onCreate, onMatch)
	if err != nil {
		return err
	}
	if node.Val != "" {
		ctx.Bind(node.Val, value.NodeRef(id))
	}
	ctx.Bind("was_created", value.Bool(wasCreated))
	return nil
}

// extractSetProps reduces an ON CREATE/ON MATCH SetClause's property
// items (alias.prop = expr) to a Map keyed by property name; label items
// are not meaningful in this position and are rejected.
func extractSetProps(ev *eval.Evaluator, set *ast.Node) (value.Value, error) {
	pairs := make([]value.Pair, 0, len(set.Children))
	for _, item := range set.Children {
		if item.Has(ast.FlagLabelOp) {
			return value.Null, cerr.New(cerr.Misuse, "write: ON CREATE/ON MATCH supports property assignment only")
		}
		_, prop := splitAliasProp(item.Val)
		v, err := ev.Eval(item.Children[0])
		if err != nil {
			return value.Null, err
		}
		pairs = append(pairs, value.Pair{Key: prop, Val: v})
	}
	return value.NewMap(pairs), nil
}

// applySet implements both SET and REMOVE. The grammar gives them
// separate clauses; the planner folds both into one logical/physical Set
// operator, distinguished here by clause.Kind.
func applySet(tx *Tx, ev *eval.Evaluator, ctx *db.Context, clause *ast.Node) error {
	isRemove := clause.Kind == ast.RemoveClause

	for _, item := range clause.Children {
		if item.Has(ast.FlagLabelOp) {
			owner := ctx.Get(item.Val)
			if owner.Kind != value.KNodeRef {
				return cerr.New(cerr.Mismatch, "write: %q is not a bound node", item.Val)
			}
			for _, labelID := range findChild(item, ast.Labels).Children {
				var err error
				if isRemove {
					err = tx.RemoveLabel(owner.I, labelID.Val)
				} else {
					err = tx.SetLabel(owner.I, labelID.Val)
				}
				if err != nil {
					return err
				}
			}
			continue
		}

		alias, prop := splitAliasProp(item.Val)
		owner := ctx.Get(alias)
		nodeID, edgeID, ok := ownerIDs(owner)
		if !ok {
			return cerr.New(cerr.Mismatch, "write: %q is not a bound node or relationship", alias)
		}

		if isRemove {
			if err := tx.RemoveProperty(nodeID, edgeID, prop); err != nil {
				return err
			}
			continue
		}

		v, err := ev.Eval(item.Children[0])
		if err != nil {
			return err
		}
		if err := tx.SetProperty(nodeID, edgeID, prop, v); err != nil {
			return err
		}
	}

	return nil
}

// applyDelete implements DELETE and DETACH DELETE: each child expression
// must evaluate to a bound node or relationship reference.
func applyDelete(tx *Tx, ev *eval.Evaluator, clause *ast.Node) error {
	detach := clause.Kind == ast.DetachDelete

	for _, expr := range clause.Children {
		v, err := ev.Eval(expr)
		if err != nil {
			return err
		}
		switch v.Kind {
		case value.KNodeRef:
			if detach {
				err = tx.DetachDeleteNode(v.I)
			} else {
				err = tx.DeleteNode(v.I)
			}
		case value.KRelRef:
			err = tx.DeleteRel(v.I)
		default:
			err = cerr.New(cerr.Mismatch, "write: DELETE target is not a node or relationship")
		}
		if err != nil {
			return err
		}
	}

	return nil
}
