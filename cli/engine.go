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

// Package cli exposes the query engine's host-level scalar functions
// (the planner/explain surface and the write surface) as a thin cobra
// command tree, grounded on the teacher's cli package (a root
// command plus one cobra.Command per operation, options bound with
// PersistentFlags in init()). Each scalar function is also a plain
// exported method on Engine that a host embedding this module can call
// directly without going through the command line at all.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gogo-agent/cyphergraph/cnf"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/iterator"
	"github.com/gogo-agent/cyphergraph/parser"
	"github.com/gogo-agent/cyphergraph/plan/physical"
	"github.com/gogo-agent/cyphergraph/planner"
	"github.com/gogo-agent/cyphergraph/storage"
	"github.com/gogo-agent/cyphergraph/storage/memstore"
	"github.com/gogo-agent/cyphergraph/storage/sqlstore"
	"github.com/gogo-agent/cyphergraph/value"
	"github.com/gogo-agent/cyphergraph/write"
)

// Engine bundles the pieces a running session needs: a storage adapter, a
// write Controller serializing transactions against it, and the planner
// options in effect. One Engine is built per cli invocation;
// nothing here is a package-level singleton.
type Engine struct {
	Adapter storage.Adapter
	Planner *planner.Planner
	Control *write.Controller
}

// NewEngine opens the storage backend named by opts.DB.Kind and wires a
// Planner and write.Controller around it.
func NewEngine(opts cnf.Options) (*Engine, error) {
	var adapter storage.Adapter
	switch opts.DB.Kind {
	case "", "mem":
		adapter = memstore.New()
	case "sql":
		s, err := sqlstore.Open(opts.DB.DSN, opts.DB.Prefix)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(); err != nil {
			return nil, err
		}
		adapter = s
	default:
		return nil, fmt.Errorf("cli: unknown --db backend %q", opts.DB.Kind)
	}

	po := planner.Default()
	po.Index.Enabled = opts.Index.Enabled
	if opts.Index.CostFactor != 0 {
		po.Index.CostFactor = opts.Index.CostFactor
	}

	return &Engine{
		Adapter: adapter,
		Planner: planner.New(po),
		Control: write.NewController(),
	}, nil
}

func (e *Engine) newContext() *db.Context {
	return db.NewContext(e.Adapter)
}

// Plan returns q's physical plan, pretty-printed (the `plan(q)` scalar
// function).
func (e *Engine) Plan(q string) (string, error) {
	node, err := parser.Parse(q)
	if err != nil {
		return "", err
	}
	plans, _, err := e.Planner.Compile(node)
	if err != nil {
		return "", err
	}
	return joinPlans(plans), nil
}

// LogicalPlan returns q's optimized logical plan, pretty-printed (the
// `logical_plan(q)` scalar function).
func (e *Engine) LogicalPlan(q string) (string, error) {
	node, err := parser.Parse(q)
	if err != nil {
		return "", err
	}
	lp, err := e.Planner.CompileLogical(node)
	if err != nil {
		return "", err
	}
	return lp.String(), nil
}

// Explain returns q's logical plan, physical plan, and a one-line cost
// summary plus the planner options in effect (the `explain(q)` scalar
// function).
func (e *Engine) Explain(q string) (string, error) {
	node, err := parser.Parse(q)
	if err != nil {
		return "", err
	}
	lp, err := e.Planner.CompileLogical(node)
	if err != nil {
		return "", err
	}
	plans, _, err := e.Planner.Compile(node)
	if err != nil {
		return "", err
	}
	var total float64
	for _, p := range plans {
		total += p.Cost
	}
	return fmt.Sprintf(
		"logical:\n%s\nphysical:\n%sflags: index_enabled=%v index_cost_factor=%.3f\ntotal cost: %.2f\n",
		lp.String(), joinPlans(plans), e.Planner.Options.Index.Enabled, e.Planner.Options.Index.CostFactor, total,
	), nil
}

// TestPlans returns the fixed fixture queries used to sanity-check the
// planner (the `test_plans()` scalar function): each fixture query on its
// own line, followed by its compiled physical plan.
func (e *Engine) TestPlans() (string, error) {
	fixtures := []string{
		"MATCH (n:Person) RETURN n",
		"MATCH (a:Person)-[:KNOWS]->(b:Person) RETURN a, b",
		"MATCH (n:Person) WHERE n.age > 30 RETURN n ORDER BY n.age LIMIT 10",
	}
	var out string
	for _, q := range fixtures {
		p, err := e.Plan(q)
		if err != nil {
			return "", err
		}
		out += q + "\n" + p + "\n"
	}
	return out, nil
}

func joinPlans(plans []*physical.Node) string {
	var out string
	for i, p := range plans {
		if i > 0 {
			out += "---\n"
		}
		out += p.String()
	}
	return out
}

// CreateNode creates a node under its own autocommit transaction and
// returns a JSON summary.
func (e *Engine) CreateNode(labels []string, props value.Value) (string, error) {
	ctx := e.newContext()
	tx := e.Control.Begin(ctx)
	id, err := tx.CreateNode(labels, props)
	if err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return jsonSummary(map[string]interface{}{"id": id, "labels": labels})
}

// CreateRelationship creates a relationship under its own autocommit
// transaction and returns a JSON summary.
func (e *Engine) CreateRelationship(from, to int64, relType string, props value.Value) (string, error) {
	ctx := e.newContext()
	tx := e.Control.Begin(ctx)
	id, err := tx.CreateRel(from, to, relType, props)
	if err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return jsonSummary(map[string]interface{}{"id": id, "from": from, "to": to, "type": relType})
}

// MergeNode runs MERGE under its own autocommit transaction and returns a
// JSON summary including was_created.
func (e *Engine) MergeNode(labels []string, matchProps, onCreate, onMatch value.Value) (string, error) {
	ctx := e.newContext()
	tx := e.Control.Begin(ctx)
	id, wasCreated, err := tx.MergeNode(labels, matchProps, onCreate, onMatch)
	if err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return jsonSummary(map[string]interface{}{"id": id, "was_created": wasCreated})
}

// SetProperty sets a single property on a node or relationship under its
// own autocommit transaction.
func (e *Engine) SetProperty(nodeID, edgeID int64, property string, v value.Value) (string, error) {
	ctx := e.newContext()
	tx := e.Control.Begin(ctx)
	if err := tx.SetProperty(nodeID, edgeID, property, v); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return jsonSummary(map[string]interface{}{"node": nodeID, "rel": edgeID, "property": property})
}

// DeleteNode deletes a node, detaching its relationships first if detach
// is set, under its own autocommit transaction.
func (e *Engine) DeleteNode(id int64, detach bool) (string, error) {
	ctx := e.newContext()
	tx := e.Control.Begin(ctx)
	var err error
	if detach {
		err = tx.DetachDeleteNode(id)
	} else {
		err = tx.DeleteNode(id)
	}
	if err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return jsonSummary(map[string]interface{}{"id": id, "detached": detach})
}

// BeginWrite opens a long-lived write transaction the caller drives
// across several CREATE/MERGE/SET/DELETE calls before Commit or Rollback
// (the `begin_write` scalar function).
func (e *Engine) BeginWrite() (*db.Context, *write.Tx) {
	ctx := e.newContext()
	return ctx, e.Control.Begin(ctx)
}

func jsonSummary(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RunQuery compiles and executes q end to end against a fresh context,
// driving either a read-only iterator or, for updating clauses, the
// write engine, and returns the resulting bound variables serialized as
// JSON lines. Used by the `cli pipe` REPL.
func (e *Engine) RunQuery(q string) (string, error) {
	ctx := e.newContext()
	node, err := parser.Parse(q)
	if err != nil {
		return "", err
	}
	plans, _, err := e.Planner.Compile(node)
	if err != nil {
		return "", err
	}

	tx := e.Control.Begin(ctx)

	var rows []string
	for _, p := range plans {
		it, err := write.Build(tx, p)
		if err != nil {
			tx.Rollback()
			return "", err
		}
		if err := it.Open(ctx); err != nil {
			it.Destroy()
			tx.Rollback()
			return "", err
		}
		for {
			ok, err := it.Next()
			if err != nil {
				it.Close()
				it.Destroy()
				tx.Rollback()
				return "", err
			}
			if !ok {
				break
			}
			if rp, ok := it.(iterator.RowProducer); ok {
				if row := rp.Row(); row != nil {
					rows = append(rows, row.ToJSON())
				}
			}
		}
		it.Close()
		it.Destroy()
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	out := ""
	for _, r := range rows {
		out += r + "\n"
	}
	return out, nil
}
