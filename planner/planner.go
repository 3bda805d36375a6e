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

// Package planner compiles a parsed query into a logical plan, optimizes
// it, and lowers it to a physical plan ready for the iterator package.
// Grounded on the teacher's sql/rules.go rewrite-pass
// pipeline (parse once, then a fixed sequence of tree rewrites), but built
// around the tagged logical/physical node types instead of the teacher's
// per-statement struct walk.
package planner

import (
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/plan/logical"
	"github.com/gogo-agent/cyphergraph/plan/physical"
)

// Planner holds the tunables used across Compile calls.
type Planner struct {
	Options Options
}

// New constructs a Planner with the given options.
func New(opts Options) *Planner {
	return &Planner{Options: opts}
}

// Compile turns a parsed Query node into one physical plan per branch: the
// first single query, followed by one per UNION arm. There is no logical
// or physical Union operator; branches are
// planned independently and concatenated by the caller at execution time,
// with UNION (as opposed to UNION ALL) deduplicating the concatenated rows.
func (pl *Planner) Compile(query *ast.Node) ([]*physical.Node, []bool, error) {

	if query.Kind != ast.Query {
		return nil, nil, plannerError("planner: expected Query, got %s", query.Kind)
	}

	var plans []*physical.Node
	var distinct []bool

	for _, child := range query.Children {
		switch child.Kind {
		case ast.SingleQuery:
			p, err := pl.compileOne(child)
			if err != nil {
				return nil, nil, err
			}
			plans = append(plans, p)
			distinct = append(distinct, false)
		case ast.Union:
			if len(child.Children) != 1 || child.Children[0].Kind != ast.SingleQuery {
				return nil, nil, plannerError("planner: malformed UNION arm")
			}
			p, err := pl.compileOne(child.Children[0])
			if err != nil {
				return nil, nil, err
			}
			plans = append(plans, p)
			distinct = append(distinct, child.Val != "ALL")
		default:
			return nil, nil, plannerError("planner: unexpected child of Query: %s", child.Kind)
		}
	}

	return plans, distinct, nil

}

// compileOne compiles, optimizes and lowers a single SingleQuery node.
func (pl *Planner) compileOne(sq *ast.Node) (*physical.Node, error) {
	_, physicalPlan, err := pl.compileOneWithLogical(sq)
	return physicalPlan, err
}

func (pl *Planner) compileOneWithLogical(sq *ast.Node) (*logical.Node, *physical.Node, error) {

	logicalPlan, err := pl.compileLogical(sq)
	if err != nil {
		return nil, nil, err
	}

	optimizeJoins(logicalPlan)
	logicalPlan = optimizeIndexUsage(logicalPlan, pl.Options)
	logicalPlan.EstimateCost()

	physicalPlan, err := lower(logicalPlan)
	if err != nil {
		return nil, nil, err
	}

	return logicalPlan, physicalPlan, nil

}

// CompileLogical compiles query's first single-query branch down to its
// optimized logical plan only, without lowering to a physical plan. Used
// by the host-level logical_plan/explain scalar functions;
// ordinary execution always goes through Compile.
func (pl *Planner) CompileLogical(query *ast.Node) (*logical.Node, error) {
	if query.Kind != ast.Query || len(query.Children) == 0 {
		return nil, plannerError("planner: expected a non-empty Query")
	}
	sq := query.Children[0]
	if sq.Kind == ast.Union {
		sq = sq.Children[0]
	}
	logicalPlan, _, err := pl.compileOneWithLogical(sq)
	return logicalPlan, err
}

// compileLogical walks a SingleQuery's clauses in source order, threading
// the plan built so far as `current` and combining each new reading clause
// with it via HashJoin, the default join strategy before optimize_joins
// runs.
func (pl *Planner) compileLogical(sq *ast.Node) (*logical.Node, error) {

	var current *logical.Node

	for _, clause := range sq.Children {
		switch clause.Kind {

		case ast.Match, ast.OptionalMatch:
			n, err := pl.compileReadingClause(clause)
			if err != nil {
				return nil, err
			}
			if current == nil {
				current = n
			} else {
				join := logical.New(logical.HashJoin)
				join.Add(current).Add(n)
				current = join
			}

		case ast.With, ast.Unwind:
			proj := logical.New(logical.Projection)
			proj.Expr = clause
			if current != nil {
				proj.Add(current)
			}
			current = proj

		case ast.Create:
			n := logical.New(logical.Create)
			n.Expr = clause
			if current != nil {
				n.Add(current)
			}
			current = n

		case ast.MergeClause:
			n := logical.New(logical.Merge)
			n.Expr = clause
			if current != nil {
				n.Add(current)
			}
			current = n

		case ast.SetClause, ast.RemoveClause:
			n := logical.New(logical.Set)
			n.Expr = clause
			if current != nil {
				n.Add(current)
			}
			current = n

		case ast.DeleteClause:
			n := logical.New(logical.Delete)
			n.Expr = clause
			if current != nil {
				n.Add(current)
			}
			current = n

		case ast.DetachDelete:
			n := logical.New(logical.DetachDelete)
			n.Expr = clause
			if current != nil {
				n.Add(current)
			}
			current = n

		case ast.Return:
			current = compileReturn(current, clause)

		default:
			return nil, plannerError("planner: unsupported clause %s", clause.Kind)
		}
	}

	if current == nil {
		return nil, plannerError("planner: empty query body")
	}

	return current, nil

}

// compileReadingClause lowers a Match/OptionalMatch ast node (pattern plus
// optional WHERE) into a logical plan.
func (pl *Planner) compileReadingClause(clause *ast.Node) (*logical.Node, error) {

	if len(clause.Children) == 0 || clause.Children[0].Kind != ast.Pattern {
		return nil, plannerError("planner: match clause missing pattern")
	}

	plan, err := compilePattern(clause.Children[0], clause.Kind == ast.OptionalMatch)
	if err != nil {
		return nil, err
	}

	for _, c := range clause.Children[1:] {
		if c.Kind == ast.Where {
			plan = applyWhere(plan, c.Children[0])
		}
	}

	return plan, nil

}

// compileReturn folds a Return ast node into Projection/Distinct/Sort/
// Skip/Limit logical operators, in that order.
func compileReturn(current *logical.Node, ret *ast.Node) *logical.Node {

	proj := logical.New(logical.Projection)
	proj.Expr = ret
	if current != nil {
		proj.Add(current)
	}
	result := proj

	if ret.Has(ast.FlagDistinct) {
		d := logical.New(logical.Distinct)
		d.Add(result)
		result = d
	}

	for _, c := range ret.Children {
		switch c.Kind {
		case ast.OrderBy:
			s := logical.New(logical.Sort)
			s.Expr = c
			s.Add(result)
			result = s
		case ast.Skip:
			sk := logical.New(logical.Skip)
			if len(c.Children) > 0 {
				sk.Expr = c.Children[0]
			}
			sk.Add(result)
			result = sk
		case ast.Limit:
			lim := logical.New(logical.Limit)
			if len(c.Children) > 0 {
				lim.Expr = c.Children[0]
			}
			lim.Add(result)
			result = lim
		}
	}

	return result

}
