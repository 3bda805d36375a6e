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

// Package eval implements the expression evaluator:
// Literal, Variable, Property, Arithmetic, Comparison, Logical, String,
// List, Map, FunctionCall and Case expressions, each reducing to a
// value.Value. Grounded on the teacher's util/fncs dispatch-table
// pattern (a name-keyed map of Go functions) and util/comp collation,
// generalized from sql.Value/interface{} to the closed value.Value sum
// type this engine uses everywhere.
package eval

import (
	"strconv"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/value"
)

// Evaluator reduces AST expression subtrees to Values against a single
// execution context. It holds no state of its own; constructing one is
// cheap and one is typically built per iterator.
type Evaluator struct {
	Ctx *db.Context
}

// New returns an Evaluator bound to ctx.
func New(ctx *db.Context) *Evaluator {
	return &Evaluator{Ctx: ctx}
}

// Eval reduces expr to a Value. The evaluator does not allocate into the
// context's bound-variable mapping; intermediate strings and collections
// it builds are tracked on the context's arena instead.
func (e *Evaluator) Eval(expr *ast.Node) (value.Value, error) {
	if expr == nil {
		return value.Null, nil
	}

	switch expr.Kind {

	case ast.Literal:
		return e.evalLiteral(expr)

	case ast.Identifier:
		return e.Ctx.Get(expr.Val), nil

	case ast.Param:
		return e.Ctx.Get("$" + expr.Val), nil

	case ast.Property:
		return e.evalProperty(expr)

	case ast.UnaryOp:
		return e.evalUnary(expr)

	case ast.BinaryOp:
		return e.evalPower(expr)

	case ast.Additive, ast.Multiplicative:
		return e.evalArithmetic(expr)

	case ast.Comparison:
		return e.evalComparison(expr)

	case ast.And, ast.Or, ast.Xor:
		return e.evalLogical(expr)

	case ast.Not:
		return e.evalNot(expr)

	case ast.List:
		return e.evalList(expr)

	case ast.Map:
		return e.evalMap(expr)

	case ast.FunctionCall:
		return e.evalFunctionCall(expr)

	case ast.Case:
		return e.evalCase(expr)

	default:
		return value.Null, cerr.New(cerr.Misuse, "eval: cannot evaluate %s", expr.Kind)
	}
}

func (e *Evaluator) evalLiteral(n *ast.Node) (value.Value, error) {
	switch {
	case n.Has(ast.FlagLitInt):
		i, err := strconv.ParseInt(n.Val, 10, 64)
		if err != nil {
			return value.Null, cerr.New(cerr.InvalidFormat, "eval: bad integer literal %q", n.Val)
		}
		return value.Int(i), nil

	case n.Has(ast.FlagLitFloat):
		f, err := strconv.ParseFloat(n.Val, 64)
		if err != nil {
			return value.Null, cerr.New(cerr.InvalidFormat, "eval: bad float literal %q", n.Val)
		}
		return value.Float(f), nil

	case n.Has(ast.FlagLitString):
		return value.Str(n.Val), nil

	case n.Has(ast.FlagLitBool):
		return value.Bool(n.Val == "true"), nil

	case n.Has(ast.FlagLitNull):
		return value.Null, nil
	}
	return value.Null, cerr.New(cerr.Misuse, "eval: literal node carries no type flag")
}

func (e *Evaluator) evalUnary(n *ast.Node) (value.Value, error) {
	v, err := e.Eval(n.Children[0])
	if err != nil {
		return value.Null, err
	}
	if v.IsNull() {
		return value.Null, nil
	}
	if n.Val == "+" {
		return v, nil
	}
	switch v.Kind {
	case value.KInt:
		return value.Int(-v.I), nil
	case value.KFloat:
		return value.Float(-v.F), nil
	}
	return value.Null, cerr.New(cerr.Mismatch, "eval: unary %s on %s", n.Val, v.TypeName())
}

func (e *Evaluator) evalNot(n *ast.Node) (value.Value, error) {
	v, err := e.Eval(n.Children[0])
	if err != nil {
		return value.Null, err
	}
	if v.IsNull() {
		return value.Null, nil
	}
	return value.Bool(!v.Truthy()), nil
}

func (e *Evaluator) evalLogical(n *ast.Node) (value.Value, error) {
	left, err := e.Eval(n.Children[0])
	if err != nil {
		return value.Null, err
	}
	right, err := e.Eval(n.Children[1])
	if err != nil {
		return value.Null, err
	}

	switch n.Kind {
	case ast.And:
		if !left.IsNull() && !left.Truthy() {
			return value.Bool(false), nil
		}
		if !right.IsNull() && !right.Truthy() {
			return value.Bool(false), nil
		}
		if left.IsNull() || right.IsNull() {
			return value.Null, nil
		}
		return value.Bool(true), nil

	case ast.Or:
		if !left.IsNull() && left.Truthy() {
			return value.Bool(true), nil
		}
		if !right.IsNull() && right.Truthy() {
			return value.Bool(true), nil
		}
		if left.IsNull() || right.IsNull() {
			return value.Null, nil
		}
		return value.Bool(false), nil

	default: // Xor
		if left.IsNull() || right.IsNull() {
			return value.Null, nil
		}
		return value.Bool(left.Truthy() != right.Truthy()), nil
	}
}
