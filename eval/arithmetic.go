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

package eval

import (
	"math"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/value"
)

// evalPower handles the right-associative "^" BinaryOp, the one
// arithmetic operator that always yields Float (IEEE double semantics).
func (e *Evaluator) evalPower(n *ast.Node) (value.Value, error) {
	left, err := e.Eval(n.Children[0])
	if err != nil {
		return value.Null, err
	}
	right, err := e.Eval(n.Children[1])
	if err != nil {
		return value.Null, err
	}
	if left.IsNull() || right.IsNull() {
		return value.Null, nil
	}
	lf, ok1 := asFloat(left)
	rf, ok2 := asFloat(right)
	if !ok1 || !ok2 {
		return value.Null, cerr.New(cerr.Mismatch, "eval: ^ requires numeric operands, got %s and %s", left.TypeName(), right.TypeName())
	}
	return value.Float(math.Pow(lf, rf)), nil
}

// evalArithmetic handles Additive ("+", "-") and Multiplicative ("*",
// "/", "%") nodes. "+" between two strings concatenates; every other
// combination requires numeric operands and follows the Int/Float
// widening rule: Int/Int stays Int, anything touching Float widens to
// Float.
func (e *Evaluator) evalArithmetic(n *ast.Node) (value.Value, error) {
	left, err := e.Eval(n.Children[0])
	if err != nil {
		return value.Null, err
	}
	right, err := e.Eval(n.Children[1])
	if err != nil {
		return value.Null, err
	}
	if left.IsNull() || right.IsNull() {
		return value.Null, nil
	}

	if n.Val == "+" && left.Kind == value.KString && right.Kind == value.KString {
		return value.Str(left.S + right.S), nil
	}

	if left.Kind == value.KInt && right.Kind == value.KInt {
		return intArith(n.Val, left.I, right.I)
	}

	lf, ok1 := asFloat(left)
	rf, ok2 := asFloat(right)
	if !ok1 || !ok2 {
		return value.Null, cerr.New(cerr.Mismatch, "eval: %s requires numeric operands, got %s and %s", n.Val, left.TypeName(), right.TypeName())
	}
	return floatArith(n.Val, lf, rf)
}

func intArith(op string, a, b int64) (value.Value, error) {
	switch op {
	case "+":
		return value.Int(a + b), nil
	case "-":
		return value.Int(a - b), nil
	case "*":
		return value.Int(a * b), nil
	case "/":
		if b == 0 {
			return value.Null, cerr.New(cerr.Range, "eval: division by zero")
		}
		return value.Int(a / b), nil
	case "%":
		if b == 0 {
			return value.Null, cerr.New(cerr.Range, "eval: modulo by zero")
		}
		return value.Int(a % b), nil
	}
	return value.Null, cerr.New(cerr.Misuse, "eval: unknown operator %q", op)
}

func floatArith(op string, a, b float64) (value.Value, error) {
	switch op {
	case "+":
		return value.Float(a + b), nil
	case "-":
		return value.Float(a - b), nil
	case "*":
		return value.Float(a * b), nil
	case "/":
		if b == 0 {
			return value.Null, cerr.New(cerr.Range, "eval: division by zero")
		}
		return value.Float(a / b), nil
	case "%":
		if b == 0 {
			return value.Null, cerr.New(cerr.Range, "eval: modulo by zero")
		}
		return value.Float(math.Mod(a, b)), nil
	}
	return value.Null, cerr.New(cerr.Misuse, "eval: unknown operator %q", op)
}

func asFloat(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.KInt:
		return float64(v.I), true
	case value.KFloat:
		return v.F, true
	}
	return 0, false
}
