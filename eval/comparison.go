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
	"regexp"
	"strings"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/value"
)

// evalComparison dispatches every Comparison node: equality/ordering
// ("=", "<>", "<", "<=", ">", ">="), string operators ("STARTS WITH",
// "ENDS WITH", "CONTAINS", "=~"), membership ("IN") and nullity ("IS
// NULL", "IS NOT NULL").
func (e *Evaluator) evalComparison(n *ast.Node) (value.Value, error) {

	if n.Val == "IS NULL" || n.Val == "IS NOT NULL" {
		v, err := e.Eval(n.Children[0])
		if err != nil {
			return value.Null, err
		}
		if n.Val == "IS NULL" {
			return value.Bool(v.IsNull()), nil
		}
		return value.Bool(!v.IsNull()), nil
	}

	left, err := e.Eval(n.Children[0])
	if err != nil {
		return value.Null, err
	}
	right, err := e.Eval(n.Children[1])
	if err != nil {
		return value.Null, err
	}

	// Null propagates through every remaining comparison.
	if left.IsNull() || right.IsNull() {
		return value.Null, nil
	}

	switch n.Val {

	case "=", "<>", "<", "<=", ">", ">=":
		c, err := value.Compare(left, right)
		if err != nil {
			return value.Null, err
		}
		switch n.Val {
		case "=":
			return value.Bool(c == 0), nil
		case "<>":
			return value.Bool(c != 0), nil
		case "<":
			return value.Bool(c < 0), nil
		case "<=":
			return value.Bool(c <= 0), nil
		case ">":
			return value.Bool(c > 0), nil
		case ">=":
			return value.Bool(c >= 0), nil
		}

	case "STARTS WITH":
		ls, rs, err := bothStrings(left, right)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(strings.HasPrefix(ls, rs)), nil

	case "ENDS WITH":
		ls, rs, err := bothStrings(left, right)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(strings.HasSuffix(ls, rs)), nil

	case "CONTAINS":
		if left.Kind == value.KString && right.Kind == value.KString {
			return value.Bool(strings.Contains(left.S, right.S)), nil
		}
		if left.Kind == value.KList {
			for _, item := range left.List {
				if item.Equal(right) {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}
		return value.Null, cerr.New(cerr.Mismatch, "eval: CONTAINS requires a string or list left operand")

	case "=~":
		ls, rs, err := bothStrings(left, right)
		if err != nil {
			return value.Null, err
		}
		re, err := regexp.Compile(rs)
		if err != nil {
			return value.Null, cerr.New(cerr.InvalidFormat, "eval: bad regex %q: %v", rs, err)
		}
		return value.Bool(re.MatchString(ls)), nil

	case "IN":
		if right.Kind != value.KList {
			return value.Null, cerr.New(cerr.Mismatch, "eval: IN requires a list right operand, got %s", right.TypeName())
		}
		for _, item := range right.List {
			if item.Equal(left) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	}

	return value.Null, cerr.New(cerr.Misuse, "eval: unknown comparison operator %q", n.Val)
}

func bothStrings(a, b value.Value) (string, string, error) {
	if a.Kind != value.KString || b.Kind != value.KString {
		return "", "", cerr.New(cerr.Mismatch, "eval: operator requires string operands, got %s and %s", a.TypeName(), b.TypeName())
	}
	return a.S, b.S, nil
}
