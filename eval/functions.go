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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/value"
)

// fn is a single scalar or aggregate function implementation. Grounded
// on the teacher's util/fncs name-keyed dispatch table, generalized from
// sql.Value args to value.Value args.
type fn func(args []value.Value) (value.Value, error)

// funcs is the closed set of functions this evaluator knows, keyed by
// the case-insensitive Cypher spelling the parser hands back in a
// FunctionCall node's Val.
var funcs = map[string]fn{
	"toupper":     fnToUpper,
	"tolower":     fnToLower,
	"length":      fnLength,
	"trim":        fnTrim,
	"substring":   fnSubstring,
	"replace":     fnReplace,
	"abs":         fnAbs,
	"ceil":        fnCeil,
	"floor":       fnFloor,
	"round":       fnRound,
	"sqrt":        fnSqrt,
	"size":        fnSize,
	"head":        fnHead,
	"tail":        fnTail,
	"last":        fnLast,
	"tostring":    fnToString,
	"tointeger":   fnToInteger,
	"tofloat":     fnToFloat,
	"count":       fnCount,
	"sum":         fnSum,
	"avg":         fnAvg,
	"min":         fnMin,
	"max":         fnMax,
}

func (e *Evaluator) evalFunctionCall(n *ast.Node) (value.Value, error) {
	name := strings.ToLower(n.Val)

	if name == "count" && len(n.Children) == 1 && n.Children[0].Kind == ast.Identifier && n.Children[0].Val == "*" {
		return value.Int(0), cerr.New(cerr.Misuse, "eval: count(*) must be pre-aggregated by the caller")
	}

	impl, ok := funcs[name]
	if !ok {
		return value.Null, cerr.New(cerr.Misuse, "eval: unknown function %q", n.Val)
	}

	args := make([]value.Value, 0, len(n.Children))
	for _, c := range n.Children {
		v, err := e.Eval(c)
		if err != nil {
			return value.Null, err
		}
		args = append(args, v)
	}

	// Any scalar function short-circuits to Null if any argument is
	// Null; aggregates receive the list untouched (they decide null
	// handling per element).
	if !isAggregate(name) {
		for _, a := range args {
			if a.IsNull() {
				return value.Null, nil
			}
		}
	}

	return impl(args)
}

// ApplyAggregate runs the named aggregate function (count, sum, avg,
// min, max) over a pre-collected list of per-row values, for use by the
// Aggregation iterator, which is responsible for grouping rows and
// building that list before calling in: aggregates take a list, the
// caller pre-collects the group.
func ApplyAggregate(name string, values []value.Value) (value.Value, error) {
	impl, ok := funcs[strings.ToLower(name)]
	if !ok || !isAggregate(strings.ToLower(name)) {
		return value.Null, cerr.New(cerr.Misuse, "eval: %q is not an aggregate function", name)
	}
	return impl([]value.Value{value.NewList(values)})
}

func isAggregate(name string) bool {
	switch name {
	case "count", "sum", "avg", "min", "max":
		return true
	}
	return false
}

func wantString(args []value.Value, i int) (string, error) {
	if i >= len(args) || args[i].Kind != value.KString {
		return "", cerr.New(cerr.Mismatch, "eval: expected a string argument")
	}
	return args[i].S, nil
}

func wantNumber(args []value.Value, i int) (float64, bool, error) {
	if i >= len(args) {
		return 0, false, cerr.New(cerr.Mismatch, "eval: missing numeric argument")
	}
	f, ok := asFloat(args[i])
	if !ok {
		return 0, false, cerr.New(cerr.Mismatch, "eval: expected a numeric argument, got %s", args[i].TypeName())
	}
	return f, args[i].Kind == value.KInt, nil
}

func fnToUpper(a []value.Value) (value.Value, error) {
	s, err := wantString(a, 0)
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.ToUpper(s)), nil
}

func fnToLower(a []value.Value) (value.Value, error) {
	s, err := wantString(a, 0)
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.ToLower(s)), nil
}

func fnTrim(a []value.Value) (value.Value, error) {
	s, err := wantString(a, 0)
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.TrimSpace(s)), nil
}

func fnLength(a []value.Value) (value.Value, error) {
	if len(a) == 0 {
		return value.Null, cerr.New(cerr.Misuse, "eval: length() requires one argument")
	}
	switch a[0].Kind {
	case value.KString:
		return value.Int(int64(len([]rune(a[0].S)))), nil
	case value.KList:
		return value.Int(int64(len(a[0].List))), nil
	}
	return value.Null, cerr.New(cerr.Mismatch, "eval: length() requires a string or list, got %s", a[0].TypeName())
}

func fnSubstring(a []value.Value) (value.Value, error) {
	s, err := wantString(a, 0)
	if err != nil {
		return value.Null, err
	}
	start, _, err := wantNumber(a, 1)
	if err != nil {
		return value.Null, err
	}
	runes := []rune(s)
	i := int(start)
	if i < 0 {
		i = 0
	}
	if i > len(runes) {
		i = len(runes)
	}
	n := len(runes) - i
	if len(a) >= 3 {
		count, _, err := wantNumber(a, 2)
		if err != nil {
			return value.Null, err
		}
		n = int(count)
	}
	if n < 0 {
		n = 0
	}
	if i+n > len(runes) {
		n = len(runes) - i
	}
	return value.Str(string(runes[i : i+n])), nil
}

func fnReplace(a []value.Value) (value.Value, error) {
	s, err := wantString(a, 0)
	if err != nil {
		return value.Null, err
	}
	old, err := wantString(a, 1)
	if err != nil {
		return value.Null, err
	}
	repl, err := wantString(a, 2)
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.ReplaceAll(s, old, repl)), nil
}

func fnAbs(a []value.Value) (value.Value, error) {
	if len(a) == 0 {
		return value.Null, cerr.New(cerr.Misuse, "eval: abs() requires one argument")
	}
	if a[0].Kind == value.KInt {
		if a[0].I < 0 {
			return value.Int(-a[0].I), nil
		}
		return a[0], nil
	}
	f, _, err := wantNumber(a, 0)
	if err != nil {
		return value.Null, err
	}
	return value.Float(math.Abs(f)), nil
}

func fnCeil(a []value.Value) (value.Value, error) {
	f, _, err := wantNumber(a, 0)
	if err != nil {
		return value.Null, err
	}
	return value.Float(math.Ceil(f)), nil
}

func fnFloor(a []value.Value) (value.Value, error) {
	f, _, err := wantNumber(a, 0)
	if err != nil {
		return value.Null, err
	}
	return value.Float(math.Floor(f)), nil
}

func fnRound(a []value.Value) (value.Value, error) {
	f, _, err := wantNumber(a, 0)
	if err != nil {
		return value.Null, err
	}
	return value.Float(math.Round(f)), nil
}

func fnSqrt(a []value.Value) (value.Value, error) {
	f, _, err := wantNumber(a, 0)
	if err != nil {
		return value.Null, err
	}
	if f < 0 {
		return value.Null, cerr.New(cerr.Range, "eval: sqrt() of a negative number")
	}
	return value.Float(math.Sqrt(f)), nil
}

func fnSize(a []value.Value) (value.Value, error) {
	return fnLength(a)
}

func fnHead(a []value.Value) (value.Value, error) {
	if len(a) == 0 || a[0].Kind != value.KList {
		return value.Null, cerr.New(cerr.Mismatch, "eval: head() requires a list")
	}
	if len(a[0].List) == 0 {
		return value.Null, nil
	}
	return a[0].List[0], nil
}

func fnTail(a []value.Value) (value.Value, error) {
	if len(a) == 0 || a[0].Kind != value.KList {
		return value.Null, cerr.New(cerr.Mismatch, "eval: tail() requires a list")
	}
	if len(a[0].List) == 0 {
		return value.NewList(nil), nil
	}
	return value.NewList(append([]value.Value(nil), a[0].List[1:]...)), nil
}

func fnLast(a []value.Value) (value.Value, error) {
	if len(a) == 0 || a[0].Kind != value.KList {
		return value.Null, cerr.New(cerr.Mismatch, "eval: last() requires a list")
	}
	if len(a[0].List) == 0 {
		return value.Null, nil
	}
	return a[0].List[len(a[0].List)-1], nil
}

func fnToString(a []value.Value) (value.Value, error) {
	if len(a) == 0 {
		return value.Null, cerr.New(cerr.Misuse, "eval: toString() requires one argument")
	}
	switch a[0].Kind {
	case value.KString:
		return a[0], nil
	case value.KInt:
		return value.Str(strconv.FormatInt(a[0].I, 10)), nil
	case value.KFloat:
		return value.Str(strconv.FormatFloat(a[0].F, 'g', -1, 64)), nil
	case value.KBool:
		return value.Str(fmt.Sprintf("%t", a[0].B)), nil
	}
	return value.Null, cerr.New(cerr.Mismatch, "eval: toString() cannot convert %s", a[0].TypeName())
}

func fnToInteger(a []value.Value) (value.Value, error) {
	if len(a) == 0 {
		return value.Null, cerr.New(cerr.Misuse, "eval: toInteger() requires one argument")
	}
	switch a[0].Kind {
	case value.KInt:
		return a[0], nil
	case value.KFloat:
		return value.Int(int64(a[0].F)), nil
	case value.KString:
		i, err := strconv.ParseInt(strings.TrimSpace(a[0].S), 10, 64)
		if err != nil {
			return value.Null, nil
		}
		return value.Int(i), nil
	}
	return value.Null, cerr.New(cerr.Mismatch, "eval: toInteger() cannot convert %s", a[0].TypeName())
}

func fnToFloat(a []value.Value) (value.Value, error) {
	if len(a) == 0 {
		return value.Null, cerr.New(cerr.Misuse, "eval: toFloat() requires one argument")
	}
	switch a[0].Kind {
	case value.KFloat:
		return a[0], nil
	case value.KInt:
		return value.Float(float64(a[0].I)), nil
	case value.KString:
		f, err := strconv.ParseFloat(strings.TrimSpace(a[0].S), 64)
		if err != nil {
			return value.Null, nil
		}
		return value.Float(f), nil
	}
	return value.Null, cerr.New(cerr.Mismatch, "eval: toFloat() cannot convert %s", a[0].TypeName())
}

// fnCount, fnSum, fnAvg, fnMin, fnMax are the aggregate functions: each
// takes a list, with the caller pre-collecting the group. The physical
// Aggregation iterator is responsible for building that list per group
// before calling into this evaluator.
func fnCount(a []value.Value) (value.Value, error) {
	if len(a) == 0 || a[0].Kind != value.KList {
		return value.Null, cerr.New(cerr.Mismatch, "eval: count() requires a list")
	}
	n := 0
	for _, v := range a[0].List {
		if !v.IsNull() {
			n++
		}
	}
	return value.Int(int64(n)), nil
}

func fnSum(a []value.Value) (value.Value, error) {
	if len(a) == 0 || a[0].Kind != value.KList {
		return value.Null, cerr.New(cerr.Mismatch, "eval: sum() requires a list")
	}
	var isum int64
	var fsum float64
	allInt := true
	for _, v := range a[0].List {
		if v.IsNull() {
			continue
		}
		if v.Kind == value.KInt {
			isum += v.I
			fsum += float64(v.I)
		} else if f, ok := asFloat(v); ok {
			allInt = false
			fsum += f
		} else {
			return value.Null, cerr.New(cerr.Mismatch, "eval: sum() requires numeric elements")
		}
	}
	if allInt {
		return value.Int(isum), nil
	}
	return value.Float(fsum), nil
}

func fnAvg(a []value.Value) (value.Value, error) {
	if len(a) == 0 || a[0].Kind != value.KList {
		return value.Null, cerr.New(cerr.Mismatch, "eval: avg() requires a list")
	}
	var total float64
	var n int
	for _, v := range a[0].List {
		if v.IsNull() {
			continue
		}
		f, ok := asFloat(v)
		if !ok {
			return value.Null, cerr.New(cerr.Mismatch, "eval: avg() requires numeric elements")
		}
		total += f
		n++
	}
	if n == 0 {
		return value.Null, nil
	}
	return value.Float(total / float64(n)), nil
}

func fnMin(a []value.Value) (value.Value, error) {
	return extreme(a, true)
}

func fnMax(a []value.Value) (value.Value, error) {
	return extreme(a, false)
}

func extreme(a []value.Value, wantMin bool) (value.Value, error) {
	if len(a) == 0 || a[0].Kind != value.KList {
		return value.Null, cerr.New(cerr.Mismatch, "eval: min()/max() requires a list")
	}
	var best value.Value
	have := false
	for _, v := range a[0].List {
		if v.IsNull() {
			continue
		}
		if !have {
			best = v
			have = true
			continue
		}
		c, err := value.Compare(v, best)
		if err != nil {
			return value.Null, err
		}
		if (wantMin && c < 0) || (!wantMin && c > 0) {
			best = v
		}
	}
	if !have {
		return value.Null, nil
	}
	return best, nil
}
