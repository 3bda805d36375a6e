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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/storage/memstore"
	"github.com/gogo-agent/cyphergraph/value"
)

func intLit(v string) *ast.Node {
	return &ast.Node{Kind: ast.Literal, Val: v, Flags: ast.FlagLitInt}
}

func strLit(v string) *ast.Node {
	return &ast.Node{Kind: ast.Literal, Val: v, Flags: ast.FlagLitString}
}

func newEvaluator() *Evaluator {
	return New(db.NewContext(memstore.New()))
}

func TestEvalArithmetic(t *testing.T) {

	Convey("Int/Int addition stays Int", t, func() {
		e := newEvaluator()
		n := ast.New(ast.Additive, "+", intLit("2"), intLit("3"))
		v, err := e.Eval(n)
		So(err, ShouldBeNil)
		So(v.Kind, ShouldEqual, value.KInt)
		So(v.I, ShouldEqual, 5)
	})

	Convey("division by zero is an error", t, func() {
		e := newEvaluator()
		n := ast.New(ast.Multiplicative, "/", intLit("1"), intLit("0"))
		_, err := e.Eval(n)
		So(err, ShouldNotBeNil)
	})

	Convey("arithmetic with a Null operand propagates Null", t, func() {
		e := newEvaluator()
		n := ast.New(ast.Additive, "+", intLit("1"), &ast.Node{Kind: ast.Literal, Flags: ast.FlagLitNull})
		v, err := e.Eval(n)
		So(err, ShouldBeNil)
		So(v.IsNull(), ShouldBeTrue)
	})

	Convey("string + string concatenates", t, func() {
		e := newEvaluator()
		n := ast.New(ast.Additive, "+", strLit("foo"), strLit("bar"))
		v, err := e.Eval(n)
		So(err, ShouldBeNil)
		So(v.S, ShouldEqual, "foobar")
	})

}

func TestEvalComparison(t *testing.T) {

	Convey("cross-type comparison is a type-mismatch error", t, func() {
		e := newEvaluator()
		n := ast.New(ast.Comparison, "=", intLit("1"), strLit("1"))
		_, err := e.Eval(n)
		So(err, ShouldNotBeNil)
	})

	Convey("IN requires a list and returns Bool", t, func() {
		e := newEvaluator()
		list := ast.New(ast.List, "", intLit("1"), intLit("2"))
		n := ast.New(ast.Comparison, "IN", intLit("2"), list)
		v, err := e.Eval(n)
		So(err, ShouldBeNil)
		So(v.B, ShouldBeTrue)
	})

}

func TestEvalFunctions(t *testing.T) {

	Convey("toUpper upper-cases a string", t, func() {
		e := newEvaluator()
		up := ast.New(ast.FunctionCall, "toUpper", strLit("abc"))
		v, err := e.Eval(up)
		So(err, ShouldBeNil)
		So(v.S, ShouldEqual, "ABC")
	})

	Convey("length() works on strings and size() on lists", t, func() {
		e := newEvaluator()
		v1, _ := e.Eval(ast.New(ast.FunctionCall, "length", strLit("hello")))
		So(v1.I, ShouldEqual, 5)

		list := ast.New(ast.List, "", intLit("1"), intLit("2"), intLit("3"))
		v2, _ := e.Eval(ast.New(ast.FunctionCall, "size", list))
		So(v2.I, ShouldEqual, 3)
	})

	Convey("sum()/avg() aggregate a list argument", t, func() {
		list := value.NewList([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
		s, err := fnSum([]value.Value{list})
		So(err, ShouldBeNil)
		So(s.I, ShouldEqual, 6)

		a, err := fnAvg([]value.Value{list})
		So(err, ShouldBeNil)
		So(a.F, ShouldEqual, 2)
	})

}

func TestEvalCase(t *testing.T) {

	Convey("simple CASE matches the first equal WHEN", t, func() {
		e := newEvaluator()
		c := ast.New(ast.Case, "",
			intLit("2"),
			ast.New(ast.CaseAlt, "", intLit("1"), strLit("one")),
			ast.New(ast.CaseAlt, "", intLit("2"), strLit("two")),
			ast.New(ast.CaseAlt, "else", strLit("other")),
		)
		v, err := e.Eval(c)
		So(err, ShouldBeNil)
		So(v.S, ShouldEqual, "two")
	})

	Convey("searched CASE falls through to ELSE", t, func() {
		e := newEvaluator()
		falseCmp := ast.New(ast.Comparison, "=", intLit("1"), intLit("2"))
		c := ast.New(ast.Case, "",
			ast.New(ast.CaseAlt, "", falseCmp, strLit("no")),
			ast.New(ast.CaseAlt, "else", strLit("fallback")),
		)
		v, err := e.Eval(c)
		So(err, ShouldBeNil)
		So(v.S, ShouldEqual, "fallback")
	})

}

func TestEvalProperty(t *testing.T) {

	Convey("property access reads from a bound Map variable", t, func() {
		e := newEvaluator()
		e.Ctx.Bind("n", value.NewMap([]value.Pair{{Key: "name", Val: value.Str("Ada")}}))
		prop := ast.New(ast.Property, "name", ast.New(ast.Identifier, "n"))
		v, err := e.Eval(prop)
		So(err, ShouldBeNil)
		So(v.S, ShouldEqual, "Ada")
	})

	Convey("property access on a NodeRef reads through the storage adapter", t, func() {
		store := memstore.New()
		id, err := store.AddNode(0, []string{"Person"}, `{"name":"Ada","age":30}`)
		So(err, ShouldBeNil)

		e := New(db.NewContext(store))
		e.Ctx.Bind("n", value.NodeRef(id))
		prop := ast.New(ast.Property, "age", ast.New(ast.Identifier, "n"))
		v, err := e.Eval(prop)
		So(err, ShouldBeNil)
		So(v.I, ShouldEqual, 30)
	})

}
