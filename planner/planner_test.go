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

package planner

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/parser"
	"github.com/gogo-agent/cyphergraph/plan/physical"
)

func compileText(t *testing.T, q string) *physical.Node {
	t.Helper()
	node, err := parser.Parse(q)
	So(err, ShouldBeNil)
	pl := New(Default())
	plans, _, err := pl.Compile(node)
	So(err, ShouldBeNil)
	So(len(plans), ShouldEqual, 1)
	return plans[0]
}

func TestCompileLabelScanAndFilter(t *testing.T) {

	Convey("MATCH (n:Person) WHERE n.name = 'A' RETURN n", t, func() {
		p := compileText(t, "MATCH (n:Person) WHERE n.name = 'A' RETURN n")
		So(p.Kind, ShouldEqual, physical.Projection)
		So(len(p.Children), ShouldEqual, 1)
		So(p.Children[0].Kind, ShouldEqual, physical.PropertyIndexScan)
		So(p.Children[0].Label, ShouldEqual, "Person")
		So(p.Children[0].Property, ShouldEqual, "name")
	})

}

func TestCompileWithoutIndexFallsBackToFilter(t *testing.T) {

	Convey("With indexing disabled the property predicate stays a Filter over a LabelScan", t, func() {
		node, err := parser.Parse("MATCH (n:Person) WHERE n.name = 'A' RETURN n")
		So(err, ShouldBeNil)
		opts := Default()
		opts.Index.Enabled = false
		pl := New(opts)
		plans, _, err := pl.Compile(node)
		So(err, ShouldBeNil)
		p := plans[0].Children[0]
		So(p.Kind, ShouldEqual, physical.Filter)
		So(p.Children[0].Kind, ShouldEqual, physical.LabelIndexScan)
	})

}

func TestCompileJoinReordering(t *testing.T) {

	Convey("A comma-separated pattern with operands of equal estimated cost keeps its original order", t, func() {
		p := compileText(t, "MATCH (a:Person), (b:Person) RETURN a, b")
		join := p.Children[0]
		So(join.Kind, ShouldEqual, physical.HashJoin)
		So(len(join.Children), ShouldEqual, 2)
		So(join.Children[0].Label, ShouldEqual, "Person")
		So(join.Children[1].Label, ShouldEqual, "Person")
	})

	Convey("A comma-separated pattern with an unlabeled operand swaps the smaller side to the build side", t, func() {
		// An unlabeled scan estimates far more rows than a labeled one, so
		// building the hash table from the unlabeled side is the expensive
		// order; optimize_joins should reorder it rather than the parser's
		// original (a, b) order.
		p := compileText(t, "MATCH (a:Person), (b) RETURN a, b")
		join := p.Children[0]
		So(join.Kind, ShouldEqual, physical.HashJoin)
		So(len(join.Children), ShouldEqual, 2)
		So(join.Children[0].Label, ShouldEqual, "")
		So(join.Children[1].Label, ShouldEqual, "Person")
	})

}

func TestCompileCreate(t *testing.T) {

	Convey("CREATE (n:Person {name: 'C'})", t, func() {
		p := compileText(t, "CREATE (n:Person {name: 'C'})")
		So(p.Kind, ShouldEqual, physical.Create)
	})

}

func TestCompileDetachDelete(t *testing.T) {

	Convey("MATCH (n) DETACH DELETE n", t, func() {
		p := compileText(t, "MATCH (n) DETACH DELETE n")
		So(p.Kind, ShouldEqual, physical.DetachDelete)
		So(p.Children[0].Kind, ShouldEqual, physical.AllNodesScan)
	})

}

func TestCompileReturnLimitSkip(t *testing.T) {

	Convey("RETURN ... ORDER BY ... SKIP ... LIMIT lowers to nested Limit/Sort physical nodes", t, func() {
		p := compileText(t, "MATCH (n:Person) RETURN n ORDER BY n.name SKIP 1 LIMIT 5")
		So(p.Kind, ShouldEqual, physical.Limit)
		So(p.LimitN, ShouldEqual, 5)
		skip := p.Children[0]
		So(skip.Kind, ShouldEqual, physical.Limit)
		So(skip.Value, ShouldEqual, "1")
		sort := skip.Children[0]
		So(sort.Kind, ShouldEqual, physical.Sort)
	})

}

func TestCompileIdempotent(t *testing.T) {

	Convey("Compiling the same query twice yields the same physical plan shape", t, func() {
		q := "MATCH (n:Person) WHERE n.age = 30 RETURN n.name"
		a := compileText(t, q)
		b := compileText(t, q)
		So(a.String(), ShouldEqual, b.String())
	})

}

func TestCompileEmptyQueryIsPlannerError(t *testing.T) {

	Convey("A query with no readable body is rejected as a planner error, not silently accepted", t, func() {
		pl := New(Default())
		empty := ast.New(ast.Query, "", ast.New(ast.SingleQuery, ""))
		_, _, err := pl.Compile(empty)
		So(err, ShouldNotBeNil)
	})

}
