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

package parser

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
)

func TestParseMatchReturn(t *testing.T) {

	Convey("MATCH (n:Person) WHERE n.name = 'A' RETURN n", t, func() {

		node, err := Parse("MATCH (n:Person) WHERE n.name = 'A' RETURN n")
		So(err, ShouldBeNil)
		So(node.Kind, ShouldEqual, ast.Query)

		sq := node.Children[0]
		So(sq.Kind, ShouldEqual, ast.SingleQuery)

		match := sq.Children[0]
		So(match.Kind, ShouldEqual, ast.Match)

		where := match.Children[1]
		So(where.Kind, ShouldEqual, ast.Where)
		So(where.Children[0].Kind, ShouldEqual, ast.Comparison)

		ret := sq.Children[1]
		So(ret.Kind, ShouldEqual, ast.Return)

	})

}

func TestParseCreate(t *testing.T) {

	Convey("CREATE (n:Person {name: 'C'})", t, func() {
		node, err := Parse("CREATE (n:Person {name: 'C'})")
		So(err, ShouldBeNil)
		sq := node.Children[0]
		create := sq.Children[0]
		So(create.Kind, ShouldEqual, ast.Create)
	})

}

func TestParseMerge(t *testing.T) {

	Convey("MERGE (n:U {email:'x'}) ON MATCH SET n.seen=1", t, func() {
		node, err := Parse("MERGE (n:U {email:'x'}) ON MATCH SET n.seen=1")
		So(err, ShouldBeNil)
		merge := node.Children[0].Children[0]
		So(merge.Kind, ShouldEqual, ast.MergeClause)
		So(merge.Children[1].Kind, ShouldEqual, ast.OnMatch)
	})

}

func TestParseDetachDelete(t *testing.T) {

	Convey("DETACH DELETE n1", t, func() {
		node, err := Parse("MATCH (n1) DETACH DELETE n1")
		So(err, ShouldBeNil)
		sq := node.Children[0]
		del := sq.Children[1]
		So(del.Kind, ShouldEqual, ast.DetachDelete)
	})

}

func TestParseVarLength(t *testing.T) {

	Convey("Variable-length relationship patterns", t, func() {
		node, err := Parse("MATCH (a)-[*1..3]->(b) RETURN a")
		So(err, ShouldBeNil)
		path := node.Children[0].Children[0].Children[0].Children[0]
		rel := path.Children[1]
		So(rel.Kind, ShouldEqual, ast.RelPattern)
		So(rel.Has(ast.FlagDirOut), ShouldBeTrue)
	})

}

func TestParseUnion(t *testing.T) {

	Convey("UNION of two single queries", t, func() {
		node, err := Parse("MATCH (a) RETURN a UNION MATCH (b) RETURN b")
		So(err, ShouldBeNil)
		So(len(node.Children), ShouldEqual, 2)
		So(node.Children[1].Kind, ShouldEqual, ast.Union)
	})

}

func TestParseErrorReportsPosition(t *testing.T) {

	Convey("A syntax error carries line/column and never returns a partial AST", t, func() {
		node, err := Parse("MATCH (n RETURN n")
		So(node, ShouldBeNil)
		So(err, ShouldNotBeNil)
		ce, ok := err.(*cerr.Error)
		So(ok, ShouldBeTrue)
		So(ce.Kind, ShouldEqual, cerr.Parse)
		So(ce.Line, ShouldBeGreaterThan, 0)
	})

}

func TestRoundTrip(t *testing.T) {

	Convey("Parsing the same query text twice yields identical trees", t, func() {
		queries := []string{
			"MATCH (n:Person) WHERE n.name = 'A' RETURN n",
			"CREATE (n:Person {name: 'C'})",
			"MATCH (a)-[r:KNOWS]->(b) RETURN a, b",
		}
		for _, q := range queries {
			first, err := Parse(q)
			So(err, ShouldBeNil)
			// Parsing is deterministic: a second parse of the same
			// text yields an AST whose String() form matches byte for
			// byte and which compares Equal to the first.
			second, err := Parse(q)
			So(err, ShouldBeNil)
			So(first.String(), ShouldEqual, second.String())
			So(first.Equal(second), ShouldBeTrue)
		}
	})

}
