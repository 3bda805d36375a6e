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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/parser"
	"github.com/gogo-agent/cyphergraph/planner"
	"github.com/gogo-agent/cyphergraph/storage/memstore"
	"github.com/gogo-agent/cyphergraph/value"
)

// runWrite parses and compiles q, builds its write iterator against tx,
// opens it on ctx and drains it to completion.
func runWrite(ctx *db.Context, tx *Tx, q string) error {
	node, err := parser.Parse(q)
	if err != nil {
		return err
	}
	pl := planner.New(planner.Default())
	plans, _, err := pl.Compile(node)
	if err != nil {
		return err
	}

	it, err := Build(tx, plans[0])
	if err != nil {
		return err
	}
	if err := it.Open(ctx); err != nil {
		return err
	}
	for {
		ok, nerr := it.Next()
		if nerr != nil {
			return nerr
		}
		if !ok {
			break
		}
	}
	defer it.Destroy()
	return it.Close()
}

func TestCreateAndRollback(t *testing.T) {

	Convey("CREATE then rollback leaves the store untouched", t, func() {
		ctx := db.NewContext(memstore.New())

		tx := Begin(ctx)
		So(runWrite(ctx, tx, "CREATE (n:Person {name:'C'})"), ShouldBeNil)

		bound := ctx.Get("n")
		So(bound.Kind, ShouldEqual, value.KNodeRef)

		exists, err := ctx.Adapter.NodeExists(bound.I)
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)

		So(tx.Rollback(), ShouldBeNil)

		exists, err = ctx.Adapter.NodeExists(bound.I)
		So(err, ShouldBeNil)
		So(exists, ShouldBeFalse)
	})

}

func TestMergeMatch(t *testing.T) {

	Convey("MERGE on an existing node applies ON MATCH and reports was_created = false", t, func() {
		ctx := db.NewContext(memstore.New())
		id, err := ctx.Adapter.AddNode(0, []string{"U"}, `{"email":"x"}`)
		So(err, ShouldBeNil)

		tx := Begin(ctx)
		So(runWrite(ctx, tx, "MERGE (n:U {email:'x'}) ON MATCH SET n.seen=1"), ShouldBeNil)

		So(ctx.Get("was_created").B, ShouldBeFalse)
		So(ctx.Get("n").I, ShouldEqual, id)

		node, ok, err := ctx.Adapter.GetNode(id)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(node.Properties, ShouldContainSubstring, `"seen":1`)
	})

}

func TestMergeCreate(t *testing.T) {

	Convey("MERGE with no match creates a node carrying match + ON CREATE properties", t, func() {
		ctx := db.NewContext(memstore.New())

		tx := Begin(ctx)
		So(runWrite(ctx, tx, "MERGE (n:U {email:'y'}) ON CREATE SET n.t=2"), ShouldBeNil)

		So(ctx.Get("was_created").B, ShouldBeTrue)
		id := ctx.Get("n").I

		node, ok, err := ctx.Adapter.GetNode(id)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(node.Labels, ShouldResemble, []string{"U"})
		So(node.Properties, ShouldContainSubstring, `"email":"y"`)
		So(node.Properties, ShouldContainSubstring, `"t":2`)
	})

}

func TestDetachDelete(t *testing.T) {

	Convey("DETACH DELETE removes incident relationships then the node, and rollback restores both", t, func() {
		ctx := db.NewContext(memstore.New())
		a, err := ctx.Adapter.AddNode(1, []string{"Person"}, `{}`)
		So(err, ShouldBeNil)
		b, err := ctx.Adapter.AddNode(2, []string{"Person"}, `{}`)
		So(err, ShouldBeNil)
		_, err = ctx.Adapter.AddEdge(10, a, b, "R", 0, `{}`)
		So(err, ShouldBeNil)

		ctx.Bind("n1", value.NodeRef(a))

		tx := Begin(ctx)
		So(runWrite(ctx, tx, "DETACH DELETE n1"), ShouldBeNil)

		exists, err := ctx.Adapter.NodeExists(a)
		So(err, ShouldBeNil)
		So(exists, ShouldBeFalse)

		exists, err = ctx.Adapter.NodeExists(b)
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)

		_, ok, err := ctx.Adapter.GetEdge(10)
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)

		So(tx.Rollback(), ShouldBeNil)

		exists, err = ctx.Adapter.NodeExists(a)
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)

		_, ok, err = ctx.Adapter.GetEdge(10)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
	})

}
