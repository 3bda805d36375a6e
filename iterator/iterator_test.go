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

package iterator

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/plan/physical"
	"github.com/gogo-agent/cyphergraph/storage/memstore"
	"github.com/gogo-agent/cyphergraph/value"
)

func seedPeople(t *testing.T) *memstore.Store {
	store := memstore.New()
	_, err := store.AddNode(0, []string{"Person"}, `{"name":"Ada","age":30}`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = store.AddNode(0, []string{"Person"}, `{"name":"Bob","age":40}`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = store.AddNode(0, []string{"Place"}, `{"name":"NYC"}`)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func drain(t *testing.T, it Iterator, ctx *db.Context) int {
	if err := it.Open(ctx); err != nil {
		t.Fatal(err)
	}
	n := 0
	for {
		ok, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		n++
	}
	it.Close()
	it.Destroy()
	return n
}

func TestAllNodesScan(t *testing.T) {

	Convey("AllNodesScan emits one row per node", t, func() {
		store := seedPeople(t)
		ctx := db.NewContext(store)
		p := physical.New(physical.AllNodesScan)
		p.Alias = "n"
		it, err := Build(p)
		So(err, ShouldBeNil)
		So(drain(t, it, ctx), ShouldEqual, 3)
	})

}

func TestLabelIndexScan(t *testing.T) {

	Convey("LabelIndexScan restricts by label", t, func() {
		store := seedPeople(t)
		ctx := db.NewContext(store)
		p := physical.New(physical.LabelIndexScan)
		p.Alias = "n"
		p.Label = "Person"
		it, err := Build(p)
		So(err, ShouldBeNil)
		So(drain(t, it, ctx), ShouldEqual, 2)
	})

}

func TestFilter(t *testing.T) {

	Convey("Filter only emits rows where the predicate is truthy", t, func() {
		store := seedPeople(t)
		ctx := db.NewContext(store)

		scan := physical.New(physical.LabelIndexScan)
		scan.Alias = "n"
		scan.Label = "Person"

		filter := physical.New(physical.Filter)
		filter.FilterExpr = ast.New(ast.Comparison, "=",
			ast.New(ast.Property, "name", ast.New(ast.Identifier, "n")),
			&ast.Node{Kind: ast.Literal, Val: "Ada", Flags: ast.FlagLitString},
		)
		filter.Add(scan)

		it, err := Build(filter)
		So(err, ShouldBeNil)
		So(drain(t, it, ctx), ShouldEqual, 1)
	})

}

func TestLimit(t *testing.T) {

	Convey("Limit caps the number of emitted rows", t, func() {
		store := seedPeople(t)
		ctx := db.NewContext(store)

		scan := physical.New(physical.AllNodesScan)
		scan.Alias = "n"

		limit := physical.New(physical.Limit)
		limit.LimitN = 2
		limit.Add(scan)

		it, err := Build(limit)
		So(err, ShouldBeNil)
		So(drain(t, it, ctx), ShouldEqual, 2)
	})

	Convey("Skip (Limit with the -1 sentinel) consumes rows before counting", t, func() {
		store := seedPeople(t)
		ctx := db.NewContext(store)

		scan := physical.New(physical.AllNodesScan)
		scan.Alias = "n"

		skip := physical.New(physical.Limit)
		skip.LimitN = -1
		skip.Value = "1"
		skip.Add(scan)

		it, err := Build(skip)
		So(err, ShouldBeNil)
		So(drain(t, it, ctx), ShouldEqual, 2)
	})

}

func TestProjection(t *testing.T) {

	Convey("Projection evaluates each configured expression per row", t, func() {
		store := seedPeople(t)
		ctx := db.NewContext(store)

		scan := physical.New(physical.LabelIndexScan)
		scan.Alias = "n"
		scan.Label = "Person"

		proj := physical.New(physical.Projection)
		proj.ProjectName = []string{"name"}
		proj.ProjectExpr = []interface{}{ast.New(ast.Property, "name", ast.New(ast.Identifier, "n"))}
		proj.Add(scan)

		it, err := Build(proj)
		So(err, ShouldBeNil)
		So(it.Open(ctx), ShouldBeNil)

		var names []string
		for {
			ok, err := it.Next()
			So(err, ShouldBeNil)
			if !ok {
				break
			}
			row := it.(*projectIter).Row()
			_, v := row.Column(0)
			names = append(names, v.S)
		}
		So(names, ShouldResemble, []string{"Ada", "Bob"})
	})

}

func TestExpand(t *testing.T) {

	Convey("Expand walks relationships from the bound from-node", t, func() {
		store := memstore.New()
		a, _ := store.AddNode(0, []string{"Person"}, `{"name":"Ada"}`)
		b, _ := store.AddNode(0, []string{"Person"}, `{"name":"Bob"}`)
		_, err := store.AddEdge(0, a, b, "KNOWS", 0, "{}")
		So(err, ShouldBeNil)

		ctx := db.NewContext(store)

		scan := physical.New(physical.LabelIndexScan)
		scan.Alias = "a"
		scan.Label = "Person"

		expand := physical.New(physical.IndexNestedLoop)
		expand.Alias = "b"
		expand.Property = "r"
		expand.Value = "OUT"
		expand.Label = "KNOWS"
		expand.Add(scan)

		it, err := Build(expand)
		So(err, ShouldBeNil)
		So(it.Open(ctx), ShouldBeNil)

		found := 0
		for {
			ok, err := it.Next()
			So(err, ShouldBeNil)
			if !ok {
				break
			}
			found++
			to := ctx.Get("b")
			So(to.Kind, ShouldEqual, value.KNodeRef)
		}
		So(found, ShouldEqual, 1)
	})

}
