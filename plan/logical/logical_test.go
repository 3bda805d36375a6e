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

package logical

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEstimateCost(t *testing.T) {

	Convey("Leaf scans carry the base cost/row table", t, func() {

		n := New(NodeScan)
		n.EstimateCost()
		So(n.Cost, ShouldEqual, 1000.0)
		So(n.Rows, ShouldEqual, int64(10000))

		l := New(LabelScan)
		l.EstimateCost()
		So(l.Cost, ShouldEqual, 10.0)
		So(l.Rows, ShouldEqual, int64(1000))

	})

	Convey("Cost is additive over children", t, func() {

		scan := New(NodeScan)
		filter := New(Filter)
		filter.Add(scan)
		filter.EstimateCost()

		So(filter.Cost, ShouldEqual, scan.Cost+1.0)
		So(filter.Rows, ShouldEqual, scan.Rows/10)

	})

	Convey("HashJoin combines both children's row estimates", t, func() {

		left := New(LabelScan)
		right := New(LabelScan)
		join := New(HashJoin)
		join.Add(left).Add(right)
		join.EstimateCost()

		So(join.Rows, ShouldEqual, (left.Rows*right.Rows)/100)

	})

}

func TestAliases(t *testing.T) {

	Convey("Aliases collects every bound alias beneath the root", t, func() {
		scan1 := &Node{Kind: LabelScan, Alias: "n"}
		scan2 := &Node{Kind: LabelScan, Alias: "m"}
		join := New(HashJoin)
		join.Add(scan1).Add(scan2)
		So(join.Aliases(), ShouldResemble, []string{"n", "m"})
	})

}

func TestDestroyIdempotent(t *testing.T) {

	Convey("Destroy is safe on nil and safe to call twice", t, func() {
		var n *Node
		So(func() { n.Destroy() }, ShouldNotPanic)

		scan := New(NodeScan)
		filter := New(Filter)
		filter.Add(scan)
		So(func() { filter.Destroy(); filter.Destroy() }, ShouldNotPanic)
	})

}
