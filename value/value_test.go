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

package value

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClone(t *testing.T) {

	Convey("Clone produces a deep, disjoint copy", t, func() {

		Convey("For a list of strings", func() {
			orig := NewList([]Value{Str("a"), Str("b")})
			dup := orig.Clone()
			So(dup.Equal(orig), ShouldBeTrue)
			dup.List[0] = Str("z")
			So(orig.List[0].S, ShouldEqual, "a")
		})

		Convey("For a map with nested values", func() {
			orig := NewMap([]Pair{
				{Key: "name", Val: Str("A")},
				{Key: "tags", Val: NewList([]Value{Int(1), Int(2)})},
			})
			dup := orig.Clone()
			So(dup.Equal(orig), ShouldBeTrue)
			dup.Map[1].Val.List[0] = Int(99)
			v, _ := orig.Get("tags")
			So(v.List[0].I, ShouldEqual, 1)
		})

	})

}

func TestCompare(t *testing.T) {

	Convey("Compare orders same-type scalars naturally", t, func() {

		Convey("Integers", func() {
			c, err := Compare(Int(1), Int(2))
			So(err, ShouldBeNil)
			So(c, ShouldBeLessThan, 0)
		})

		Convey("Strings", func() {
			c, err := Compare(Str("a"), Str("b"))
			So(err, ShouldBeNil)
			So(c, ShouldBeLessThan, 0)
		})

		Convey("Null equals Null", func() {
			c, err := Compare(Null, Null)
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 0)
		})

		Convey("Cross-type comparison yields a Mismatch error", func() {
			_, err := Compare(Int(1), Str("1"))
			So(err, ShouldNotBeNil)
		})

	})

}

func TestTruthy(t *testing.T) {

	Convey("Truthy propagates Null and Bool(false) as falsey", t, func() {
		So(Null.Truthy(), ShouldBeFalse)
		So(Bool(false).Truthy(), ShouldBeFalse)
		So(Bool(true).Truthy(), ShouldBeTrue)
		So(Int(0).Truthy(), ShouldBeTrue)
	})

}

func TestMapOps(t *testing.T) {

	Convey("Set/Get/Remove on Map values", t, func() {

		m := NewMap(nil)
		m = m.Set("a", Int(1))
		m = m.Set("b", Int(2))

		v, ok := m.Get("a")
		So(ok, ShouldBeTrue)
		So(v.I, ShouldEqual, 1)

		m = m.Set("a", Int(9))
		v, _ = m.Get("a")
		So(v.I, ShouldEqual, 9)
		So(len(m.Map), ShouldEqual, 2)

		m = m.Remove("a")
		_, ok = m.Get("a")
		So(ok, ShouldBeFalse)

	})

}

func TestJSON(t *testing.T) {

	Convey("JSON renders nested containers with ordering preserved", t, func() {
		v := NewMap([]Pair{
			{Key: "name", Val: Str("A")},
			{Key: "age", Val: Int(3)},
		})
		So(v.JSON(), ShouldEqual, `{"name":"A","age":3}`)
	})

}
