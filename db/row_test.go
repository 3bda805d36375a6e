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

package db

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/value"
)

func TestRowToJSON(t *testing.T) {

	Convey("to_json renders columns in the order they were added", t, func() {
		r := NewRow()
		r.AddColumn("b", value.Int(2))
		r.AddColumn("a", value.Str("x"))

		out := r.ToJSON()
		bi := strings.Index(out, `"b"`)
		ai := strings.Index(out, `"a"`)
		So(bi, ShouldBeGreaterThanOrEqualTo, 0)
		So(ai, ShouldBeGreaterThan, bi)
	})

	Convey("Nested List and Map values render recursively with indentation", t, func() {
		r := NewRow()
		r.AddColumn("m", value.NewMap([]value.Pair{
			{Key: "tags", Val: value.NewList([]value.Value{value.Str("x"), value.Str("y")})},
		}))
		out := r.ToJSON()
		So(out, ShouldContainSubstring, `"tags"`)
		So(out, ShouldContainSubstring, `"x"`)
		So(out, ShouldContainSubstring, `"y"`)
	})

	Convey("AddColumn deep-copies, later mutation of the source does not alias the row", t, func() {
		r := NewRow()
		xs := value.NewList([]value.Value{value.Int(1)})
		r.AddColumn("xs", xs)
		xs.List[0] = value.Int(42)
		_, v := r.Column(0)
		So(v.List[0].I, ShouldEqual, 1)
	})

	Convey("An empty row renders as an empty JSON object", t, func() {
		r := NewRow()
		So(r.ToJSON(), ShouldEqual, "{}")
	})

}
