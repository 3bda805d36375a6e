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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/storage/memstore"
	"github.com/gogo-agent/cyphergraph/value"
)

func TestContextBindGet(t *testing.T) {

	Convey("Bind stores a deep copy, later mutation of the original does not alias it", t, func() {
		ctx := NewContext(memstore.New())
		defer ctx.Destroy()

		list := value.NewList([]value.Value{value.Int(1), value.Int(2)})
		ctx.Bind("xs", list)
		list.List[0] = value.Int(99)

		bound := ctx.Get("xs")
		So(bound.List[0].I, ShouldEqual, 1)
	})

	Convey("Get on an unbound name returns Null", t, func() {
		ctx := NewContext(memstore.New())
		defer ctx.Destroy()
		So(ctx.Get("missing").IsNull(), ShouldBeTrue)
	})

	Convey("Bind twice under the same name overwrites, last write wins", t, func() {
		ctx := NewContext(memstore.New())
		defer ctx.Destroy()
		ctx.Bind("n", value.Int(1))
		ctx.Bind("n", value.Int(2))
		So(ctx.Get("n").I, ShouldEqual, 2)
	})

	Convey("SetErr keeps the first error", t, func() {
		ctx := NewContext(memstore.New())
		defer ctx.Destroy()
		ctx.SetErr(errBoom("first"))
		ctx.SetErr(errBoom("second"))
		So(ctx.Err().Error(), ShouldEqual, "first")
	})

	Convey("Destroy releases bound values and is safe to call twice", t, func() {
		ctx := NewContext(memstore.New())
		ctx.Bind("n", value.Int(1))
		ctx.Destroy()
		So(ctx.Get("n").IsNull(), ShouldBeTrue)
		ctx.Destroy()
	})

}

type errBoom string

func (e errBoom) Error() string { return string(e) }
