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

package sqlstore

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEncodeDecodeLabelsRoundTrip(t *testing.T) {

	Convey("encodeLabels/decodeLabels round-trip an ordered label list", t, func() {
		in := []string{"Person", "Employee"}
		out := decodeLabels(encodeLabels(in))
		So(out, ShouldResemble, in)
	})

	Convey("An empty label list encodes as an empty JSON array", t, func() {
		So(encodeLabels(nil), ShouldEqual, "[]")
		So(decodeLabels("[]"), ShouldBeEmpty)
	})

}

func TestLabelToken(t *testing.T) {

	Convey("labelToken quotes the label as it appears in the JSON array text", t, func() {
		So(labelToken("Person"), ShouldEqual, `"Person"`)
	})

}
