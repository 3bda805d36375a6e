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

package memstore

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAddAndScanNodes(t *testing.T) {

	Convey("Nodes come back from ScanNodesByLabel in insertion order", t, func() {
		s := New()
		id1, err := s.AddNode(0, []string{"Person"}, `{"name":"A"}`)
		So(err, ShouldBeNil)
		id2, err := s.AddNode(0, []string{"Person"}, `{"name":"B"}`)
		So(err, ShouldBeNil)

		cur, err := s.ScanNodesByLabel("Person")
		So(err, ShouldBeNil)

		n1, ok, err := cur.Next()
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(n1.ID, ShouldEqual, id1)

		n2, ok, err := cur.Next()
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(n2.ID, ShouldEqual, id2)

		_, ok, err = cur.Next()
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)
	})

}

func TestScanNodesByProperty(t *testing.T) {

	Convey("ScanNodesByProperty matches exact JSON-literal equality", t, func() {
		s := New()
		s.AddNode(0, []string{"Person"}, `{"name":"A"}`)
		s.AddNode(0, []string{"Person"}, `{"name":"B"}`)

		cur, err := s.ScanNodesByProperty("Person", "name", `"A"`)
		So(err, ShouldBeNil)
		n, ok, _ := cur.Next()
		So(ok, ShouldBeTrue)
		So(n.Properties, ShouldContainSubstring, `"A"`)
		_, ok, _ = cur.Next()
		So(ok, ShouldBeFalse)
	})

}

func TestAddEdgeRequiresExistingEndpoints(t *testing.T) {

	Convey("AddEdge refuses a missing endpoint", t, func() {
		s := New()
		n1, _ := s.AddNode(0, nil, "")
		_, err := s.AddEdge(0, n1, 999, "KNOWS", 0, "")
		So(err, ShouldNotBeNil)
	})

	Convey("AddEdge succeeds between two existing nodes", t, func() {
		s := New()
		n1, _ := s.AddNode(0, nil, "")
		n2, _ := s.AddNode(0, nil, "")
		id, err := s.AddEdge(0, n1, n2, "KNOWS", 1.0, "")
		So(err, ShouldBeNil)
		e, ok, err := s.GetEdge(id)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(e.Type, ShouldEqual, "KNOWS")
	})

}

func TestDeleteNodeRefusesWithoutDetach(t *testing.T) {

	Convey("DeleteNode refuses a connected node unless detach is set", t, func() {
		s := New()
		n1, _ := s.AddNode(0, nil, "")
		n2, _ := s.AddNode(0, nil, "")
		s.AddEdge(0, n1, n2, "KNOWS", 0, "")

		err := s.DeleteNode(n1, false)
		So(err, ShouldNotBeNil)

		err = s.DeleteNode(n1, true)
		So(err, ShouldBeNil)
		exists, _ := s.NodeExists(n1)
		So(exists, ShouldBeFalse)

		rels, _ := s.NodeRelationships(n2)
		So(len(rels), ShouldEqual, 0)
	})

}

func TestUpdateAndRemoveProperty(t *testing.T) {

	Convey("UpdateProperty merges, RemoveProperty deletes", t, func() {
		s := New()
		id, _ := s.AddNode(0, nil, "")
		So(s.UpdateProperty(id, 0, "name", `"A"`), ShouldBeNil)
		n, _, _ := s.GetNode(id)
		So(n.Properties, ShouldContainSubstring, `"name":"A"`)

		So(s.RemoveProperty(id, 0, "name"), ShouldBeNil)
		n, _, _ = s.GetNode(id)
		So(n.Properties, ShouldEqual, "{}")
	})

}

func TestSetAndRemoveLabel(t *testing.T) {

	Convey("SetLabel is idempotent, RemoveLabel drops only the named label", t, func() {
		s := New()
		id, _ := s.AddNode(0, []string{"Person"}, "")
		So(s.SetLabel(id, "Person"), ShouldBeNil)
		n, _, _ := s.GetNode(id)
		So(len(n.Labels), ShouldEqual, 1)

		So(s.SetLabel(id, "Employee"), ShouldBeNil)
		n, _, _ = s.GetNode(id)
		So(n.Labels, ShouldResemble, []string{"Person", "Employee"})

		So(s.RemoveLabel(id, "Person"), ShouldBeNil)
		n, _, _ = s.GetNode(id)
		So(n.Labels, ShouldResemble, []string{"Employee"})
	})

}

func TestNextIDMonotonic(t *testing.T) {

	Convey("NextNodeID/NextEdgeID never repeat within the process lifetime", t, func() {
		s := New()
		a, _ := s.NextNodeID()
		b, _ := s.NextNodeID()
		So(b, ShouldBeGreaterThan, a)
	})

}
