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

import "github.com/gogo-agent/cyphergraph/storage"

// opKind tags an undo-log entry's operation record. Each carries exactly
// the prior state needed to reverse itself; nothing else.
type opKind int

const (
	opCreateNode opKind = iota
	opCreateRel
	opSetProperty
	opSetLabel
	opRemoveProperty
	opRemoveLabel
	opDeleteNode
	opDeleteRel
)

// record is one undo-log entry. Only the fields relevant to Kind are
// populated; the rest are zero.
type record struct {
	kind opKind

	nodeID int64
	edgeID int64

	// SetProperty/RemoveProperty: the property name and its value before
	// the write (Null if the property was absent).
	property string
	prior    string // JSON-literal text, or "" if prior was Null/absent
	hadPrior bool

	// SetLabel/RemoveLabel: the label added or removed.
	label string

	// DeleteNode: the node's labels and properties as they stood before
	// deletion, so rollback can recreate it verbatim.
	priorLabels []string
	priorProps  string

	// DeleteRel: the edge's endpoints, type, weight and properties as
	// they stood before deletion.
	priorFrom   int64
	priorTo     int64
	priorType   string
	priorWeight float64
}

func fromNode(n storage.Node) (labels []string, props string) {
	return append([]string(nil), n.Labels...), n.Properties
}
