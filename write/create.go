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

import "github.com/gogo-agent/cyphergraph/value"

// CreateNode validates labels and properties, allocates an id, inserts
// the node and records an undo step.
func (tx *Tx) CreateNode(labels []string, props value.Value) (int64, error) {
	if err := validateLabels(labels); err != nil {
		return 0, tx.fail(err)
	}
	if err := validateProperties(props); err != nil {
		return 0, tx.fail(err)
	}

	id, err := allocateNodeID(tx.adapter)
	if err != nil {
		return 0, tx.fail(err)
	}

	if _, err := tx.adapter.AddNode(id, labels, props.JSON()); err != nil {
		return 0, tx.fail(err)
	}

	tx.append(record{kind: opCreateNode, nodeID: id})
	return id, nil
}

// CreateRel validates the relationship type and properties, confirms
// both endpoints already exist (checked via node_exists), allocates an
// id, inserts the edge and records an undo step.
func (tx *Tx) CreateRel(from, to int64, relType string, props value.Value) (int64, error) {
	if err := validateIdentifier("relationship type", relType); err != nil {
		return 0, tx.fail(err)
	}
	if err := validateProperties(props); err != nil {
		return 0, tx.fail(err)
	}

	if ok, err := tx.adapter.NodeExists(from); err != nil {
		return 0, tx.fail(err)
	} else if !ok {
		return 0, tx.fail(notFoundErr("write: CREATE relationship: node %d does not exist", from))
	}
	if ok, err := tx.adapter.NodeExists(to); err != nil {
		return 0, tx.fail(err)
	} else if !ok {
		return 0, tx.fail(notFoundErr("write: CREATE relationship: node %d does not exist", to))
	}

	id, err := allocateRelID(tx.adapter)
	if err != nil {
		return 0, tx.fail(err)
	}

	if _, err := tx.adapter.AddEdge(id, from, to, relType, 0, props.JSON()); err != nil {
		return 0, tx.fail(err)
	}

	tx.append(record{kind: opCreateRel, edgeID: id})
	return id, nil
}
