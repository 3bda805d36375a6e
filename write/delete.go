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

// DeleteNode removes a plain (non-detach) node. If the node still has
// incident relationships this fails with a constraint error rather than
// silently detaching them.
func (tx *Tx) DeleteNode(nodeID int64) error {
	n, ok, err := tx.adapter.GetNode(nodeID)
	if err != nil {
		return tx.fail(err)
	}
	if !ok {
		return tx.fail(notFoundErr("write: DELETE: node %d does not exist", nodeID))
	}

	if err := tx.adapter.DeleteNode(nodeID, false); err != nil {
		return tx.fail(err)
	}

	labels, props := fromNode(n)
	tx.append(record{kind: opDeleteNode, nodeID: nodeID, priorLabels: labels, priorProps: props})
	return nil
}

// DeleteRel removes a single relationship, recording its endpoints,
// type, weight and properties so rollback can recreate it verbatim.
func (tx *Tx) DeleteRel(edgeID int64) error {
	e, ok, err := tx.adapter.GetEdge(edgeID)
	if err != nil {
		return tx.fail(err)
	}
	if !ok {
		return tx.fail(notFoundErr("write: DELETE: relationship %d does not exist", edgeID))
	}

	if err := tx.adapter.DeleteEdge(edgeID); err != nil {
		return tx.fail(err)
	}

	tx.append(record{
		kind:        opDeleteRel,
		edgeID:      edgeID,
		priorFrom:   e.From,
		priorTo:     e.To,
		priorType:   e.Type,
		priorWeight: e.Weight,
		priorProps:  e.Properties,
	})
	return nil
}

// DetachDeleteNode collects every relationship incident to nodeID,
// deletes each (recording its own undo step), then deletes the node
// itself.
func (tx *Tx) DetachDeleteNode(nodeID int64) error {
	n, ok, err := tx.adapter.GetNode(nodeID)
	if err != nil {
		return tx.fail(err)
	}
	if !ok {
		return tx.fail(notFoundErr("write: DETACH DELETE: node %d does not exist", nodeID))
	}

	rels, err := tx.adapter.NodeRelationships(nodeID)
	if err != nil {
		return tx.fail(err)
	}
	for _, rel := range rels {
		if err := tx.DeleteRel(rel.ID); err != nil {
			return err
		}
	}

	if err := tx.adapter.DeleteNode(nodeID, true); err != nil {
		return tx.fail(err)
	}

	labels, props := fromNode(n)
	tx.append(record{kind: opDeleteNode, nodeID: nodeID, priorLabels: labels, priorProps: props})
	return nil
}
