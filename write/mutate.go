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

import (
	"encoding/json"

	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/value"
)

// SetProperty validates the name and value, reads the prior value for
// the undo record, then writes through the adapter.
// Exactly one of nodeID/edgeID must be > 0, matching
// storage.Adapter.UpdateProperty's contract.
func (tx *Tx) SetProperty(nodeID, edgeID int64, property string, v value.Value) error {
	if err := validateIdentifier("property", property); err != nil {
		return tx.fail(err)
	}
	if v.Kind == value.KString && len(v.S) > maxStringPropSize {
		return tx.fail(cerr.New(cerr.TooBig, "write: property %q exceeds the 1 MiB string-value limit", property))
	}

	prior, hadPrior, err := tx.readProperty(nodeID, edgeID, property)
	if err != nil {
		return tx.fail(err)
	}

	newJSON := v.JSON()
	if err := tx.adapter.UpdateProperty(nodeID, edgeID, property, newJSON); err != nil {
		return tx.fail(err)
	}

	tx.logPropertyDiff(property, prior, newJSON)
	tx.append(record{kind: opSetProperty, nodeID: nodeID, edgeID: edgeID, property: property, prior: prior, hadPrior: hadPrior})
	return nil
}

// RemoveProperty reads the prior value for the undo record, then removes
// the property through the adapter.
func (tx *Tx) RemoveProperty(nodeID, edgeID int64, property string) error {
	prior, hadPrior, err := tx.readProperty(nodeID, edgeID, property)
	if err != nil {
		return tx.fail(err)
	}
	if !hadPrior {
		return nil
	}
	if err := tx.adapter.RemoveProperty(nodeID, edgeID, property); err != nil {
		return tx.fail(err)
	}
	tx.append(record{kind: opRemoveProperty, nodeID: nodeID, edgeID: edgeID, property: property, prior: prior, hadPrior: hadPrior})
	return nil
}

// SetLabel validates label, adds it to the node if absent, and records
// an undo step only when the label was actually added (adding an
// already-present label is a no-op with nothing to reverse).
func (tx *Tx) SetLabel(nodeID int64, label string) error {
	if err := validateIdentifier("label", label); err != nil {
		return tx.fail(err)
	}
	n, ok, err := tx.adapter.GetNode(nodeID)
	if err != nil {
		return tx.fail(err)
	}
	if !ok {
		return tx.fail(notFoundErr("write: SET: node %d does not exist", nodeID))
	}
	for _, l := range n.Labels {
		if l == label {
			return nil
		}
	}
	if len(n.Labels)+1 > maxLabelsPerNode {
		return tx.fail(cerr.New(cerr.Range, "write: node %d would exceed the %d-label limit", nodeID, maxLabelsPerNode))
	}
	if err := tx.adapter.SetLabel(nodeID, label); err != nil {
		return tx.fail(err)
	}
	tx.append(record{kind: opSetLabel, nodeID: nodeID, label: label})
	return nil
}

// RemoveLabel removes label from the node, recording an undo step only
// when it was actually present.
func (tx *Tx) RemoveLabel(nodeID int64, label string) error {
	n, ok, err := tx.adapter.GetNode(nodeID)
	if err != nil {
		return tx.fail(err)
	}
	if !ok {
		return tx.fail(notFoundErr("write: REMOVE: node %d does not exist", nodeID))
	}
	present := false
	for _, l := range n.Labels {
		if l == label {
			present = true
			break
		}
	}
	if !present {
		return nil
	}
	if err := tx.adapter.RemoveLabel(nodeID, label); err != nil {
		return tx.fail(err)
	}
	tx.append(record{kind: opRemoveLabel, nodeID: nodeID, label: label})
	return nil
}

func (tx *Tx) readProperty(nodeID, edgeID int64, property string) (prior string, hadPrior bool, err error) {
	var propsJSON string
	if nodeID > 0 {
		n, ok, err := tx.adapter.GetNode(nodeID)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, notFoundErr("write: node %d does not exist", nodeID)
		}
		propsJSON = n.Properties
	} else {
		e, ok, err := tx.adapter.GetEdge(edgeID)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, notFoundErr("write: relationship %d does not exist", edgeID)
		}
		propsJSON = e.Properties
	}
	if propsJSON == "" {
		return "", false, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(propsJSON), &obj); err != nil {
		return "", false, cerr.New(cerr.InvalidFormat, "write: malformed property JSON: %v", err)
	}
	raw, ok := obj[property]
	if !ok {
		return "", false, nil
	}
	return string(raw), true, nil
}
