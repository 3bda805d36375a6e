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
	"github.com/gogo-agent/cyphergraph/storage"
	"github.com/gogo-agent/cyphergraph/value"
)

// MergeNode implements two-step MERGE semantics: search for an existing
// node satisfying every (label, match-property) constraint; if found,
// apply the ON MATCH properties and report was_created = false;
// otherwise create a node carrying the match properties plus the ON
// CREATE properties and report was_created = true. MERGE on
// relationships is not implemented.
func (tx *Tx) MergeNode(labels []string, matchProps, onCreateProps, onMatchProps value.Value) (id int64, wasCreated bool, err error) {
	if err := validateLabels(labels); err != nil {
		return 0, false, tx.fail(err)
	}
	if err := validateProperties(matchProps); err != nil {
		return 0, false, tx.fail(err)
	}

	found, err := tx.findMatch(labels, matchProps)
	if err != nil {
		return 0, false, tx.fail(err)
	}

	if found > 0 {
		for _, p := range onMatchProps.Map {
			if err := tx.SetProperty(found, 0, p.Key, p.Val); err != nil {
				return 0, false, err
			}
		}
		return found, false, nil
	}

	merged := matchProps
	if merged.Kind != value.KMap {
		merged = value.NewMap(nil)
	} else {
		merged = merged.Clone()
	}
	for _, p := range onCreateProps.Map {
		merged = merged.Set(p.Key, p.Val)
	}

	newID, err := tx.CreateNode(labels, merged)
	if err != nil {
		return 0, false, err
	}
	return newID, true, nil
}

// findMatch scans nodes for one whose labels are a superset of labels
// and whose properties satisfy every matchProps constraint, indexed by
// the first label when one is given to avoid a full table scan.
func (tx *Tx) findMatch(labels []string, matchProps value.Value) (int64, error) {
	var cursor storage.NodeCursor
	var err error
	if len(labels) > 0 {
		cursor, err = tx.adapter.ScanNodesByLabel(labels[0])
	} else {
		cursor, err = tx.adapter.ScanNodes()
	}
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	for {
		n, ok, err := cursor.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}
		if !hasAllLabels(n.Labels, labels) {
			continue
		}
		if matchesAll(n.Properties, matchProps) {
			return n.ID, nil
		}
	}
}

func hasAllLabels(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchesAll(propsJSON string, matchProps value.Value) bool {
	for _, p := range matchProps.Map {
		if !storage.PropertyEquals(propsJSON, p.Key, p.Val.JSON()) {
			return false
		}
	}
	return true
}
