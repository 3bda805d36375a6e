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

package storage

import (
	"encoding/json"
	"sort"

	"github.com/gogo-agent/cyphergraph/cerr"
)

// MergeProperty merges property=value (value already JSON-literal text,
// e.g. `"A"` or `30`) into propsJSON, creating the object if propsJSON is
// empty, and returns the new object text with keys in sorted order so
// repeated merges of the same object are byte-stable (useful for the
// write package's undo-log diffing). Shared by every storage.Adapter
// backend so each one doesn't reimplement JSON object surgery.
func MergeProperty(propsJSON, property, value string) (string, error) {
	m, err := decodeProps(propsJSON)
	if err != nil {
		return "", err
	}
	m[property] = json.RawMessage(value)
	return encodeProps(m)
}

// RemoveProperty deletes property from propsJSON's object, if present.
func RemoveProperty(propsJSON, property string) (string, error) {
	m, err := decodeProps(propsJSON)
	if err != nil {
		return "", err
	}
	delete(m, property)
	return encodeProps(m)
}

// PropertyEquals reports whether propsJSON's object has property set to
// exactly the JSON-literal text value (the json_extract(...) = <literal>
// check a PropertyIndexScan performs).
func PropertyEquals(propsJSON, property, value string) bool {
	if propsJSON == "" {
		return false
	}
	m, err := decodeProps(propsJSON)
	if err != nil {
		return false
	}
	raw, ok := m[property]
	if !ok {
		return false
	}
	return string(raw) == value
}

func decodeProps(propsJSON string) (map[string]json.RawMessage, error) {
	m := map[string]json.RawMessage{}
	if propsJSON == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(propsJSON), &m); err != nil {
		return nil, cerr.New(cerr.InvalidFormat, "storage: malformed property JSON: %v", err)
	}
	return m, nil
}

func encodeProps(m map[string]json.RawMessage) (string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b []byte
	b = append(b, '{')
	for i, k := range keys {
		if i > 0 {
			b = append(b, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return "", cerr.New(cerr.InvalidFormat, "storage: %v", err)
		}
		b = append(b, kb...)
		b = append(b, ':')
		b = append(b, m[k]...)
	}
	b = append(b, '}')
	return string(b), nil
}
