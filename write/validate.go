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
	"regexp"

	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/token"
	"github.com/gogo-agent/cyphergraph/value"
)

// Limits enforced before any mutation reaches the adapter.
const (
	maxNameLen        = 255
	maxStringPropSize = 1 << 20 // 1 MiB
	maxLabelsPerNode  = 100
	maxPropsPerEntity = 1000
)

var identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateIdentifier checks a variable, property, label or relationship
// type name against the grammar's identifier shape and the reserved
// word list shared with the lexer.
func validateIdentifier(kind, name string) error {
	if !identifierRE.MatchString(name) {
		return cerr.New(cerr.InvalidFormat, "write: %s %q is not a valid identifier", kind, name)
	}
	if len(name) > maxNameLen {
		return cerr.New(cerr.Range, "write: %s %q exceeds %d characters", kind, name, maxNameLen)
	}
	if _, reserved := token.Keywords[upper(name)]; reserved {
		return cerr.New(cerr.InvalidFormat, "write: %s %q collides with a reserved word", kind, name)
	}
	return nil
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// validateLabels checks a proposed label set: each name validates on its
// own, and the count stays within the per-node cap.
func validateLabels(labels []string) error {
	if len(labels) > maxLabelsPerNode {
		return cerr.New(cerr.Range, "write: %d labels exceeds the per-node limit of %d", len(labels), maxLabelsPerNode)
	}
	for _, l := range labels {
		if err := validateIdentifier("label", l); err != nil {
			return err
		}
	}
	return nil
}

// validateProperties checks a proposed property map: key identifiers,
// the per-entity count cap, and the 1 MiB string-value cap.
func validateProperties(props value.Value) error {
	if props.Kind != value.KMap {
		return nil
	}
	if len(props.Map) > maxPropsPerEntity {
		return cerr.New(cerr.Range, "write: %d properties exceeds the per-entity limit of %d", len(props.Map), maxPropsPerEntity)
	}
	for _, p := range props.Map {
		if err := validateIdentifier("property", p.Key); err != nil {
			return err
		}
		if p.Val.Kind == value.KString && len(p.Val.S) > maxStringPropSize {
			return cerr.New(cerr.TooBig, "write: property %q exceeds the 1 MiB string-value limit", p.Key)
		}
	}
	return nil
}
