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
	"strings"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/eval"
	"github.com/gogo-agent/cyphergraph/value"
)

// findChild returns n's first direct child of the given kind, or nil.
func findChild(n *ast.Node, kind ast.Kind) *ast.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// collectLabels reads a Labels node's Identifier children into a plain
// string slice; a nil Labels node (no ":" in the pattern) yields nil.
func collectLabels(labels *ast.Node) []string {
	if labels == nil {
		return nil
	}
	out := make([]string, 0, len(labels.Children))
	for _, c := range labels.Children {
		out = append(out, c.Val)
	}
	return out
}

// firstLabel returns the first identifier of a Labels node, or "" if it
// carries none (used for a relationship's type, which this engine
// requires to be singular on CREATE even though the grammar allows a
// "|"-separated list for matching).
func firstLabel(labels *ast.Node) string {
	if labels == nil || len(labels.Children) == 0 {
		return ""
	}
	return labels.Children[0].Val
}

// evalProps evaluates a pattern's optional map literal; a missing map
// (no "{...}" in the pattern) yields an empty, non-null Map so callers
// can validate/merge it uniformly.
func evalProps(ev *eval.Evaluator, m *ast.Node) (value.Value, error) {
	if m == nil {
		return value.NewMap(nil), nil
	}
	return ev.Eval(m)
}

// splitAliasProp splits a SetItem's "alias.prop" Val on its first dot.
// Identifiers never contain dots, so the first dot is unambiguous.
func splitAliasProp(val string) (alias, prop string) {
	i := strings.IndexByte(val, '.')
	if i < 0 {
		return val, ""
	}
	return val[:i], val[i+1:]
}

// ownerIDs resolves a bound alias to the (nodeID, edgeID) pair expected
// by storage.Adapter's property methods, where exactly one is > 0.
func ownerIDs(v value.Value) (nodeID, edgeID int64, ok bool) {
	switch v.Kind {
	case value.KNodeRef:
		return v.I, 0, true
	case value.KRelRef:
		return 0, v.I, true
	}
	return 0, 0, false
}
