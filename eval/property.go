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

package eval

import (
	"encoding/json"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/value"
)

// evalProperty resolves a Property node (Val = property name, one child
// = the owning expression). The owner may be a bound NodeRef/RelRef (the
// adapter is consulted for its properties JSON), or a Map value already
// held in hand.
func (e *Evaluator) evalProperty(n *ast.Node) (value.Value, error) {
	owner, err := e.Eval(n.Children[0])
	if err != nil {
		return value.Null, err
	}
	if owner.IsNull() {
		return value.Null, nil
	}

	switch owner.Kind {

	case value.KMap:
		v, ok := owner.Get(n.Val)
		if !ok {
			return value.Null, nil
		}
		return v, nil

	case value.KNodeRef:
		node, ok, err := e.Ctx.Adapter.GetNode(owner.I)
		if err != nil {
			return value.Null, err
		}
		if !ok {
			return value.Null, nil
		}
		return propertyFromJSON(node.Properties, n.Val)

	case value.KRelRef:
		rel, ok, err := e.Ctx.Adapter.GetEdge(owner.I)
		if err != nil {
			return value.Null, err
		}
		if !ok {
			return value.Null, nil
		}
		return propertyFromJSON(rel.Properties, n.Val)
	}

	return value.Null, cerr.New(cerr.Mismatch, "eval: cannot access property %q of %s", n.Val, owner.TypeName())
}

func propertyFromJSON(propsJSON, property string) (value.Value, error) {
	if propsJSON == "" {
		return value.Null, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(propsJSON), &obj); err != nil {
		return value.Null, cerr.New(cerr.InvalidFormat, "eval: malformed properties JSON: %v", err)
	}
	raw, ok := obj[property]
	if !ok {
		return value.Null, nil
	}
	v, err := value.FromJSON(raw)
	if err != nil {
		return value.Null, cerr.New(cerr.InvalidFormat, "eval: malformed property value: %v", err)
	}
	return v, nil
}
