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
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/value"
)

// evalList reduces a List literal node, whose children are the item
// expressions directly.
func (e *Evaluator) evalList(n *ast.Node) (value.Value, error) {
	items := make([]value.Value, 0, len(n.Children))
	for _, c := range n.Children {
		v, err := e.Eval(c)
		if err != nil {
			return value.Null, err
		}
		items = append(items, v)
	}
	out := value.NewList(items)
	e.Ctx.Track(out)
	return out, nil
}

// evalMap reduces a Map literal node, whose children are PropertyPair
// nodes (Val = key, one child = value expression).
func (e *Evaluator) evalMap(n *ast.Node) (value.Value, error) {
	pairs := make([]value.Pair, 0, len(n.Children))
	for _, c := range n.Children {
		v, err := e.Eval(c.Children[0])
		if err != nil {
			return value.Null, err
		}
		pairs = append(pairs, value.Pair{Key: c.Val, Val: v})
	}
	out := value.NewMap(pairs)
	e.Ctx.Track(out)
	return out, nil
}
