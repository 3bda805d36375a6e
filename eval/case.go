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

// evalCase handles both simple CASE (a subject compared for equality
// against each WHEN) and searched CASE (each WHEN is its own boolean
// expression). The parser's ast.Node.Add ignores a nil child, so a
// searched CASE's Children start directly with CaseAlt nodes, while a
// simple CASE's Children[0] is the subject expression.
func (e *Evaluator) evalCase(n *ast.Node) (value.Value, error) {
	if len(n.Children) == 0 {
		return value.Null, nil
	}

	searched := n.Children[0].Kind == ast.CaseAlt

	var subject value.Value
	alts := n.Children
	if !searched {
		var err error
		subject, err = e.Eval(n.Children[0])
		if err != nil {
			return value.Null, err
		}
		alts = n.Children[1:]
	}

	for _, alt := range alts {
		if alt.Val == "else" {
			return e.Eval(alt.Children[0])
		}

		when, err := e.Eval(alt.Children[0])
		if err != nil {
			return value.Null, err
		}

		var matched bool
		if searched {
			matched = !when.IsNull() && when.Truthy()
		} else if !when.IsNull() && !subject.IsNull() {
			matched = subject.Equal(when)
		}

		if matched {
			return e.Eval(alt.Children[1])
		}
	}

	return value.Null, nil
}
