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

package planner

import (
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/plan/logical"
)

// compilePattern lowers a Pattern ast node (one or more comma-separated
// pattern parts) into a logical plan. Multiple parts are combined with a
// HashJoin, matching the default join strategy picked before optimize_joins
// runs.
func compilePattern(pat *ast.Node, optional bool) (*logical.Node, error) {

	var current *logical.Node

	for _, part := range pat.Children {
		if part.Kind != ast.Path {
			return nil, plannerError("planner: expected Path in pattern, got %s", part.Kind)
		}
		p, err := compilePath(part)
		if err != nil {
			return nil, err
		}
		if current == nil {
			current = p
			continue
		}
		join := logical.New(logical.HashJoin)
		join.Add(current).Add(p)
		current = join
	}

	if optional && current != nil {
		opt := logical.New(logical.OptionalExpand)
		opt.Add(current)
		return opt, nil
	}

	return current, nil

}

// compilePath lowers a single node-relationship-node... chain. Each
// relationship step emits an Expand (or VarLengthExpand for a `*min..max`
// quantifier) wrapping the chain built so far; a target node's label(s), if
// any, are folded in as LabelFilter wrappers.
func compilePath(path *ast.Node) (*logical.Node, error) {

	if len(path.Children) == 0 {
		return nil, plannerError("planner: empty path")
	}

	current, err := compileNodeScan(path.Children[0])
	if err != nil {
		return nil, err
	}

	for i := 1; i+1 < len(path.Children); i += 2 {
		rel := path.Children[i]
		target := path.Children[i+1]

		kind := logical.Expand
		for _, c := range rel.Children {
			if c.Kind == ast.Path {
				kind = logical.VarLengthExpand
			}
		}

		exp := logical.New(kind)
		exp.Alias = target.Val
		exp.Property = rel.Val
		exp.Value = direction(rel.Flags)
		if len(rel.Children) > 0 && rel.Children[0].Kind == ast.Labels && len(rel.Children[0].Children) > 0 {
			exp.Label = rel.Children[0].Children[0].Val
		}
		exp.Add(current)
		current = exp

		if target.Children != nil {
			for _, c := range target.Children {
				if c.Kind != ast.Labels {
					continue
				}
				for _, lbl := range c.Children {
					lf := logical.New(logical.LabelFilter)
					lf.Alias = target.Val
					lf.Label = lbl.Val
					lf.Add(current)
					current = lf
				}
			}
		}
	}

	return current, nil

}

func direction(f ast.Flag) string {
	switch {
	case f&ast.FlagDirBoth != 0:
		return "BOTH"
	case f&ast.FlagDirIn != 0:
		return "IN"
	case f&ast.FlagDirOut != 0:
		return "OUT"
	}
	return "BOTH"
}

// compileNodeScan lowers a NodePattern into a scan, folding any inline
// label(s) into a LabelScan/LabelFilter chain and any inline property map
// into PropertyFilter wrappers so optimize_index_usage can later promote
// them to an IndexScan.
func compileNodeScan(np *ast.Node) (*logical.Node, error) {

	var labels *ast.Node
	var props *ast.Node
	for _, c := range np.Children {
		switch c.Kind {
		case ast.Labels:
			labels = c
		case ast.Map:
			props = c
		}
	}

	var scan *logical.Node
	if labels != nil && len(labels.Children) > 0 {
		scan = logical.New(logical.LabelScan)
		scan.Label = labels.Children[0].Val
	} else {
		scan = logical.New(logical.NodeScan)
	}
	scan.Alias = np.Val

	current := scan
	if labels != nil {
		for _, lbl := range labels.Children[1:] {
			lf := logical.New(logical.LabelFilter)
			lf.Alias = np.Val
			lf.Label = lbl.Val
			lf.Add(current)
			current = lf
		}
	}

	if props != nil {
		for _, pair := range props.Children {
			if pair.Kind != ast.PropertyPair {
				continue
			}
			pf := logical.New(logical.PropertyFilter)
			pf.Alias = np.Val
			pf.Property = pair.Val
			if len(pair.Children) > 0 {
				pf.Value = pair.Children[0].Val
				pf.Expr = ast.New(ast.Comparison, "=",
					ast.New(ast.Property, pair.Val, ast.New(ast.Identifier, np.Val)),
					pair.Children[0])
			}
			pf.Add(current)
			current = pf
		}
	}

	return current, nil

}
