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

package iterator

import (
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/plan/physical"
)

// Build recursively constructs the iterator tree matching p. Write
// operators (Create/Merge/Set/Delete/DetachDelete) are not
// handled here: the write package builds its own operator for those
// kinds, wrapping a read-side Iterator built by Build for their child
// when one is present.
func Build(p *physical.Node) (Iterator, error) {
	if p == nil {
		return nil, cerr.New(cerr.Misuse, "iterator: cannot build from a nil physical node")
	}

	var children []Iterator
	for _, c := range p.Children {
		ci, err := Build(c)
		if err != nil {
			return nil, err
		}
		children = append(children, ci)
	}

	switch p.Kind {

	case physical.AllNodesScan, physical.LabelIndexScan, physical.PropertyIndexScan:
		return newNodeScan(p), nil

	case physical.AllRelsScan, physical.TypeIndexScan:
		return newRelScan(p), nil

	case physical.HashJoin:
		if len(children) != 2 {
			return nil, cerr.New(cerr.Misuse, "iterator: HashJoin requires two children")
		}
		return newJoin(p, children[0], children[1]), nil

	case physical.NestedLoopJoin:
		if len(children) != 2 {
			return nil, cerr.New(cerr.Misuse, "iterator: NestedLoopJoin requires two children")
		}
		return newJoin(p, children[0], children[1]), nil

	case physical.IndexNestedLoop:
		// An Expand/VarLengthExpand step lowers to this same Kind, carries
		// the hop's target alias directly and has exactly one child. The
		// planner emits no two-child IndexNestedLoop (NestedLoopJoin lowers
		// to NestedLoopJoin whether or not indexes are enabled); a
		// two-child node is built as the same join as NestedLoopJoin.
		if p.Alias != "" && len(children) == 1 {
			return newExpand(p, children[0]), nil
		}
		if len(children) != 2 {
			return nil, cerr.New(cerr.Misuse, "iterator: IndexNestedLoop join requires two children")
		}
		return newJoin(p, children[0], children[1]), nil

	case physical.Filter:
		if len(children) != 1 {
			return nil, cerr.New(cerr.Misuse, "iterator: Filter requires one child")
		}
		return newFilter(p, children[0]), nil

	case physical.Projection:
		if len(children) != 1 {
			return nil, cerr.New(cerr.Misuse, "iterator: Projection requires one child")
		}
		return newProject(p, children[0]), nil

	case physical.Aggregation:
		if len(children) != 1 {
			return nil, cerr.New(cerr.Misuse, "iterator: Aggregation requires one child")
		}
		return newAggregation(p, children[0]), nil

	case physical.Sort:
		if len(children) != 1 {
			return nil, cerr.New(cerr.Misuse, "iterator: Sort requires one child")
		}
		return newSort(p, children[0]), nil

	case physical.Limit:
		if len(children) != 1 {
			return nil, cerr.New(cerr.Misuse, "iterator: Limit requires one child")
		}
		return newLimit(p, children[0])
	}

	return nil, cerr.New(cerr.Misuse, "iterator: no iterator for physical operator %s (handled by the write engine)", p.Kind)
}
