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
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/plan/physical"
	"github.com/gogo-agent/cyphergraph/storage"
	"github.com/gogo-agent/cyphergraph/value"
)

// nodeScan drives AllNodesScan, LabelIndexScan and PropertyIndexScan,
// which differ only in which storage.Adapter scan method opens the
// cursor. Alias defaults to "node" when the plan did not carry one.
type nodeScan struct {
	base
	plan   *physical.Node
	cursor storage.NodeCursor
	alias  string
}

func newNodeScan(p *physical.Node) *nodeScan {
	alias := p.Alias
	if alias == "" {
		alias = "node"
	}
	return &nodeScan{plan: p, alias: alias}
}

func (s *nodeScan) Open(ctx *db.Context) error {
	s.ctx = ctx
	var cur storage.NodeCursor
	var err error
	switch s.plan.Kind {
	case physical.AllNodesScan:
		cur, err = ctx.Adapter.ScanNodes()
	case physical.LabelIndexScan:
		cur, err = ctx.Adapter.ScanNodesByLabel(s.plan.Label)
	case physical.PropertyIndexScan:
		cur, err = ctx.Adapter.ScanNodesByProperty(s.plan.Label, s.plan.Property, s.plan.Value)
	default:
		return cerr.New(cerr.Misuse, "iterator: nodeScan given unexpected kind %s", s.plan.Kind)
	}
	if err != nil {
		return err
	}
	s.cursor = cur
	return nil
}

func (s *nodeScan) Next() (bool, error) {
	n, ok, err := s.cursor.Next()
	if err != nil || !ok {
		return false, err
	}
	s.ctx.Bind(s.alias, value.NodeRef(n.ID))
	return true, nil
}

func (s *nodeScan) Close() error {
	if s.cursor != nil {
		return s.cursor.Close()
	}
	return nil
}

func (s *nodeScan) Destroy() {}

// relScan drives AllRelsScan and TypeIndexScan: a streaming cursor over
// edges, optionally restricted to a single relationship type carried in
// Label.
type relScan struct {
	base
	plan   *physical.Node
	cursor storage.RelCursor
	alias  string
}

func newRelScan(p *physical.Node) *relScan {
	alias := p.Alias
	if alias == "" {
		alias = "rel"
	}
	return &relScan{plan: p, alias: alias}
}

func (s *relScan) Open(ctx *db.Context) error {
	s.ctx = ctx
	var cur storage.RelCursor
	var err error
	if s.plan.Label != "" {
		cur, err = ctx.Adapter.ScanRelsByType(s.plan.Label)
	} else {
		cur, err = ctx.Adapter.ScanRels()
	}
	if err != nil {
		return err
	}
	s.cursor = cur
	return nil
}

func (s *relScan) Next() (bool, error) {
	e, ok, err := s.cursor.Next()
	if err != nil || !ok {
		return false, err
	}
	s.ctx.Bind(s.alias, value.RelRef(e.ID))
	return true, nil
}

func (s *relScan) Close() error {
	if s.cursor != nil {
		return s.cursor.Close()
	}
	return nil
}

func (s *relScan) Destroy() {}
