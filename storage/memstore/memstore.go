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

// Package memstore is an in-memory storage.Adapter, grounded on the
// teacher's stores/memory.Store (a single in-process map standing in for
// a real backend, registered for fast tests and demos rather than
// production durability).
package memstore

import (
	"sync"

	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/storage"
)

// Store is an in-memory storage.Adapter. All state lives behind a single
// mutex; it is meant for tests and embedding hosts that do not need
// durability, not for concurrent production load.
type Store struct {
	mu       sync.Mutex
	nodes    map[int64]storage.Node
	edges    map[int64]storage.Edge
	order    []int64 // node insertion order
	edgeOrd  []int64 // edge insertion order
	nextNode int64
	nextEdge int64
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		nodes: make(map[int64]storage.Node),
		edges: make(map[int64]storage.Edge),
	}
}

func (s *Store) AddNode(idHint int64, labels []string, propertiesJSON string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := idHint
	if id > 0 {
		if _, exists := s.nodes[id]; exists {
			return 0, cerr.New(cerr.Constraint, "storage: node %d already exists", id)
		}
	} else {
		for {
			s.nextNode++
			if _, exists := s.nodes[s.nextNode]; !exists {
				id = s.nextNode
				break
			}
		}
	}

	labelsCopy := append([]string(nil), labels...)
	s.nodes[id] = storage.Node{ID: id, Labels: labelsCopy, Properties: orEmptyObject(propertiesJSON)}
	s.order = append(s.order, id)
	if id > s.nextNode {
		s.nextNode = id
	}
	return id, nil
}

func (s *Store) AddEdge(idHint, from, to int64, edgeType string, weight float64, propertiesJSON string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[from]; !ok {
		return 0, cerr.New(cerr.NotFound, "storage: node %d does not exist", from)
	}
	if _, ok := s.nodes[to]; !ok {
		return 0, cerr.New(cerr.NotFound, "storage: node %d does not exist", to)
	}

	id := idHint
	if id > 0 {
		if _, exists := s.edges[id]; exists {
			return 0, cerr.New(cerr.Constraint, "storage: edge %d already exists", id)
		}
	} else {
		for {
			s.nextEdge++
			if _, exists := s.edges[s.nextEdge]; !exists {
				id = s.nextEdge
				break
			}
		}
	}

	s.edges[id] = storage.Edge{ID: id, From: from, To: to, Type: edgeType, Weight: weight, Properties: orEmptyObject(propertiesJSON)}
	s.edgeOrd = append(s.edgeOrd, id)
	if id > s.nextEdge {
		s.nextEdge = id
	}
	return id, nil
}

func (s *Store) UpdateProperty(nodeID, edgeID int64, property, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if (nodeID > 0) == (edgeID > 0) {
		return cerr.New(cerr.Misuse, "storage: exactly one of node_id/edge_id must be set")
	}

	if nodeID > 0 {
		n, ok := s.nodes[nodeID]
		if !ok {
			return cerr.New(cerr.NotFound, "storage: node %d does not exist", nodeID)
		}
		merged, err := storage.MergeProperty(n.Properties, property, value)
		if err != nil {
			return err
		}
		n.Properties = merged
		s.nodes[nodeID] = n
		return nil
	}

	e, ok := s.edges[edgeID]
	if !ok {
		return cerr.New(cerr.NotFound, "storage: edge %d does not exist", edgeID)
	}
	merged, err := storage.MergeProperty(e.Properties, property, value)
	if err != nil {
		return err
	}
	e.Properties = merged
	s.edges[edgeID] = e
	return nil
}

func (s *Store) SetLabel(nodeID int64, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[nodeID]
	if !ok {
		return cerr.New(cerr.NotFound, "storage: node %d does not exist", nodeID)
	}
	for _, l := range n.Labels {
		if l == label {
			return nil
		}
	}
	n.Labels = append(n.Labels, label)
	s.nodes[nodeID] = n
	return nil
}

func (s *Store) RemoveProperty(nodeID, edgeID int64, property string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if (nodeID > 0) == (edgeID > 0) {
		return cerr.New(cerr.Misuse, "storage: exactly one of node_id/edge_id must be set")
	}

	if nodeID > 0 {
		n, ok := s.nodes[nodeID]
		if !ok {
			return cerr.New(cerr.NotFound, "storage: node %d does not exist", nodeID)
		}
		removed, err := storage.RemoveProperty(n.Properties, property)
		if err != nil {
			return err
		}
		n.Properties = removed
		s.nodes[nodeID] = n
		return nil
	}

	e, ok := s.edges[edgeID]
	if !ok {
		return cerr.New(cerr.NotFound, "storage: edge %d does not exist", edgeID)
	}
	removed, err := storage.RemoveProperty(e.Properties, property)
	if err != nil {
		return err
	}
	e.Properties = removed
	s.edges[edgeID] = e
	return nil
}

func (s *Store) RemoveLabel(nodeID int64, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[nodeID]
	if !ok {
		return cerr.New(cerr.NotFound, "storage: node %d does not exist", nodeID)
	}
	out := n.Labels[:0]
	for _, l := range n.Labels {
		if l != label {
			out = append(out, l)
		}
	}
	n.Labels = out
	s.nodes[nodeID] = n
	return nil
}

func (s *Store) DeleteNode(id int64, detach bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[id]; !ok {
		return cerr.New(cerr.NotFound, "storage: node %d does not exist", id)
	}

	var touching []int64
	for eid, e := range s.edges {
		if e.From == id || e.To == id {
			touching = append(touching, eid)
		}
	}

	if len(touching) > 0 && !detach {
		return cerr.New(cerr.Constraint, "storage: node %d has %d relationship(s); DETACH required", id, len(touching))
	}

	for _, eid := range touching {
		delete(s.edges, eid)
		s.edgeOrd = removeID(s.edgeOrd, eid)
	}

	delete(s.nodes, id)
	s.order = removeID(s.order, id)
	return nil
}

func (s *Store) DeleteEdge(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.edges[id]; !ok {
		return cerr.New(cerr.NotFound, "storage: edge %d does not exist", id)
	}
	delete(s.edges, id)
	s.edgeOrd = removeID(s.edgeOrd, id)
	return nil
}

func (s *Store) NodeExists(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.nodes[id]
	return ok, nil
}

func (s *Store) NextNodeID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNode++
	return s.nextNode, nil
}

func (s *Store) NextEdgeID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEdge++
	return s.nextEdge, nil
}

func (s *Store) GetNode(id int64) (storage.Node, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	return n, ok, nil
}

func (s *Store) GetEdge(id int64) (storage.Edge, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.edges[id]
	return e, ok, nil
}

func (s *Store) NodeRelationships(id int64) ([]storage.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storage.Edge
	for _, eid := range s.edgeOrd {
		e := s.edges[eid]
		if e.From == id || e.To == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ScanNodes() (storage.NodeCursor, error) {
	return s.ScanNodesByLabel("")
}

func (s *Store) ScanNodesByLabel(label string) (storage.NodeCursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []storage.Node
	for _, id := range s.order {
		n := s.nodes[id]
		if label == "" || hasLabel(n.Labels, label) {
			rows = append(rows, n)
		}
	}
	return &nodeCursor{rows: rows}, nil
}

func (s *Store) ScanNodesByProperty(label, property, value string) (storage.NodeCursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []storage.Node
	for _, id := range s.order {
		n := s.nodes[id]
		if label != "" && !hasLabel(n.Labels, label) {
			continue
		}
		if storage.PropertyEquals(n.Properties, property, value) {
			rows = append(rows, n)
		}
	}
	return &nodeCursor{rows: rows}, nil
}

func (s *Store) ScanRels() (storage.RelCursor, error) {
	return s.ScanRelsByType("")
}

func (s *Store) ScanRelsByType(edgeType string) (storage.RelCursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []storage.Edge
	for _, id := range s.edgeOrd {
		e := s.edges[id]
		if edgeType == "" || e.Type == edgeType {
			rows = append(rows, e)
		}
	}
	return &relCursor{rows: rows}, nil
}

func (s *Store) Close() error { return nil }

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func orEmptyObject(js string) string {
	if js == "" {
		return "{}"
	}
	return js
}

type nodeCursor struct {
	rows []storage.Node
	pos  int
}

func (c *nodeCursor) Next() (storage.Node, bool, error) {
	if c.pos >= len(c.rows) {
		return storage.Node{}, false, nil
	}
	n := c.rows[c.pos]
	c.pos++
	return n, true, nil
}

func (c *nodeCursor) Close() error { return nil }

type relCursor struct {
	rows []storage.Edge
	pos  int
}

func (c *relCursor) Next() (storage.Edge, bool, error) {
	if c.pos >= len(c.rows) {
		return storage.Edge{}, false, nil
	}
	e := c.rows[c.pos]
	c.pos++
	return e, true, nil
}

func (c *relCursor) Close() error { return nil }
