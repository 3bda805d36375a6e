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

// Package storage defines the abstract interface onto the relational
// substrate: a two-table node/edge schema, reachable through point
// mutations, point reads and ordered scans. Grounded on the teacher's
// kvs.TX interface (kvs/tx.go), which
// exposes the same point/prefix/range shape (Get, GetP, GetR) against a
// byte-oriented key space; here the key space is the node/edge id space
// of the two relational tables instead of a generic key-value store.
package storage

// Node is a row of <prefix>_nodes. Labels preserve first-insertion
// order; Properties is a JSON object string.
type Node struct {
	ID         int64
	Labels     []string
	Properties string
}

// Edge is a row of <prefix>_edges.
type Edge struct {
	ID         int64
	From       int64
	To         int64
	Type       string
	Weight     float64
	Properties string
}

// NodeCursor streams Nodes in insertion order. Next returns (Node, true,
// nil) while rows remain, (Node{}, false, nil) on exhaustion, or a
// non-nil error that the caller must treat as terminal.
type NodeCursor interface {
	Next() (Node, bool, error)
	Close() error
}

// RelCursor is NodeCursor's edge-table counterpart.
type RelCursor interface {
	Next() (Edge, bool, error)
	Close() error
}

// Adapter is the storage contract every backend must satisfy. All
// property and label payloads travel as JSON strings at this
// boundary. Implementations must be safe for concurrent readers outside
// an active write transaction; the write package serializes writers.
type Adapter interface {
	// AddNode inserts a node. If idHint > 0 the implementation must honor
	// it or fail; otherwise it assigns a fresh id via NextNodeID.
	AddNode(idHint int64, labels []string, propertiesJSON string) (int64, error)

	// AddEdge inserts an edge. Fails with cerr.NotFound if either endpoint
	// does not exist.
	AddEdge(idHint, from, to int64, edgeType string, weight float64, propertiesJSON string) (int64, error)

	// UpdateProperty merges a single property into a node's or an edge's
	// existing JSON object, creating the object if absent. Exactly one of
	// nodeID/edgeID must be > 0.
	UpdateProperty(nodeID, edgeID int64, property, value string) error

	// SetLabel adds label to a node's label array if not already present.
	SetLabel(nodeID int64, label string) error

	// RemoveProperty deletes a key from a node's or an edge's JSON object.
	RemoveProperty(nodeID, edgeID int64, property string) error

	// RemoveLabel deletes label from a node's label array.
	RemoveLabel(nodeID int64, label string) error

	// DeleteNode removes a node. If detach is false and the node has any
	// edges, it must refuse with cerr.Constraint; if true, edges are
	// removed first in the same operation.
	DeleteNode(id int64, detach bool) error

	// DeleteEdge removes an edge.
	DeleteEdge(id int64) error

	// NodeExists reports whether id names a live node.
	NodeExists(id int64) (bool, error)

	// NextNodeID, NextEdgeID return monotonically increasing ids scoped to
	// this adapter instance.
	NextNodeID() (int64, error)
	NextEdgeID() (int64, error)

	// GetNode, GetEdge perform a point read by id.
	GetNode(id int64) (Node, bool, error)
	GetEdge(id int64) (Edge, bool, error)

	// NodeRelationships returns every edge touching id, used by the write
	// engine to enforce delete-without-detach.
	NodeRelationships(id int64) ([]Edge, error)

	// ScanNodes, ScanNodesByLabel, ScanNodesByProperty back AllNodesScan,
	// LabelIndexScan and PropertyIndexScan respectively.
	// ScanNodesByLabel and ScanNodesByProperty use "" to mean unfiltered.
	ScanNodes() (NodeCursor, error)
	ScanNodesByLabel(label string) (NodeCursor, error)
	ScanNodesByProperty(label, property, value string) (NodeCursor, error)

	// ScanRels, ScanRelsByType back AllRelsScan/TypeIndexScan.
	ScanRels() (RelCursor, error)
	ScanRelsByType(edgeType string) (RelCursor, error)

	// Close releases any resources held by the adapter (connection pool,
	// open files, ...).
	Close() error
}
