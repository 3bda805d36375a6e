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

// Package sqlstore is a storage.Adapter over a two-table relational
// schema, backed by database/sql and the MySQL driver. Grounded on the
// teacher's kvs/mysql package (db.go opens a *sql.DB via
// sql.Open("mysql", ...); tx.go drives statements against it), collapsed
// here to direct *sql.DB calls since the write package, not the adapter,
// owns transaction boundaries: begin opens an atomic region at the
// storage adapter.
package sqlstore

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/storage"
)

// Store is a storage.Adapter backed by a SQL database reachable through
// database/sql. Prefix names the table family (<prefix>_nodes,
// <prefix>_edges).
type Store struct {
	db     *sql.DB
	prefix string
}

// Open opens dataSourceName with the MySQL driver and returns a Store
// whose tables are prefixed with prefix. Open does not create the schema;
// call Migrate first against a fresh database.
func Open(dataSourceName, prefix string) (*Store, error) {
	db, err := sql.Open("mysql", dataSourceName)
	if err != nil {
		return nil, cerr.New(cerr.StorageError, "sqlstore: %v", err)
	}
	return &Store{db: db, prefix: prefix}, nil
}

// New wraps an already-open *sql.DB, useful for tests against a fake
// driver or a connection pool the host already manages.
func New(db *sql.DB, prefix string) *Store {
	return &Store{db: db, prefix: prefix}
}

func (s *Store) nodesTable() string { return s.prefix + "_nodes" }
func (s *Store) edgesTable() string { return s.prefix + "_edges" }

// Migrate creates <prefix>_nodes and <prefix>_edges if they do not exist.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			node_id BIGINT PRIMARY KEY,
			labels TEXT NOT NULL,
			properties TEXT NOT NULL
		)`, s.nodesTable()))
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: migrate nodes: %v", err)
	}
	_, err = s.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			edge_id BIGINT PRIMARY KEY,
			from_node BIGINT NOT NULL,
			to_node BIGINT NOT NULL,
			edge_type TEXT NOT NULL,
			weight DOUBLE NOT NULL,
			properties TEXT NOT NULL
		)`, s.edgesTable()))
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: migrate edges: %v", err)
	}
	return nil
}

func (s *Store) AddNode(idHint int64, labels []string, propertiesJSON string) (int64, error) {
	id := idHint
	if id <= 0 {
		var err error
		id, err = s.NextNodeID()
		if err != nil {
			return 0, err
		}
	}
	_, err := s.db.Exec(
		fmt.Sprintf("INSERT INTO %s (node_id, labels, properties) VALUES (?, ?, ?)", s.nodesTable()),
		id, encodeLabels(labels), orEmptyObject(propertiesJSON))
	if err != nil {
		return 0, cerr.New(cerr.StorageError, "sqlstore: add node: %v", err)
	}
	return id, nil
}

func (s *Store) AddEdge(idHint, from, to int64, edgeType string, weight float64, propertiesJSON string) (int64, error) {
	exists, err := s.NodeExists(from)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, cerr.New(cerr.NotFound, "sqlstore: node %d does not exist", from)
	}
	exists, err = s.NodeExists(to)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, cerr.New(cerr.NotFound, "sqlstore: node %d does not exist", to)
	}

	id := idHint
	if id <= 0 {
		id, err = s.NextEdgeID()
		if err != nil {
			return 0, err
		}
	}
	_, err = s.db.Exec(
		fmt.Sprintf("INSERT INTO %s (edge_id, from_node, to_node, edge_type, weight, properties) VALUES (?, ?, ?, ?, ?, ?)", s.edgesTable()),
		id, from, to, edgeType, weight, orEmptyObject(propertiesJSON))
	if err != nil {
		return 0, cerr.New(cerr.StorageError, "sqlstore: add edge: %v", err)
	}
	return id, nil
}

func (s *Store) UpdateProperty(nodeID, edgeID int64, property, value string) error {
	if (nodeID > 0) == (edgeID > 0) {
		return cerr.New(cerr.Misuse, "sqlstore: exactly one of node_id/edge_id must be set")
	}
	if nodeID > 0 {
		n, ok, err := s.GetNode(nodeID)
		if err != nil {
			return err
		}
		if !ok {
			return cerr.New(cerr.NotFound, "sqlstore: node %d does not exist", nodeID)
		}
		merged, err := storage.MergeProperty(n.Properties, property, value)
		if err != nil {
			return err
		}
		_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET properties = ? WHERE node_id = ?", s.nodesTable()), merged, nodeID)
		if err != nil {
			return cerr.New(cerr.StorageError, "sqlstore: update node property: %v", err)
		}
		return nil
	}
	e, ok, err := s.GetEdge(edgeID)
	if err != nil {
		return err
	}
	if !ok {
		return cerr.New(cerr.NotFound, "sqlstore: edge %d does not exist", edgeID)
	}
	merged, err := storage.MergeProperty(e.Properties, property, value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET properties = ? WHERE edge_id = ?", s.edgesTable()), merged, edgeID)
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: update edge property: %v", err)
	}
	return nil
}

func (s *Store) SetLabel(nodeID int64, label string) error {
	n, ok, err := s.GetNode(nodeID)
	if err != nil {
		return err
	}
	if !ok {
		return cerr.New(cerr.NotFound, "sqlstore: node %d does not exist", nodeID)
	}
	for _, l := range n.Labels {
		if l == label {
			return nil
		}
	}
	n.Labels = append(n.Labels, label)
	_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET labels = ? WHERE node_id = ?", s.nodesTable()), encodeLabels(n.Labels), nodeID)
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: set label: %v", err)
	}
	return nil
}

func (s *Store) RemoveProperty(nodeID, edgeID int64, property string) error {
	if (nodeID > 0) == (edgeID > 0) {
		return cerr.New(cerr.Misuse, "sqlstore: exactly one of node_id/edge_id must be set")
	}
	if nodeID > 0 {
		n, ok, err := s.GetNode(nodeID)
		if err != nil {
			return err
		}
		if !ok {
			return cerr.New(cerr.NotFound, "sqlstore: node %d does not exist", nodeID)
		}
		removed, err := storage.RemoveProperty(n.Properties, property)
		if err != nil {
			return err
		}
		_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET properties = ? WHERE node_id = ?", s.nodesTable()), removed, nodeID)
		if err != nil {
			return cerr.New(cerr.StorageError, "sqlstore: remove node property: %v", err)
		}
		return nil
	}
	e, ok, err := s.GetEdge(edgeID)
	if err != nil {
		return err
	}
	if !ok {
		return cerr.New(cerr.NotFound, "sqlstore: edge %d does not exist", edgeID)
	}
	removed, err := storage.RemoveProperty(e.Properties, property)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET properties = ? WHERE edge_id = ?", s.edgesTable()), removed, edgeID)
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: remove edge property: %v", err)
	}
	return nil
}

func (s *Store) RemoveLabel(nodeID int64, label string) error {
	n, ok, err := s.GetNode(nodeID)
	if err != nil {
		return err
	}
	if !ok {
		return cerr.New(cerr.NotFound, "sqlstore: node %d does not exist", nodeID)
	}
	out := n.Labels[:0]
	for _, l := range n.Labels {
		if l != label {
			out = append(out, l)
		}
	}
	_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET labels = ? WHERE node_id = ?", s.nodesTable()), encodeLabels(out), nodeID)
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: remove label: %v", err)
	}
	return nil
}

func (s *Store) DeleteNode(id int64, detach bool) error {
	rels, err := s.NodeRelationships(id)
	if err != nil {
		return err
	}
	if len(rels) > 0 && !detach {
		return cerr.New(cerr.Constraint, "sqlstore: node %d has %d relationship(s); DETACH required", id, len(rels))
	}
	for _, e := range rels {
		if err := s.DeleteEdge(e.ID); err != nil {
			return err
		}
	}
	res, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE node_id = ?", s.nodesTable()), id)
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: delete node: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return cerr.New(cerr.NotFound, "sqlstore: node %d does not exist", id)
	}
	return nil
}

func (s *Store) DeleteEdge(id int64) error {
	res, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE edge_id = ?", s.edgesTable()), id)
	if err != nil {
		return cerr.New(cerr.StorageError, "sqlstore: delete edge: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return cerr.New(cerr.NotFound, "sqlstore: edge %d does not exist", id)
	}
	return nil
}

func (s *Store) NodeExists(id int64) (bool, error) {
	var count int
	err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE node_id = ?", s.nodesTable()), id).Scan(&count)
	if err != nil {
		return false, cerr.New(cerr.StorageError, "sqlstore: node_exists: %v", err)
	}
	return count > 0, nil
}

func (s *Store) NextNodeID() (int64, error) {
	var max sql.NullInt64
	err := s.db.QueryRow(fmt.Sprintf("SELECT MAX(node_id) FROM %s", s.nodesTable())).Scan(&max)
	if err != nil {
		return 0, cerr.New(cerr.StorageError, "sqlstore: next_node_id: %v", err)
	}
	return max.Int64 + 1, nil
}

func (s *Store) NextEdgeID() (int64, error) {
	var max sql.NullInt64
	err := s.db.QueryRow(fmt.Sprintf("SELECT MAX(edge_id) FROM %s", s.edgesTable())).Scan(&max)
	if err != nil {
		return 0, cerr.New(cerr.StorageError, "sqlstore: next_edge_id: %v", err)
	}
	return max.Int64 + 1, nil
}

func (s *Store) GetNode(id int64) (storage.Node, bool, error) {
	var labels, props string
	err := s.db.QueryRow(fmt.Sprintf("SELECT labels, properties FROM %s WHERE node_id = ?", s.nodesTable()), id).Scan(&labels, &props)
	if err == sql.ErrNoRows {
		return storage.Node{}, false, nil
	}
	if err != nil {
		return storage.Node{}, false, cerr.New(cerr.StorageError, "sqlstore: get node: %v", err)
	}
	return storage.Node{ID: id, Labels: decodeLabels(labels), Properties: props}, true, nil
}

func (s *Store) GetEdge(id int64) (storage.Edge, bool, error) {
	var from, to int64
	var edgeType, props string
	var weight float64
	err := s.db.QueryRow(
		fmt.Sprintf("SELECT from_node, to_node, edge_type, weight, properties FROM %s WHERE edge_id = ?", s.edgesTable()), id,
	).Scan(&from, &to, &edgeType, &weight, &props)
	if err == sql.ErrNoRows {
		return storage.Edge{}, false, nil
	}
	if err != nil {
		return storage.Edge{}, false, cerr.New(cerr.StorageError, "sqlstore: get edge: %v", err)
	}
	return storage.Edge{ID: id, From: from, To: to, Type: edgeType, Weight: weight, Properties: props}, true, nil
}

func (s *Store) NodeRelationships(id int64) ([]storage.Edge, error) {
	rows, err := s.db.Query(
		fmt.Sprintf("SELECT edge_id, from_node, to_node, edge_type, weight, properties FROM %s WHERE from_node = ? OR to_node = ? ORDER BY edge_id", s.edgesTable()),
		id, id)
	if err != nil {
		return nil, cerr.New(cerr.StorageError, "sqlstore: node_relationships: %v", err)
	}
	defer rows.Close()

	var out []storage.Edge
	for rows.Next() {
		var e storage.Edge
		if err := rows.Scan(&e.ID, &e.From, &e.To, &e.Type, &e.Weight, &e.Properties); err != nil {
			return nil, cerr.New(cerr.StorageError, "sqlstore: node_relationships scan: %v", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ScanNodes() (storage.NodeCursor, error) {
	return s.scanNodes(fmt.Sprintf("SELECT node_id, labels, properties FROM %s ORDER BY node_id", s.nodesTable()))
}

func (s *Store) ScanNodesByLabel(label string) (storage.NodeCursor, error) {
	if label == "" {
		return s.ScanNodes()
	}
	return s.scanNodes(
		fmt.Sprintf("SELECT node_id, labels, properties FROM %s WHERE labels LIKE ? ORDER BY node_id", s.nodesTable()),
		"%"+labelToken(label)+"%")
}

func (s *Store) ScanNodesByProperty(label, property, value string) (storage.NodeCursor, error) {
	cur, err := s.ScanNodesByLabel(label)
	if err != nil {
		return nil, err
	}
	// json_extract-style equality is evaluated in Go after the row comes
	// back rather than pushed into SQL, since MySQL's JSON functions are
	// not portable across the database/sql drivers a host might swap in.
	var rows []storage.Node
	for {
		n, ok, err := cur.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if storage.PropertyEquals(n.Properties, property, value) {
			rows = append(rows, n)
		}
	}
	return &nodeCursor{rows: rows}, nil
}

func (s *Store) scanNodes(query string, args ...interface{}) (storage.NodeCursor, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, cerr.New(cerr.StorageError, "sqlstore: scan nodes: %v", err)
	}
	defer rows.Close()

	var out []storage.Node
	for rows.Next() {
		var id int64
		var labels, props string
		if err := rows.Scan(&id, &labels, &props); err != nil {
			return nil, cerr.New(cerr.StorageError, "sqlstore: scan nodes: %v", err)
		}
		out = append(out, storage.Node{ID: id, Labels: decodeLabels(labels), Properties: props})
	}
	if err := rows.Err(); err != nil {
		return nil, cerr.New(cerr.StorageError, "sqlstore: scan nodes: %v", err)
	}
	return &nodeCursor{rows: out}, nil
}

func (s *Store) ScanRels() (storage.RelCursor, error) {
	return s.ScanRelsByType("")
}

func (s *Store) ScanRelsByType(edgeType string) (storage.RelCursor, error) {
	query := fmt.Sprintf("SELECT edge_id, from_node, to_node, edge_type, weight, properties FROM %s", s.edgesTable())
	var args []interface{}
	if edgeType != "" {
		query += " WHERE edge_type = ?"
		args = append(args, edgeType)
	}
	query += " ORDER BY edge_id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, cerr.New(cerr.StorageError, "sqlstore: scan rels: %v", err)
	}
	defer rows.Close()

	var out []storage.Edge
	for rows.Next() {
		var e storage.Edge
		if err := rows.Scan(&e.ID, &e.From, &e.To, &e.Type, &e.Weight, &e.Properties); err != nil {
			return nil, cerr.New(cerr.StorageError, "sqlstore: scan rels: %v", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, cerr.New(cerr.StorageError, "sqlstore: scan rels: %v", err)
	}
	return &relCursor{rows: out}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
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
