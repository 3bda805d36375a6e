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

// Package write implements the write engine: validated
// CREATE/MERGE/SET/REMOVE/DELETE/DETACH DELETE mutations against a
// storage.Adapter, each appending an undo-log record, with LIFO rollback
// and a begin/commit/rollback transaction lifecycle. Grounded on the
// teacher's db/create.go, db/update.go, db/delete.go, db/merge.go (the
// per-statement executors that validate, mutate, then record an undo
// step) but collapsed onto this engine's single storage.Adapter instead
// of the teacher's per-document kv.TX, since the storage Adapter already
// performs point mutations synchronously and exposes no separate
// "atomic region" to stage into: each mutation here is applied as soon
// as it validates (write-ahead undo), and commit's job is only to clear
// the log once every queued operation has succeeded.
package write

import (
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/storage"
)

// Tx is one write transaction: an execution context, the adapter it
// mutates, and the undo log accumulated so far. A Tx is always
// "in-transaction" from construction; autocommit callers simply Commit
// immediately after a single statement.
type Tx struct {
	ctx     *db.Context
	adapter storage.Adapter
	log     []record
	err     error

	// release, if set, unlocks the Controller that opened this Tx. It runs
	// exactly once, on the first Commit or Rollback.
	release  func()
	released bool
}

// Begin opens a write transaction against ctx's adapter. Callers sharing
// an adapter across goroutines should open transactions
// through a Controller instead, which serializes them.
func Begin(ctx *db.Context) *Tx {
	return &Tx{ctx: ctx, adapter: ctx.Adapter}
}

func (tx *Tx) releaseOnce() {
	if !tx.released && tx.release != nil {
		tx.released = true
		tx.release()
	}
}

// append records an undo-log entry in the order its mutation succeeded.
func (tx *Tx) append(r record) {
	tx.log = append(tx.log, r)
}

// Commit finalizes the transaction: every queued operation has already
// been applied to the adapter as it validated, so committing clears the
// undo log, leaving it empty.
func (tx *Tx) Commit() error {
	defer tx.releaseOnce()
	if tx.err != nil {
		rerr := tx.rollback()
		if rerr != nil {
			return rerr
		}
		return tx.err
	}
	tx.log = nil
	return nil
}

// Rollback reverses the undo log in LIFO order. A step that fails does
// not stop the remaining steps from being attempted; the last error
// encountered is returned, but every record is always consumed from the
// log so a second Rollback is idempotent (a no-op).
func (tx *Tx) Rollback() error {
	defer tx.releaseOnce()
	return tx.rollback()
}

func (tx *Tx) rollback() error {
	var last error
	for i := len(tx.log) - 1; i >= 0; i-- {
		if err := tx.undo(tx.log[i]); err != nil {
			last = err
		}
	}
	tx.log = nil
	tx.err = nil
	return last
}

func (tx *Tx) undo(r record) error {
	switch r.kind {

	case opCreateNode:
		return tx.adapter.DeleteNode(r.nodeID, true)

	case opCreateRel:
		return tx.adapter.DeleteEdge(r.edgeID)

	case opSetProperty:
		if !r.hadPrior {
			return tx.adapter.RemoveProperty(r.nodeID, r.edgeID, r.property)
		}
		return tx.adapter.UpdateProperty(r.nodeID, r.edgeID, r.property, r.prior)

	case opRemoveProperty:
		if !r.hadPrior {
			return nil
		}
		return tx.adapter.UpdateProperty(r.nodeID, r.edgeID, r.property, r.prior)

	case opSetLabel:
		return tx.adapter.RemoveLabel(r.nodeID, r.label)

	case opRemoveLabel:
		return tx.adapter.SetLabel(r.nodeID, r.label)

	case opDeleteNode:
		_, err := tx.adapter.AddNode(r.nodeID, r.priorLabels, r.priorProps)
		return err

	case opDeleteRel:
		_, err := tx.adapter.AddEdge(r.edgeID, r.priorFrom, r.priorTo, r.priorType, r.priorWeight, r.priorProps)
		return err
	}

	return cerr.New(cerr.Misuse, "write: unknown undo-log record kind %d", r.kind)
}

// fail records the transaction's first error without recording an undo
// step of its own; subsequent Commit calls will roll back instead.
func (tx *Tx) fail(err error) error {
	if tx.err == nil {
		tx.err = err
	}
	return err
}
