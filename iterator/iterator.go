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

// Package iterator implements the pull-based, single-threaded streaming
// execution engine: a tree of cooperative iterators built from a
// physical plan, each exposing open/next/close/destroy.
//
// Grounded on the teacher's own statement executors (db/select.go,
// db/create.go, ...), which pull rows from an underlying kvs.TX cursor
// and evaluate expressions against a per-statement context; this engine
// generalizes that shape to an explicit operator tree driven by
// plan/physical.Node instead of one hand-written function per SurrealQL
// statement.
package iterator

import (
	"github.com/gogo-agent/cyphergraph/db"
)

// Iterator is the single interface every physical operator implements.
// Next binds the current row's aliases into the execution context and
// returns true; it returns false (with a nil error) at end of input.
// Children are owned by their parent: Close/Destroy must cascade.
type Iterator interface {
	Open(ctx *db.Context) error
	Next() (bool, error)
	Close() error
	Destroy()
}

// RowProducer is implemented by an Iterator that can hand back the last
// Row it produced (Projection, and Sort/Limit/Aggregation sitting above
// one), so a caller driving the top of the tree doesn't need to re-derive
// columns from the execution context's bound aliases.
type RowProducer interface {
	Row() *db.Row
}

// base holds the fields every concrete iterator needs: the execution
// context supplied at Open, and the child iterators it pulls from.
type base struct {
	ctx      *db.Context
	children []Iterator
}

func (b *base) Close() error {
	var err error
	for _, c := range b.children {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (b *base) Destroy() {
	for _, c := range b.children {
		c.Destroy()
	}
	b.children = nil
}
