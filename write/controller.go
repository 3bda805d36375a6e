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

package write

import (
	"sync"

	"github.com/gogo-agent/cyphergraph/db"
)

// Controller serializes write transactions against one storage.Adapter:
// writers are serialized, and only one write transaction may be in
// flight against a given adapter at a time. Grounded on the teacher's
// db/mutex.go, which keeps a per-key versioned RWMutex so many
// independently-keyed documents can be written concurrently; this engine
// has no per-key granularity to exploit, since point mutations all land
// on the same two node/edge tables, so a single coarse-grained mutex
// gives the same serialization guarantee with none of the bookkeeping.
// A Controller is constructed once per host and shared by
// every caller that opens a transaction against the same adapter; it is
// never a package-level variable, so a process embedding more than one
// graph keeps them independently lockable.
type Controller struct {
	mu sync.Mutex
}

// NewController returns a Controller ready to guard write transactions.
func NewController() *Controller {
	return &Controller{}
}

// Begin blocks until any other writer has released the Controller, then
// opens a transaction against ctx's adapter. The caller must call either
// Commit or Rollback on the returned Tx to release the lock; failing to
// do so deadlocks every subsequent Begin.
func (c *Controller) Begin(ctx *db.Context) *Tx {
	c.mu.Lock()
	tx := Begin(ctx)
	tx.release = c.mu.Unlock
	return tx
}
