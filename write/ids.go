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
	"crypto/rand"
	"encoding/binary"

	"github.com/rs/xid"

	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/storage"
)

// proposeID derives a candidate id by XOR-ing the last 8 bytes of a fresh
// xid (machine id, process id and counter) with a crypto/rand salt and
// clearing the sign bit, rather than handing out predictable sequential
// ids an attacker could guess ahead of creation. The result is neither
// monotonic nor unique by construction: allocateNodeID/allocateRelID
// check it only against ids that exist at that moment, so the id of a
// deleted node or relationship can be proposed again.
func proposeID() int64 {
	id := xid.New()
	var salt [8]byte
	rand.Read(salt[:])
	mixed := binary.BigEndian.Uint64(id.Bytes()[4:12]) ^ binary.BigEndian.Uint64(salt[:])
	return int64(mixed &^ (1 << 63))
}

// allocateNodeID proposes ids until one does not collide with an
// existing node, retrying against the adapter's node_exists probe.
func allocateNodeID(adapter storage.Adapter) (int64, error) {
	for attempts := 0; attempts < maxIDAttempts; attempts++ {
		id := proposeID()
		if id <= 0 {
			continue
		}
		exists, err := adapter.NodeExists(id)
		if err != nil {
			return 0, err
		}
		if !exists {
			return id, nil
		}
	}
	return 0, cerr.New(cerr.OutOfMemory, "write: could not allocate a node id after %d attempts", maxIDAttempts)
}

// allocateRelID proposes ids until one does not collide with an
// existing edge, retrying with GetEdge as the edge-side node_exists
// equivalent (storage.Adapter has no dedicated edge_exists probe).
func allocateRelID(adapter storage.Adapter) (int64, error) {
	for attempts := 0; attempts < maxIDAttempts; attempts++ {
		id := proposeID()
		if id <= 0 {
			continue
		}
		_, exists, err := adapter.GetEdge(id)
		if err != nil {
			return 0, err
		}
		if !exists {
			return id, nil
		}
	}
	return 0, cerr.New(cerr.OutOfMemory, "write: could not allocate a relationship id after %d attempts", maxIDAttempts)
}

const maxIDAttempts = 64
