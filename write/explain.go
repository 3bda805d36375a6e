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
	"github.com/sergi/go-diff/diffmatchpatch"
)

var dmp = diffmatchpatch.New()

// logPropertyDiff writes a debug-level human-readable diff of a single
// property's prior and new JSON-encoded value to the transaction's
// logging entry. SetProperty calls it, so verbose query logging shows
// exactly what a SET statement changed rather than a before/after dump.
func (tx *Tx) logPropertyDiff(property, before, after string) {
	if tx.ctx == nil || tx.ctx.Entry == nil {
		return
	}
	diffs := dmp.DiffMain(before, after, false)
	tx.ctx.WithField("property", property).Debugf("write: %s", dmp.DiffPrettyText(diffs))
}
