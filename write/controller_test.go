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
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/storage/memstore"
)

func TestControllerSerializesWriters(t *testing.T) {

	Convey("two concurrent Begin calls never hold the lock at the same time", t, func() {
		ctx := db.NewContext(memstore.New())
		ctrl := NewController()

		var mu sync.Mutex
		inside := 0
		maxInside := 0
		var wg sync.WaitGroup

		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tx := ctrl.Begin(ctx)
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				So(tx.Commit(), ShouldBeNil)
			}()
		}
		wg.Wait()

		So(maxInside, ShouldEqual, 1)
	})

}
