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

package cli

var flags = map[string]string{
	"db":     `Which storage backend to use: "mem" for an in-process store, or "sql" for a database/sql-backed store.`,
	"dsn":    `database/sql data source name, used when --db=sql.`,
	"prefix": `Table-name prefix for the node/edge tables, used when --db=sql.`,
	"index":  `Whether the planner may promote a label scan to an index scan.`,
	"log":    `Logging level: panic, fatal, error, warn, info, debug or trace.`,
}

var usage = map[string][]string{
	"db": {
		"--db mem",
		"--db sql --dsn 'user:pass@tcp(127.0.0.1:3306)/graph' --prefix graph",
	},
}
