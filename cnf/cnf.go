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

// Package cnf holds the host's configuration, following the teacher's
// single nested-struct Options convention rather than scattering flags
// across packages. Scoped down from the teacher's Options (which also
// carries TLS certificates, cluster membership and web/tcp listener
// ports for a multi-node document database) to the handful of settings
// this engine's storage, planner and write layers actually read.
package cnf

// Options carries every tunable the cli command line exposes.
type Options struct {
	DB struct {
		Kind   string // "mem" or "sql"
		DSN    string // database/sql data source name, when Kind == "sql"
		Prefix string // table-name prefix for sqlstore (<prefix>_nodes, <prefix>_edges)
	}

	Index struct {
		Enabled    bool    // whether the planner may promote a LabelScan to an IndexScan
		CostFactor float64 // index scan cost multiplier; printed by explain, not read by any cost estimate
	}

	Logging struct {
		Level  string // logrus level name: debug, info, warn, error
		Format string // "text" or "json"
		File   string // optional path to additionally mirror logs to, via a DefaultHook
	}
}

// Default returns the engine's default configuration: an in-memory
// store, indexing enabled at the planner's own default cost factor, and
// text-formatted info-level logging.
func Default() Options {
	var o Options
	o.DB.Kind = "mem"
	o.DB.Prefix = "graph"
	o.Index.Enabled = true
	o.Index.CostFactor = 0.1
	o.Logging.Level = "info"
	o.Logging.Format = "text"
	return o
}
