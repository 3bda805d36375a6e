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

package planner

// Options carries the planner's tunables, following the teacher's cnf.Options
// nested-struct convention rather than ad hoc package globals.
type Options struct {
	Index struct {
		Enabled    bool    // Whether optimize_index_usage may promote LabelScan to IndexScan
		CostFactor float64 // Index scan cost multiplier; printed by explain, not read by any cost estimate
	}
}

// Default returns the planner's default tunables: indexing enabled, cost
// factor 0.1.
func Default() Options {
	var o Options
	o.Index.Enabled = true
	o.Index.CostFactor = 0.1
	return o
}
