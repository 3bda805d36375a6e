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

import "github.com/gogo-agent/cyphergraph/cerr"

// plannerError reports an AST or logical-plan shape the planner has no
// rewrite rule for. Earlier drafts of this package silently rewrote any
// unrecognized operator into a generic Filter; that swallowed mistakes
// instead of surfacing them, so every unhandled shape is now reported as
// an error of kind cerr.Misuse instead of guessed past.
func plannerError(format string, args ...interface{}) error {
	return cerr.New(cerr.Misuse, format, args...)
}
