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

package ast

// Literal-kind flags, layered on top of the clause flags in ast.go so a
// Literal node's Val (raw source text) can be re-typed without a second
// field on Node.
const (
	FlagLitInt Flag = 1 << (iota + 16)
	FlagLitFloat
	FlagLitString
	FlagLitBool
	FlagLitNull
	FlagLitParam
	// Direction flags for RelPattern.
	FlagDirOut
	FlagDirIn
	FlagDirBoth
	// FlagLabelOp marks a SetItem/removal target as a label
	// operation ("n:Label") rather than a property operation
	// ("n.prop").
	FlagLabelOp
)
