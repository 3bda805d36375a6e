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

// flag, wrap and indent are grounded on the teacher's cli/util.go, which
// does the same wrapping/indenting with github.com/kr/text; that module
// isn't part of this repo's dependency set (it was never a direct
// require of the teacher's own go.mod either, despite the import), so
// wrap/indent are reimplemented here with strings instead of pulling in
// a new dependency for two short helper functions.
package cli

import (
	"strings"
)

func flag(n string) (s string) {

	if f, ok := flags[n]; ok {

		s += "\n\n"

		if u, ok := usage[n]; !ok {

			s += indent(8, wrap(f))

			s += "\n"

		} else {

			s += indent(8, wrap(f+" For example:"))

			s += "\n"

			for _, i := range u {
				s += "\n" + strings.Repeat(" ", 12) + i
			}

			s += "\n"

		}

		// Indent default values
		s += strings.Repeat(" ", 7)

	}

	return

}

func wrap(s string) string {
	const width = 71
	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(s) {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

func indent(n int, s string) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
