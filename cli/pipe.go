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

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// pipeCmd is grounded on the teacher's (now removed) cli/sql.go, which
// read a script file and posted it to a running server's /sql endpoint;
// here there is no server, so the script runs straight through Engine in
// process, one semicolon-terminated statement at a time.
var pipeCmd = &cobra.Command{
	Use:     "pipe [file]",
	Short:   "Run Cypher statements read from a file, or from stdin if no file is given",
	Example: "  cyphergraph pipe script.cypher\n  echo 'MATCH (n) RETURN n' | cyphergraph pipe",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		in := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		script, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		for _, stmt := range strings.Split(string(script), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			out, err := engine.RunQuery(stmt)
			if err != nil {
				return fmt.Errorf("cli: %q: %w", stmt, err)
			}
			fmt.Print(out)
		}

		return nil
	},
}
