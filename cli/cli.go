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
	"os"

	"github.com/spf13/cobra"

	"github.com/gogo-agent/cyphergraph/cnf"
	"github.com/gogo-agent/cyphergraph/log"
)

// logFileHook opens opts.Logging.File, if set, and returns a DefaultHook
// that mirrors every log entry to it at the configured level and format,
// alongside whatever the main logger is already writing to.
func logFileHook(opts cnf.Options) (*log.DefaultHook, error) {
	if opts.Logging.File == "" {
		return nil, nil
	}
	f, err := os.OpenFile(opts.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	hook := &log.DefaultHook{}
	hook.SetLevel(opts.Logging.Level)
	hook.SetFormat(opts.Logging.Format)
	hook.SetWriter(f)
	return hook, nil
}

var opts cnf.Options

var engine *Engine

var mainCmd = &cobra.Command{
	Use:   "cyphergraph",
	Short: "A Cypher-style graph query engine command-line interface",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		log.SetLevel(opts.Logging.Level)
		log.SetFormat(opts.Logging.Format)
		hook, err := logFileHook(opts)
		if err != nil {
			return err
		}
		if hook != nil {
			log.Hook(hook)
		}
		engine, err = NewEngine(opts)
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(logo)
		cmd.Help()
	},
}

func init() {

	opts = cnf.Default()

	mainCmd.AddCommand(
		planCmd,
		logicalPlanCmd,
		explainCmd,
		testPlansCmd,
		createNodeCmd,
		createRelCmd,
		mergeNodeCmd,
		setPropertyCmd,
		deleteNodeCmd,
		beginWriteCmd,
		commitWriteCmd,
		rollbackWriteCmd,
		pipeCmd,
		versionCmd,
	)

	mainCmd.PersistentFlags().StringVar(&opts.DB.Kind, "db", opts.DB.Kind, "Storage backend: mem or sql."+flag("db"))
	mainCmd.PersistentFlags().StringVar(&opts.DB.DSN, "dsn", opts.DB.DSN, "database/sql data source name, used when --db=sql."+flag("dsn"))
	mainCmd.PersistentFlags().StringVar(&opts.DB.Prefix, "prefix", opts.DB.Prefix, "Table-name prefix, used when --db=sql."+flag("prefix"))
	mainCmd.PersistentFlags().BoolVar(&opts.Index.Enabled, "index", opts.Index.Enabled, "Allow the planner to use label/property indexes."+flag("index"))
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Level, "log", opts.Logging.Level, "Logging level."+flag("log"))
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Format, "log-format", opts.Logging.Format, "Logging output format: text or json.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.File, "log-file", opts.Logging.File, "Additionally mirror logs to this file.")

}

// Run executes the command-line interface, exiting the process on error.
func Run() {
	if err := mainCmd.Execute(); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}
