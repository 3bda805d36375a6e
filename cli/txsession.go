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
	"sync"

	"github.com/spf13/cobra"

	"github.com/gogo-agent/cyphergraph/db"
	"github.com/gogo-agent/cyphergraph/write"
)

// txSession is the long-lived handle begin_write hands back to a caller
// that wants to drive several CREATE/MERGE/SET/DELETE invocations under
// one transaction before committing or rolling back. A single cli
// process may hold several of these at once, each identified by an
// opaque token.
type txSession struct {
	ctx *db.Context
	tx  *write.Tx
}

var (
	txMu       sync.Mutex
	txNext     int
	txSessions = map[string]*txSession{}
)

func newTxSession(ctx *db.Context, tx *write.Tx) string {
	txMu.Lock()
	defer txMu.Unlock()
	txNext++
	tok := fmt.Sprintf("tx%d", txNext)
	txSessions[tok] = &txSession{ctx: ctx, tx: tx}
	return tok
}

func takeTxSession(tok string) (*txSession, error) {
	txMu.Lock()
	defer txMu.Unlock()
	s, ok := txSessions[tok]
	if !ok {
		return nil, fmt.Errorf("cli: no open write transaction %q", tok)
	}
	delete(txSessions, tok)
	return s, nil
}

var beginWriteCmd = &cobra.Command{
	Use:   "begin_write",
	Short: "Open a write transaction and print its token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, tx := engine.BeginWrite()
		fmt.Println(newTxSession(ctx, tx))
		return nil
	},
}

var commitWriteTok, rollbackWriteTok string

var commitWriteCmd = &cobra.Command{
	Use:   "commit_write",
	Short: "Commit a transaction opened by begin_write",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := takeTxSession(commitWriteTok)
		if err != nil {
			return err
		}
		return s.tx.Commit()
	},
}

var rollbackWriteCmd = &cobra.Command{
	Use:   "rollback_write",
	Short: "Roll back a transaction opened by begin_write",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := takeTxSession(rollbackWriteTok)
		if err != nil {
			return err
		}
		return s.tx.Rollback()
	},
}

func init() {
	commitWriteCmd.Flags().StringVar(&commitWriteTok, "tx", "", "Token printed by begin_write.")
	rollbackWriteCmd.Flags().StringVar(&rollbackWriteTok, "tx", "", "Token printed by begin_write.")
}
