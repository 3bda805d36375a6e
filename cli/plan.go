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
	"strings"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [query]",
	Short: "Print the physical plan compiled for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := engine.Plan(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var logicalPlanCmd = &cobra.Command{
	Use:   "logical_plan [query]",
	Short: "Print the optimized logical plan compiled for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := engine.LogicalPlan(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain [query]",
	Short: "Print a query's logical plan, physical plan, and cost summary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := engine.Explain(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var testPlansCmd = &cobra.Command{
	Use:   "test_plans",
	Short: "Print the physical plans compiled for the fixed fixture queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := engine.TestPlans()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}
