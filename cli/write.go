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

	"github.com/gogo-agent/cyphergraph/value"
)

// propsValue parses a --props flag (a JSON object literal, or "" for no
// properties) into a value.Value, for the create_node/create_relationship/
// merge_node scalar functions.
func propsValue(raw string) (value.Value, error) {
	if strings.TrimSpace(raw) == "" {
		return value.NewMap(nil), nil
	}
	return value.FromJSON([]byte(raw))
}

func splitLabels(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var createNodeLabels, createNodeProps string

var createNodeCmd = &cobra.Command{
	Use:   "create_node",
	Short: "Create a node under its own autocommit transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := propsValue(createNodeProps)
		if err != nil {
			return err
		}
		out, err := engine.CreateNode(splitLabels(createNodeLabels), props)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var createRelFrom, createRelTo int64
var createRelType, createRelProps string

var createRelCmd = &cobra.Command{
	Use:   "create_relationship",
	Short: "Create a relationship under its own autocommit transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := propsValue(createRelProps)
		if err != nil {
			return err
		}
		out, err := engine.CreateRelationship(createRelFrom, createRelTo, createRelType, props)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var mergeNodeLabels, mergeNodeMatch, mergeNodeOnCreate, mergeNodeOnMatch string

var mergeNodeCmd = &cobra.Command{
	Use:   "merge_node",
	Short: "MERGE a node by label and match properties",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		match, err := propsValue(mergeNodeMatch)
		if err != nil {
			return err
		}
		onCreate, err := propsValue(mergeNodeOnCreate)
		if err != nil {
			return err
		}
		onMatch, err := propsValue(mergeNodeOnMatch)
		if err != nil {
			return err
		}
		out, err := engine.MergeNode(splitLabels(mergeNodeLabels), match, onCreate, onMatch)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var setPropertyNode, setPropertyRel int64
var setPropertyName, setPropertyValue string

var setPropertyCmd = &cobra.Command{
	Use:   "set_property",
	Short: "Set a single property on a node or relationship",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := value.FromJSON([]byte(setPropertyValue))
		if err != nil {
			return err
		}
		out, err := engine.SetProperty(setPropertyNode, setPropertyRel, setPropertyName, v)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var deleteNodeID int64
var deleteNodeDetach bool

var deleteNodeCmd = &cobra.Command{
	Use:   "delete_node",
	Short: "Delete a node, optionally detaching its relationships first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := engine.DeleteNode(deleteNodeID, deleteNodeDetach)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	createNodeCmd.Flags().StringVar(&createNodeLabels, "labels", "", "Comma-separated node labels.")
	createNodeCmd.Flags().StringVar(&createNodeProps, "props", "", "Properties, as a JSON object.")

	createRelCmd.Flags().Int64Var(&createRelFrom, "from", 0, "Source node id.")
	createRelCmd.Flags().Int64Var(&createRelTo, "to", 0, "Target node id.")
	createRelCmd.Flags().StringVar(&createRelType, "type", "", "Relationship type.")
	createRelCmd.Flags().StringVar(&createRelProps, "props", "", "Properties, as a JSON object.")

	mergeNodeCmd.Flags().StringVar(&mergeNodeLabels, "labels", "", "Comma-separated node labels.")
	mergeNodeCmd.Flags().StringVar(&mergeNodeMatch, "match", "", "Match properties, as a JSON object.")
	mergeNodeCmd.Flags().StringVar(&mergeNodeOnCreate, "on-create", "", "ON CREATE SET properties, as a JSON object.")
	mergeNodeCmd.Flags().StringVar(&mergeNodeOnMatch, "on-match", "", "ON MATCH SET properties, as a JSON object.")

	setPropertyCmd.Flags().Int64Var(&setPropertyNode, "node", 0, "Node id, or 0 when setting a relationship property.")
	setPropertyCmd.Flags().Int64Var(&setPropertyRel, "rel", 0, "Relationship id, or 0 when setting a node property.")
	setPropertyCmd.Flags().StringVar(&setPropertyName, "property", "", "Property name.")
	setPropertyCmd.Flags().StringVar(&setPropertyValue, "value", "null", "Property value, as a JSON literal.")

	deleteNodeCmd.Flags().Int64Var(&deleteNodeID, "id", 0, "Node id.")
	deleteNodeCmd.Flags().BoolVar(&deleteNodeDetach, "detach", false, "Delete incident relationships first.")
}
