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

package sqlstore

import "encoding/json"

// encodeLabels renders labels as the JSON array stored in the
// <prefix>_nodes.labels column.
func encodeLabels(labels []string) string {
	if len(labels) == 0 {
		return "[]"
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeLabels(raw string) []string {
	var labels []string
	if raw == "" {
		return labels
	}
	_ = json.Unmarshal([]byte(raw), &labels)
	return labels
}

// labelToken quotes label the way it appears inside the JSON array text,
// used to build a LIKE pattern for ScanNodesByLabel. This is a coarse
// substring match, adequate for modest label cardinalities; a real
// index-backed deployment would replace it with a proper label index
// table.
func labelToken(label string) string {
	b, err := json.Marshal(label)
	if err != nil {
		return label
	}
	return string(b)
}
