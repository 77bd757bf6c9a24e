// SPDX-License-Identifier: AGPL-3.0
// Copyright 2025 Kadir Pekel
//
// Licensed under the GNU Affero General Public License v3.0 (AGPL-3.0) (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.gnu.org/licenses/agpl-3.0.en.html
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package loreparse recursively walks an arbitrary JSON value and
// emits a flat, hierarchy-aware list of loreitem.Item values.
package loreparse

import (
	"strings"

	"github.com/kadirpekel/lorerag/pkg/encoder"
	"github.com/kadirpekel/lorerag/pkg/loreerrors"
	"github.com/kadirpekel/lorerag/pkg/loreitem"
)

// containerKeys is the closed, order-significant table of keys that
// switch the current kind context when recursed into. Order defines
// id assignment order given an input JSON object with multiple keys.
var containerKeys = []string{
	"worlds", "regions", "locations", "characters", "events", "factions",
}

// Collect walks value depth-first, embedding each entity's text with
// enc, and returns the ordered Item list. An entity's kind is whatever
// current_kind was in effect when its enclosing object was reached;
// kind only ever changes when recursion passes through one of
// containerKeys — an entity directly nesting another entity without
// an intervening container key does not propagate its own kind.
func Collect(value any, enc encoder.Encoder) ([]loreitem.Item, error) {
	var items []loreitem.Item
	var path []string
	if err := collect(value, &items, &path, loreitem.Unknown, enc); err != nil {
		return nil, err
	}
	return items, nil
}

func collect(value any, out *[]loreitem.Item, path *[]string, currentKind loreitem.Kind, enc encoder.Encoder) error {
	switch v := value.(type) {
	case map[string]any:
		pushed := false
		if nameVal, ok := v["name"]; ok {
			name, ok := nameVal.(string)
			if !ok {
				return loreerrors.ParseShapeErr()
			}

			desc := ""
			if descVal, ok := v["description"]; ok {
				if d, ok := descVal.(string); ok {
					desc = d
				}
			}

			text := name
			if desc != "" {
				text = name + ": " + desc
			}

			vec, err := enc.Embed(text)
			if err != nil {
				return loreerrors.EmbeddingErr(name, err)
			}

			parentPath := strings.Join(*path, " > ")
			item := loreitem.Item{
				ID:         len(*out),
				Name:       name,
				Text:       text,
				Vec:        vec,
				Kind:       currentKind,
				ParentPath: parentPath,
				Depth:      len(*path),
			}
			*out = append(*out, item)

			*path = append(*path, name)
			pushed = true
		}

		consumed := map[string]bool{"name": true, "description": true}
		for _, key := range containerKeys {
			consumed[key] = true

			child, ok := v[key]
			if !ok {
				continue
			}
			kind, _ := loreitem.KindFromContainerKey(key)
			if err := collect(child, out, path, kind, enc); err != nil {
				return err
			}
		}

		// Keys outside the container table are not recognized hierarchy
		// markers, but an entity may still lurk beneath one (e.g. a
		// "retainer" or "npcs" field) — traverse them too, without
		// changing current_kind, so nothing under an unrecognized key
		// is silently dropped.
		for key, child := range v {
			if consumed[key] {
				continue
			}
			if err := collect(child, out, path, currentKind, enc); err != nil {
				return err
			}
		}

		if pushed {
			*path = (*path)[:len(*path)-1]
		}
		return nil

	case []any:
		for _, elem := range v {
			if err := collect(elem, out, path, currentKind, enc); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}
