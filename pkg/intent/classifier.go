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

// Package intent classifies a free-text query into an optional lore
// item kind by bilingual (English/French) keyword matching. Pure, no I/O.
package intent

import (
	"strings"

	"github.com/kadirpekel/lorerag/pkg/loreitem"
)

// group pairs a kind with the keywords that imply it. Groups are
// tested in slice order; the first group with a matching keyword wins.
type group struct {
	kind     loreitem.Kind
	keywords []string
}

// priority is the fixed, ordered keyword table. Order matters: it
// resolves ties when a query contains keywords from multiple groups
// (e.g. "région du monde" matches Region before World).
var priority = []group{
	{loreitem.Character, []string{
		"personnage", "character", "héros", "roi", "reine", "empereur", "sultan", "archimage",
	}},
	{loreitem.Location, []string{
		"lieu", "location", "endroit", "cité", "ville", "village", "forteresse",
	}},
	{loreitem.Region, []string{
		"région", "region", "royaume", "empire", "territoire",
	}},
	{loreitem.Event, []string{
		"événement", "event", "quand", "guerre", "bataille", "conflit", "histoire",
	}},
	{loreitem.Faction, []string{
		"faction", "guilde", "organisation", "ordre",
	}},
	{loreitem.World, []string{
		"monde", "world", "univers",
	}},
}

// Classify guesses the entity kind a query is asking about, returning
// false if no keyword group matches.
func Classify(query string) (loreitem.Kind, bool) {
	lower := strings.ToLower(query)
	for _, g := range priority {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.kind, true
			}
		}
	}
	return loreitem.Unknown, false
}
