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

// Package loreitem holds the in-memory record for one lore entity and
// the closed set of entity kinds it can carry.
package loreitem

import "fmt"

// Kind classifies an Item into one of seven closed categories.
type Kind int

const (
	Unknown Kind = iota
	World
	Region
	Location
	Character
	Event
	Faction
)

// String returns the textual representation used in Display and Stats.
func (k Kind) String() string {
	switch k {
	case World:
		return "World"
	case Region:
		return "Region"
	case Location:
		return "Location"
	case Character:
		return "Character"
	case Event:
		return "Event"
	case Faction:
		return "Faction"
	default:
		return "Unknown"
	}
}

// KindFromContainerKey maps a recognized JSON container key to its
// associated Kind. Unrecognized keys are not expected to be passed
// here; callers should only invoke this for the fixed table in the
// parser.
func KindFromContainerKey(key string) (Kind, bool) {
	switch key {
	case "worlds":
		return World, true
	case "regions":
		return Region, true
	case "locations":
		return Location, true
	case "characters":
		return Character, true
	case "events":
		return Event, true
	case "factions":
		return Faction, true
	default:
		return Unknown, false
	}
}

// Item is one lore entity extracted from the JSON corpus.
type Item struct {
	ID         int
	Name       string
	Text       string
	Vec        []float32
	Kind       Kind
	ParentPath string
	Depth      int
}

// Display formats the item the way Retrieval presents it in query output.
func (it *Item) Display() string {
	if it.ParentPath == "" {
		return fmt.Sprintf("[%s] %s : %s", it.Kind, it.Name, it.Text)
	}
	return fmt.Sprintf("[%s] %s (in '%s') : %s", it.Kind, it.Name, it.ParentPath, it.Text)
}
