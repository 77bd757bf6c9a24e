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

package loreitem

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{World, "World"},
		{Region, "Region"},
		{Location, "Location"},
		{Character, "Character"},
		{Event, "Event"},
		{Faction, "Faction"},
		{Unknown, "Unknown"},
		{Kind(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestKindFromContainerKey(t *testing.T) {
	known := map[string]Kind{
		"worlds":     World,
		"regions":    Region,
		"locations":  Location,
		"characters": Character,
		"events":     Event,
		"factions":   Faction,
	}
	for key, want := range known {
		got, ok := KindFromContainerKey(key)
		if !ok || got != want {
			t.Errorf("KindFromContainerKey(%q) = (%v, %v), want (%v, true)", key, got, ok, want)
		}
	}

	if _, ok := KindFromContainerKey("npcs"); ok {
		t.Errorf("KindFromContainerKey(%q) should not be recognized", "npcs")
	}
}

func TestItemDisplayRoot(t *testing.T) {
	it := Item{Name: "Aerda", Text: "Aerda: a flat world", Kind: World, ParentPath: ""}
	want := "[World] Aerda : Aerda: a flat world"
	if got := it.Display(); got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestItemDisplayNested(t *testing.T) {
	it := Item{Name: "Arion", Text: "Arion: king", Kind: Character, ParentPath: "Aerda > North"}
	want := "[Character] Arion (in 'Aerda > North') : Arion: king"
	if got := it.Display(); got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}
