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

package lorerag_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/lorerag/pkg/encodertest"
	"github.com/kadirpekel/lorerag/pkg/loreerrors"
	"github.com/kadirpekel/lorerag/pkg/lorerag"
)

const sampleLore = `{"worlds":[{"name":"Aerda","description":"a flat world","regions":[
	{"name":"North","characters":[{"name":"Arion","description":"king"}]}
]}]}`

func newTestEngine(t *testing.T) *lorerag.Engine {
	t.Helper()
	eng, err := lorerag.New(lorerag.Config{Encoder: encodertest.New()})
	require.NoError(t, err)
	return eng
}

func loadSample(t *testing.T, eng *lorerag.Engine) {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(sampleLore), &v))
	require.NoError(t, eng.LoadFromJSON(v))
}

func TestNewRequiresEncoder(t *testing.T) {
	_, err := lorerag.New(lorerag.Config{})
	require.Error(t, err)
}

func TestQueryBeforeLoadFails(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Query("anything", 3)
	require.Error(t, err)
	assert.Equal(t, "No index loaded. Call load_from_file() first.", err.Error())
	var lerr *loreerrors.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, loreerrors.NotLoaded, lerr.Kind)
}

func TestLoadFromJSONEmptyCorpusFails(t *testing.T) {
	eng := newTestEngine(t)
	err := eng.LoadFromJSON(map[string]any{"a": float64(1)})
	require.Error(t, err)
	assert.Equal(t, "No items found in JSON. Ensure objects have a 'name' field.", err.Error())
}

func TestLoadFromJSONThenStats(t *testing.T) {
	eng := newTestEngine(t)
	loadSample(t, eng)

	stats := eng.Stats()
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 1, stats.PerKind["World"])
	assert.Equal(t, 1, stats.PerKind["Region"])
	assert.Equal(t, 1, stats.PerKind["Character"])

	sum := 0
	for _, n := range stats.PerKind {
		sum += n
	}
	assert.Equal(t, stats.TotalItems, sum)
}

func TestQueryWithCharacterFilter(t *testing.T) {
	eng := newTestEngine(t)
	loadSample(t, eng)

	out, err := eng.Query("Quels sont les personnages importants ?", 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Filter: Character only\n\n"))
	assert.Contains(t, out, "[Character] Arion")
	assert.NotContains(t, out, "[World]")
	assert.NotContains(t, out, "[Region]")
}

func TestQueryWithRegionFilterPriorityOverWorld(t *testing.T) {
	eng := newTestEngine(t)
	loadSample(t, eng)

	out, err := eng.Query("Décris-moi les régions du monde.", 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Filter: Region only\n\n"))
	assert.Contains(t, out, "North")
	assert.NotContains(t, out, "Arion")
}

func TestQueryWithNoFilterReturnsAllUpToTopK(t *testing.T) {
	eng := newTestEngine(t)
	loadSample(t, eng)

	out, err := eng.Query("tell me a story about this land", 3)
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "Filter:"))
	assert.Contains(t, out, "Aerda")
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "Arion")
}

func TestQueryFilterWithNoMatchingKind(t *testing.T) {
	eng := newTestEngine(t)
	// Only a World item — querying for a faction should find none after filtering.
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"worlds":[{"name":"Aerda"}]}`), &v))
	require.NoError(t, eng.LoadFromJSON(v))

	out, err := eng.Query("Quelle est cette faction ?", 3)
	require.NoError(t, err)
	assert.Equal(t, "Filter: Faction only\n\nNo items of the requested type found.\n", out)
}

func TestLoadTwiceReplacesCorpusAtomically(t *testing.T) {
	eng := newTestEngine(t)
	loadSample(t, eng)
	first := eng.Stats()

	loadSample(t, eng)
	second := eng.Stats()

	assert.Equal(t, first.TotalItems, second.TotalItems)
}

func TestFailedReloadKeepsPreviousState(t *testing.T) {
	eng := newTestEngine(t)
	loadSample(t, eng)

	err := eng.LoadFromJSON(map[string]any{"nothing": "here"})
	require.Error(t, err)

	stats := eng.Stats()
	assert.Equal(t, 3, stats.TotalItems, "failed reload must not clobber the prior valid corpus")
}

func TestTopKGreaterThanCorpusSizeReturnsAllNoError(t *testing.T) {
	eng := newTestEngine(t)
	loadSample(t, eng)

	out, err := eng.Query("tell me everything", 100)
	require.NoError(t, err)
	assert.Contains(t, out, "Aerda")
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "Arion")
}
