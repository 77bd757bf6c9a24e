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

package annindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/lorerag/pkg/annindex"
)

func unit(axis, dim int) []float32 {
	v := make([]float32, dim)
	v[axis] = 1
	return v
}

func TestInsertAndSearchFindsExactMatch(t *testing.T) {
	ix := annindex.New(annindex.DefaultConfig())
	const dim = 8
	for i := 0; i < dim; i++ {
		ix.Insert(i, unit(i, dim))
	}
	require.Equal(t, dim, ix.Len())

	hits := ix.Search(unit(3, dim), 1, 64)
	require.Len(t, hits, 1)
	assert.Equal(t, 3, hits[0].ID)
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-4)
}

func TestSearchReturnsUpToK(t *testing.T) {
	ix := annindex.New(annindex.DefaultConfig())
	const dim = 4
	for i := 0; i < dim; i++ {
		ix.Insert(i, unit(i, dim))
	}

	hits := ix.Search(unit(0, dim), 2, 64)
	assert.Len(t, hits, 2)
}
