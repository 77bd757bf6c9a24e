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

package encoder

import (
	"math"
	"testing"
)

func TestMeanPoolDividesByActualTokenCount(t *testing.T) {
	// Two tokens, dim 2: [1,2] and [3,4]. Mean = [2,3].
	hidden := []float32{1, 2, 3, 4}
	got := meanPool(hidden, 2, 2)
	want := []float32{2, 3}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("meanPool = %v, want %v", got, want)
		}
	}
}

func TestL2NormalizeProducesUnitVector(t *testing.T) {
	v := []float32{3, 4}
	l2Normalize(v)
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if math.Abs(sumSq-1.0) > 1e-6 {
		t.Fatalf("||v||^2 = %v, want ~1.0", sumSq)
	}
}

func TestL2NormalizeZeroVectorIsNoop(t *testing.T) {
	v := []float32{0, 0, 0}
	l2Normalize(v)
	for _, x := range v {
		if x != 0 {
			t.Fatalf("expected zero vector to stay zero, got %v", v)
		}
	}
}
