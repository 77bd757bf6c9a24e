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

// Package encodertest provides a deterministic, dependency-free
// encoder.Encoder for use in other packages' tests, so parser and
// retrieval tests don't require ONNX Runtime or model files on disk.
package encodertest

import (
	"hash/fnv"
	"math"
)

// Dim is the vector width the fake encoder produces.
const Dim = 384

// Encoder hashes its input text into a reproducible pseudo-random unit
// vector. Same text always yields the same vector; different texts
// yield (with overwhelming probability) different vectors, which is
// all parser/retrieval tests need.
type Encoder struct {
	Fail error // if set, Embed always returns this error
	Dims int   // dimension to emit; 0 means Dim
}

// New returns a ready-to-use fake encoder of Dim dimensions.
func New() *Encoder { return &Encoder{} }

// Embed hashes text into seeds and expands them into a Dim-length,
// L2-normalized vector via a simple linear congruential generator.
func (e *Encoder) Embed(text string) ([]float32, error) {
	if e.Fail != nil {
		return nil, e.Fail
	}
	dim := e.Dims
	if dim == 0 {
		dim = Dim
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, dim)
	state := seed | 1
	for i := range vec {
		state = state*6364136223846793005 + 1442695040888963407
		// Map the top bits to a small signed float.
		v := float32(int32(state>>32)) / float32(math.MaxInt32)
		vec[i] = v
	}

	var sumSq float64
	for _, x := range vec {
		sumSq += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSq)
	if norm < 1e-12 {
		vec[0] = 1
		return vec, nil
	}
	inv := float32(1.0 / norm)
	for i := range vec {
		vec[i] *= inv
	}
	return vec, nil
}

// Dimension reports the configured dimension.
func (e *Encoder) Dimension() int {
	if e.Dims == 0 {
		return Dim
	}
	return e.Dims
}

// Close is a no-op; the fake encoder holds no resources.
func (e *Encoder) Close() error { return nil }
