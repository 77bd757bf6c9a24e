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

package lorerag

import "github.com/kadirpekel/lorerag/pkg/encoder"

// Config configures the HNSW index and the encoder backing an Engine.
type Config struct {
	// MaxNeighborsPerNode bounds the HNSW graph's connectivity per node.
	MaxNeighborsPerNode uint
	// MaxLayers bounds the HNSW graph's height.
	MaxLayers uint
	// EfConstruction trades build-time recall for speed.
	EfConstruction uint

	// Encoder is the backend used to embed item text and queries.
	// Required; construct one via encoder.New (ONNX) or a test fake.
	Encoder encoder.Encoder
}

// SetDefaults fills zero-valued tuning fields with spec.md's defaults
// (16 neighbors, 16 layers, ef_construction 200). It does not touch
// Encoder: that dependency has no sensible default and must be
// supplied by the caller.
func (c *Config) SetDefaults() {
	if c.MaxNeighborsPerNode == 0 {
		c.MaxNeighborsPerNode = 16
	}
	if c.MaxLayers == 0 {
		c.MaxLayers = 16
	}
	if c.EfConstruction == 0 {
		c.EfConstruction = 200
	}
}

// Validate reports a configuration error, if any.
func (c *Config) Validate() error {
	if c.Encoder == nil {
		return errEncoderRequired
	}
	return nil
}
