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

// Package annindex wraps a coder/hnsw graph as a cosine-distance
// approximate nearest-neighbor index over integer item ids.
package annindex

import "github.com/coder/hnsw"

// Config parameterizes the HNSW graph at construction time.
type Config struct {
	// MaxNeighborsPerNode bounds the graph's connectivity per node (M).
	MaxNeighborsPerNode int
	// MaxLayers bounds the graph's height; translated into the level
	// generation factor Ml by scaling hnsw's default Ml by MaxLayers/16.
	MaxLayers int
	// EfConstruction trades build-time recall for speed.
	EfConstruction int
}

// DefaultConfig matches spec.md's defaults.
func DefaultConfig() Config {
	return Config{MaxNeighborsPerNode: 16, MaxLayers: 16, EfConstruction: 200}
}

// Hit is one ranked search result: the id of the matched node and its
// cosine distance from the query vector (ascending distance == ranked).
type Hit struct {
	ID       int
	Distance float32
}

// Index is a cosine-distance HNSW graph keyed by item id.
type Index struct {
	graph *hnsw.Graph[int]
}

// New builds an empty HNSW graph under cosine distance.
func New(cfg Config) *Index {
	g := hnsw.NewGraph[int]()
	g.M = cfg.MaxNeighborsPerNode
	g.Distance = hnsw.CosineDistance
	if cfg.MaxLayers > 0 {
		// Ml controls how quickly node levels decay. A larger MaxLayers
		// budget allows a gentler decay, which we approximate by scaling
		// the Ml that hnsw.NewGraph sets by MaxLayers/16 (16 being
		// spec.md's own default max_layers).
		g.Ml = g.Ml * float64(cfg.MaxLayers) / 16
	}
	g.EfSearch = cfg.EfConstruction
	return &Index{graph: g}
}

// Insert adds a single (id, vector) pair as a graph node.
func (ix *Index) Insert(id int, vec []float32) {
	ix.graph.Add(hnsw.MakeNode(id, vec))
}

// Search returns up to k nearest neighbors of query under cosine
// distance, ranked by ascending distance, searched at the given
// ef_search breadth.
func (ix *Index) Search(query []float32, k int, efSearch int) []Hit {
	ix.graph.EfSearch = efSearch
	nodes := ix.graph.Search(query, k)

	hits := make([]Hit, len(nodes))
	for i, n := range nodes {
		hits[i] = Hit{ID: n.Key, Distance: hnsw.CosineDistance(query, n.Value)}
	}
	return hits
}

// Len reports the number of nodes currently in the graph.
func (ix *Index) Len() int {
	return ix.graph.Len()
}
