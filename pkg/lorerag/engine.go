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

// Package lorerag wires the encoder, parser, ANN index, and intent
// classifier into the five public operations of the lore retrieval
// core: construction, load, query, and stats.
package lorerag

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kadirpekel/lorerag/pkg/annindex"
	"github.com/kadirpekel/lorerag/pkg/intent"
	"github.com/kadirpekel/lorerag/pkg/loreerrors"
	"github.com/kadirpekel/lorerag/pkg/loreitem"
	"github.com/kadirpekel/lorerag/pkg/loreparse"
	"github.com/kadirpekel/lorerag/pkg/lrlog"
)

var errEncoderRequired = errors.New("lorerag: Config.Encoder is required")

// searchEfSearch is the fixed ef_search breadth used at query time,
// per spec.md — a tuning constant fixed for reproducible results, not
// a correctness requirement.
const searchEfSearch = 64

// Engine owns the encoder, the current corpus, and its ANN index. The
// corpus and index are replaced atomically on reload; a failed reload
// leaves the previous valid state untouched. Not safe for concurrent
// Load* calls against the same Engine, matching the single-threaded,
// cooperative scheduling model of the source design.
type Engine struct {
	cfg annindex.Config
	enc encoderEmbedder

	mu     sync.Mutex
	items  []loreitem.Item
	index  *annindex.Index
	loaded bool
}

// encoderEmbedder is the subset of encoder.Encoder the engine needs;
// declared locally so the engine package doesn't force callers to
// import pkg/encoder just for the interface.
type encoderEmbedder interface {
	Embed(text string) ([]float32, error)
	Dimension() int
}

// New constructs an Engine. The encoder inside cfg is created once and
// reused for the Engine's lifetime — construction of the encoder
// itself is the heavy, amortized step; New does not re-create it.
func New(cfg Config) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg: annindex.Config{
			MaxNeighborsPerNode: int(cfg.MaxNeighborsPerNode),
			MaxLayers:           int(cfg.MaxLayers),
			EfConstruction:      int(cfg.EfConstruction),
		},
		enc: cfg.Encoder,
	}, nil
}

// LoadFromFile reads a UTF-8 JSON file and delegates to LoadFromJSON.
func (e *Engine) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return loreerrors.IOErr(path, err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return loreerrors.ParseJSONErr(err)
	}

	return e.LoadFromJSON(value)
}

// LoadFromJSON parses an already-decoded JSON tree (as produced by
// encoding/json into map[string]any / []any / scalars), extracts
// items, embeds them, and builds a fresh ANN index. On success the
// Engine's corpus and index are replaced atomically; on failure the
// Engine keeps whatever it held before the call.
func (e *Engine) LoadFromJSON(value any) error {
	items, err := loreparse.Collect(value, e.enc)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return loreerrors.EmptyCorpusErr()
	}

	index := annindex.New(e.cfg)
	for i := range items {
		index.Insert(items[i].ID, items[i].Vec)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = items
	e.index = index
	e.loaded = true

	lrlog.Get().Info("lore corpus loaded", "items", len(items))
	return nil
}

// Query embeds text, classifies its intent, runs ANN search over-
// fetching 3x when a kind filter is active, post-filters by kind, and
// formats the top_k ranked results as human-readable text.
func (e *Engine) Query(text string, topK int) (string, error) {
	e.mu.Lock()
	items, index, loaded := e.items, e.index, e.loaded
	e.mu.Unlock()

	if !loaded {
		return "", loreerrors.NotLoadedErr()
	}

	qv, err := e.enc.Embed(text)
	if err != nil {
		return "", loreerrors.New(loreerrors.Encoding, "Error embedding query", err)
	}

	filterKind, hasFilter := intent.Classify(text)

	searchK := topK
	if hasFilter {
		searchK = topK * 3
	}

	hits := index.Search(qv, searchK, searchEfSearch)

	var out strings.Builder
	if hasFilter {
		fmt.Fprintf(&out, "Filter: %s only\n\n", filterKind)
	}

	if len(hits) == 0 {
		out.WriteString("No relevant items found.\n")
		return out.String(), nil
	}

	type result struct {
		item *loreitem.Item
		hit  annindex.Hit
	}
	var filtered []result
	for _, h := range hits {
		if h.ID < 0 || h.ID >= len(items) {
			continue
		}
		it := &items[h.ID]
		if hasFilter && it.Kind != filterKind {
			continue
		}
		filtered = append(filtered, result{item: it, hit: h})
		if len(filtered) == topK {
			break
		}
	}

	if len(filtered) == 0 {
		out.WriteString("No items of the requested type found.\n")
		return out.String(), nil
	}

	for rank, r := range filtered {
		similarity := 1.0 - r.hit.Distance
		fmt.Fprintf(&out, "%d. %s (similarity: %.3f)\n", rank+1, r.item.Display(), similarity)
	}

	return out.String(), nil
}

// Stats reports the total item count and per-kind breakdown of the
// currently loaded corpus.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	perKind := make(map[string]int)
	for i := range e.items {
		perKind[e.items[i].Kind.String()]++
	}
	return Stats{
		TotalItems: len(e.items),
		PerKind:    perKind,
	}
}

// Close releases the encoder's underlying resources (e.g. an ONNX
// session). The Engine must not be used afterward.
func (e *Engine) Close() error {
	if closer, ok := e.enc.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Stats is the shape returned by Engine.Stats.
type Stats struct {
	TotalItems int
	PerKind    map[string]int
}
