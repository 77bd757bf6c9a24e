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

// Command lorerag is a minimal demonstration entrypoint: load a lore
// JSON file, run one query, print the formatted context. Argument
// parsing is intentionally bare — a real front-end is a collaborator
// outside this core.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kadirpekel/lorerag/pkg/encoder"
	"github.com/kadirpekel/lorerag/pkg/lorerag"
	"github.com/kadirpekel/lorerag/pkg/lrlog"
)

func main() {
	lorePath := flag.String("lore", "", "path to a lore JSON file")
	modelDir := flag.String("model-dir", "./models/all-MiniLM-L6-v2", "directory containing model.onnx and tokenizer.json")
	query := flag.String("query", "", "query text")
	topK := flag.Int("top-k", 3, "number of results to return")
	level := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	lrlog.Init(lrlog.ParseLevel(*level), os.Stderr)
	log := lrlog.Get()

	if *lorePath == "" || *query == "" {
		fmt.Fprintln(os.Stderr, "usage: lorerag -lore <file.json> -query \"...\" [-top-k N] [-model-dir DIR]")
		os.Exit(2)
	}

	enc, err := encoder.New(encoder.Config{ModelDir: *modelDir})
	if err != nil {
		log.Error("failed to initialize encoder", "error", err)
		os.Exit(1)
	}
	defer enc.Close()

	engine, err := lorerag.New(lorerag.Config{Encoder: enc})
	if err != nil {
		log.Error("failed to construct engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	if err := engine.LoadFromFile(*lorePath); err != nil {
		log.Error("failed to load lore", "path", *lorePath, "error", err)
		os.Exit(1)
	}

	stats := engine.Stats()
	log.Info("lore loaded", "total_items", stats.TotalItems, slog.Any("per_kind", stats.PerKind))

	context, err := engine.Query(*query, *topK)
	if err != nil {
		log.Error("query failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(context)
}
