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
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/daulet/tokenizers"
	ort "github.com/yalue/onnxruntime_go"
)

// Dimension is the output width of all-MiniLM-L6-v2, the sentence
// encoder this package targets.
const Dimension = 384

// Config configures construction of an OnnxEncoder.
type Config struct {
	// ModelDir must contain model.onnx and tokenizer.json.
	ModelDir string
	// SharedLibraryPath points at onnxruntime's shared library; empty
	// uses the platform default search path.
	SharedLibraryPath string
	// NumThreads controls intra-op parallelism. 0 picks min(4, NumCPU).
	NumThreads int
}

// OnnxEncoder runs a sentence-transformer ONNX export through ONNX
// Runtime, paired with a HuggingFace-format tokenizer. Construction is
// slow (seconds) and should happen once per process; Embed is cheap by
// comparison and may be called repeatedly.
type OnnxEncoder struct {
	session   *ort.DynamicAdvancedSession
	tokenizer *tokenizers.Tokenizer
}

var ortInitialized bool

// New loads the ONNX session and tokenizer from cfg.ModelDir.
func New(cfg Config) (*OnnxEncoder, error) {
	modelPath := filepath.Join(cfg.ModelDir, "model.onnx")
	tokenizerPath := filepath.Join(cfg.ModelDir, "tokenizer.json")

	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model not found at %s: %w", modelPath, err)
	}
	if _, err := os.Stat(tokenizerPath); err != nil {
		return nil, fmt.Errorf("tokenizer not found at %s: %w", tokenizerPath, err)
	}

	if cfg.SharedLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibraryPath)
	}
	if !ortInitialized {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("init onnxruntime: %w", err)
		}
		ortInitialized = true
	}

	numThreads := cfg.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
		if numThreads > 4 {
			numThreads = 4
		}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()
	if err := opts.SetIntraOpNumThreads(numThreads); err != nil {
		return nil, fmt.Errorf("set intra threads: %w", err)
	}
	if err := opts.SetInterOpNumThreads(1); err != nil {
		return nil, fmt.Errorf("set inter threads: %w", err)
	}

	inputNames := []string{"input_ids", "attention_mask", "token_type_ids"}
	outputNames := []string{"last_hidden_state"}
	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, opts)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	tk, err := tokenizers.FromFile(tokenizerPath)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	return &OnnxEncoder{session: session, tokenizer: tk}, nil
}

// Dimension returns 384.
func (e *OnnxEncoder) Dimension() int { return Dimension }

// Close releases the ONNX session and tokenizer.
func (e *OnnxEncoder) Close() error {
	if e.session != nil {
		e.session.Destroy()
	}
	if e.tokenizer != nil {
		e.tokenizer.Close()
	}
	return nil
}

// Embed tokenizes text with special tokens, runs a single-sample
// forward pass with an all-zero token-type input, mean-pools the
// token axis by dividing by the sample's own token count (not a fixed
// max length, and not excluding special tokens — no attention mask is
// applied beyond the implicit all-ones mask of an unpadded sample),
// and L2-normalizes the result.
func (e *OnnxEncoder) Embed(text string) ([]float32, error) {
	enc := e.tokenizer.EncodeWithOptions(text, true, tokenizers.WithReturnAttentionMask())
	ids := enc.IDs
	seqLen := len(ids)
	if seqLen == 0 {
		return nil, fmt.Errorf("tokenized to zero length")
	}

	inputIDs := make([]int64, seqLen)
	attnMask := make([]int64, seqLen)
	tokenType := make([]int64, seqLen)
	for i, v := range ids {
		inputIDs[i] = int64(v)
		attnMask[i] = 1
	}

	shape := ort.NewShape(1, int64(seqLen))

	idsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, attnMask)
	if err != nil {
		return nil, fmt.Errorf("attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, tokenType)
	if err != nil {
		return nil, fmt.Errorf("token_type_ids tensor: %w", err)
	}
	defer typeTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs); err != nil {
		return nil, fmt.Errorf("onnxruntime run: %w", err)
	}
	defer func() {
		if outputs[0] != nil {
			outputs[0].Destroy()
		}
	}()

	hiddenTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type, want *Tensor[float32]")
	}
	hidden := hiddenTensor.GetData()

	vec := meanPool(hidden, seqLen, Dimension)
	l2Normalize(vec)
	return vec, nil
}

// meanPool sums the per-token embeddings and divides by seqLen, the
// actual number of tokens in this sample.
func meanPool(hidden []float32, seqLen, dim int) []float32 {
	vec := make([]float32, dim)
	for t := 0; t < seqLen; t++ {
		base := t * dim
		for d := 0; d < dim; d++ {
			vec[d] += hidden[base+d]
		}
	}
	inv := float32(1.0 / float64(seqLen))
	for d := range vec {
		vec[d] *= inv
	}
	return vec
}

func l2Normalize(v []float32) {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSq)
	if norm < 1e-12 {
		return
	}
	inv := float32(1.0 / norm)
	for i := range v {
		v[i] *= inv
	}
}
