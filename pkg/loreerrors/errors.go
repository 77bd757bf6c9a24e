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

// Package loreerrors defines the conceptual error kinds the lore core
// can raise, wrapped in a single error type so callers can distinguish
// them with errors.As while the human-readable text stays stable.
package loreerrors

import "fmt"

// Kind is a conceptual error category, not a distinct Go type.
type Kind int

const (
	// ModelInit: encoder weights/tokenizer/config unavailable or corrupt.
	ModelInit Kind = iota
	// Encoding: tokenizer or forward-pass failure on a specific input.
	Encoding
	// ParseJSON: input is not valid JSON.
	ParseJSON
	// ParseShape: JSON is valid but a 'name' field is not a string.
	ParseShape
	// EmptyCorpus: parse succeeded but zero entities were extracted.
	EmptyCorpus
	// NotLoaded: query called before a successful load.
	NotLoaded
	// IO: file read failure in LoadFromFile.
	IO
)

func (k Kind) String() string {
	switch k {
	case ModelInit:
		return "model_init"
	case Encoding:
		return "encoding"
	case ParseJSON:
		return "parse_json"
	case ParseShape:
		return "parse_shape"
	case EmptyCorpus:
		return "empty_corpus"
	case NotLoaded:
		return "not_loaded"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single error type the core returns. Its Error() text is
// the literal message spec'd for the corresponding kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a loreerrors.Error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// NotLoadedErr is the fixed message for querying before a successful load.
func NotLoadedErr() error {
	return New(NotLoaded, "No index loaded. Call load_from_file() first.", nil)
}

// EmptyCorpusErr is the fixed message for a parse that extracted zero items.
func EmptyCorpusErr() error {
	return New(EmptyCorpus, "No items found in JSON. Ensure objects have a 'name' field.", nil)
}

// EmbeddingErr wraps a parse-time embedding failure for the named item.
func EmbeddingErr(name string, cause error) error {
	return New(Encoding, fmt.Sprintf("Error embedding '%s'", name), cause)
}

// ParseShapeErr reports a non-string 'name' field.
func ParseShapeErr() error {
	return New(ParseShape, "The 'name' field must be a string", nil)
}

// ParseJSONErr wraps a JSON decoding failure.
func ParseJSONErr(cause error) error {
	return New(ParseJSON, "Invalid JSON", cause)
}

// IOErr wraps a file read failure.
func IOErr(path string, cause error) error {
	return New(IO, fmt.Sprintf("Error reading file '%s'", path), cause)
}

// ModelInitErr wraps an encoder construction failure.
func ModelInitErr(cause error) error {
	return New(ModelInit, "Error initializing embedding model", cause)
}
