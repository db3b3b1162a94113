// Copyright 2025 Redpanda Data, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tokens measures how many model tokens a toonpack encoding saves.
package tokens

import (
	"encoding/json"
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/shaders/toonpack/pkg/runtime"
	"github.com/shaders/toonpack/pkg/toonpack"
)

// DefaultEncoding is the BPE vocabulary used when none is named.
const DefaultEncoding = "cl100k_base"

// Counter counts tokens in a string.
type Counter interface {
	Count(s string) int
}

// Tiktoken counts tokens with an OpenAI BPE vocabulary.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding, DefaultEncoding when empty.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokens: get encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(s string) int {
	return len(t.enc.Encode(s, nil, nil))
}

// Approx estimates four bytes per token. It needs no vocabulary download.
type Approx struct{}

func (Approx) Count(s string) int {
	return (len(s) + 3) / 4
}

// Report compares the token cost of a JSON document with its encodings.
type Report struct {
	JSONTokens  int
	ToonTokens  int
	TextTokens  int
	TableTokens int
	JSONBytes   int
	TextBytes   int
	TableBytes  int
}

// Measure counts tokens for the raw JSON, the same document as plain TOON,
// and r split into its encoded text and side tables.
func Measure(c Counter, original []byte, r toonpack.Result) (Report, error) {
	plain, err := runtime.CompressToToon(original)
	if err != nil {
		return Report{}, fmt.Errorf("tokens: plain toon: %w", err)
	}

	var tables []byte
	if r.KeyShortForms != nil || r.ReplaceLongStringsTable != nil {
		side := r
		side.EncodedText = nil
		if tables, err = json.Marshal(side); err != nil {
			return Report{}, fmt.Errorf("tokens: side tables: %w", err)
		}
	}

	return Report{
		JSONTokens:  c.Count(string(original)),
		ToonTokens:  c.Count(plain),
		TextTokens:  c.Count(r.Text()),
		TableTokens: c.Count(string(tables)),
		JSONBytes:   len(original),
		TextBytes:   len(r.Text()),
		TableBytes:  len(tables),
	}, nil
}

// Savings is the fraction of JSON tokens saved by the encoded text alone.
// Side tables are excluded since callers often keep them out of the prompt.
func (r Report) Savings() float64 {
	if r.JSONTokens == 0 {
		return 0
	}
	return 1 - float64(r.TextTokens)/float64(r.JSONTokens)
}

func (r Report) String() string {
	return fmt.Sprintf("json: %d tokens (%d bytes)\ntoon: %d tokens\ntoonpack: %d tokens (%d bytes) + tables %d tokens (%d bytes)\nsavings: %.1f%%",
		r.JSONTokens, r.JSONBytes,
		r.ToonTokens,
		r.TextTokens, r.TextBytes, r.TableTokens, r.TableBytes,
		r.Savings()*100)
}
