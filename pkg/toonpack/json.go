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

package toonpack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/shaders/toonpack/pkg/graph"
)

// resultJSON is the wire shape of Result. Pointers keep absent fields out of
// the output while still emitting a present-but-empty table as {}.
type resultJSON struct {
	EncodedText             *string            `json:"encodedText,omitempty"`
	KeyShortForms           *map[string]string `json:"keyShortForms,omitempty"`
	ReplaceLongStringsTable *map[string]string `json:"replaceLongStringsTable,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	w := resultJSON{EncodedText: r.EncodedText}
	if r.KeyShortForms != nil {
		w.KeyShortForms = &r.KeyShortForms
	}
	if r.ReplaceLongStringsTable != nil {
		w.ReplaceLongStringsTable = &r.ReplaceLongStringsTable
	}
	return json.Marshal(w)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var w resultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Result{EncodedText: w.EncodedText}
	if w.KeyShortForms != nil {
		r.KeyShortForms = *w.KeyShortForms
	}
	if w.ReplaceLongStringsTable != nil {
		r.ReplaceLongStringsTable = *w.ReplaceLongStringsTable
	}
	return nil
}

// ParseJSON parses JSON, or JSON with comments and trailing commas, into a
// graph. Numbers are normalized with graph.Normalize, so integers too large
// for a float64 keep their exact value.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse json: trailing data after value")
	}
	return graph.Normalize(v), nil
}

// EncodeJSON parses data with ParseJSON and encodes the result.
func EncodeJSON(data []byte, opts ...Option) (Result, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return Result{}, err
	}
	return Encode(v, opts...)
}

// DecodeJSON decodes r and renders the graph as JSON.
func DecodeJSON(r Result) ([]byte, error) {
	v, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
