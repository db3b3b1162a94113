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

// Package runtime wraps the TOON codec used as the textual stage of toonpack.
package runtime

import (
	"encoding/json"
	"fmt"

	"github.com/toon-format/toon-go"

	"github.com/shaders/toonpack/pkg/graph"
)

// EncodeText renders a graph as TOON text with [#n] length markers on every
// array header.
func EncodeText(v any) (string, error) {
	out, err := toon.Marshal(graph.Normalize(v), toon.WithLengthMarkers(true))
	if err != nil {
		return "", fmt.Errorf("toon encode: %w", err)
	}
	return string(out), nil
}

// DecodeText parses TOON text back into a graph. Numbers come back as float64,
// the same as encoding/json produces, except integers beyond
// graph.MaxExactInt, which stay int64.
func DecodeText(text string) (any, error) {
	var v any
	if err := toon.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("toon decode: %w", err)
	}
	return graph.Normalize(v), nil
}

// CompressToToon converts JSON bytes to TOON format for more efficient LLM token usage
// TOON (Token-Oriented Object Notation) is a compact format that reduces token count by ~40%
func CompressToToon(jsonData []byte) (string, error) {
	// Parse JSON into a generic structure
	var data interface{}
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return "", err
	}

	// Encode to TOON format with length markers for better structure
	toonData, err := toon.Marshal(data, toon.WithLengthMarkers(true))
	if err != nil {
		return "", err
	}

	return string(toonData), nil
}
