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

package runtime

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/gomega"
)

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		markers []string
	}{
		{
			name: "flat record",
			input: map[string]any{
				"n":  "al",
				"ni": "ali",
			},
		},
		{
			name: "uniform list of records",
			input: map[string]any{
				"rows": []any{
					map[string]any{"i": 1.0, "s": 95.5},
					map[string]any{"i": 2.0, "s": 87.0},
				},
			},
			markers: []string{"rows[#2]{"},
		},
		{
			name: "mixed scalars",
			input: map[string]any{
				"flag":  true,
				"none":  nil,
				"token": "@S1",
				"text":  "with, comma: and colon",
				"num":   "42",
				"list":  []any{"a", 1.0, false},
			},
			markers: []string{"list[#3]:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			text, err := EncodeText(tt.input)
			g.Expect(err).ToNot(HaveOccurred())
			for _, m := range tt.markers {
				g.Expect(text).To(ContainSubstring(m))
			}

			decoded, err := DecodeText(text)
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(decoded).To(Equal(tt.input), "TOON text:\n%s", text)
		})
	}
}

func TestEncodeTextNormalizesNumbers(t *testing.T) {
	g := NewWithT(t)

	text, err := EncodeText(map[string]any{"count": 3, "ids": []int{1, 2}})
	g.Expect(err).ToNot(HaveOccurred())

	decoded, err := DecodeText(text)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(decoded).To(Equal(map[string]any{"count": 3.0, "ids": []any{1.0, 2.0}}))
}

func TestTextKeepsLargeIntegers(t *testing.T) {
	g := NewWithT(t)

	text, err := EncodeText(map[string]any{"id": int64(9007199254740993), "n": 7})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(text).To(ContainSubstring("id: 9007199254740993"))

	decoded, err := DecodeText(text)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(decoded).To(Equal(map[string]any{"id": int64(9007199254740993), "n": 7.0}))
}

func TestCompressToToon(t *testing.T) {
	g := NewWithT(t)

	t.Run("compress simple object", func(t *testing.T) {
		input := map[string]interface{}{
			"name":   "test",
			"value":  42,
			"active": true,
		}
		jsonData, err := json.Marshal(input)
		g.Expect(err).ToNot(HaveOccurred())

		toonData, err := CompressToToon(jsonData)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(toonData).ToNot(BeEmpty())

		// TOON should be more compact than JSON for structured data
		t.Logf("Original JSON length: %d", len(jsonData))
		t.Logf("TOON length: %d", len(toonData))
		t.Logf("TOON output:\n%s", toonData)
	})

	t.Run("compress array of objects", func(t *testing.T) {
		input := []map[string]interface{}{
			{"id": 1, "name": "Alice", "score": 95},
			{"id": 2, "name": "Bob", "score": 87},
			{"id": 3, "name": "Charlie", "score": 92},
		}
		jsonData, err := json.Marshal(input)
		g.Expect(err).ToNot(HaveOccurred())

		toonData, err := CompressToToon(jsonData)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(toonData).ToNot(BeEmpty())

		// For uniform arrays, TOON should provide significant compression
		t.Logf("Original JSON length: %d", len(jsonData))
		t.Logf("TOON length: %d", len(toonData))
		t.Logf("Compression ratio: %.2f%%", float64(len(toonData))/float64(len(jsonData))*100)
		t.Logf("TOON output:\n%s", toonData)
	})

	t.Run("handle invalid JSON", func(t *testing.T) {
		invalidJSON := []byte("{invalid json")
		_, err := CompressToToon(invalidJSON)
		g.Expect(err).To(HaveOccurred())
	})

	t.Run("compress nested object", func(t *testing.T) {
		input := map[string]interface{}{
			"user": map[string]interface{}{
				"name":  "John",
				"email": "john@example.com",
				"preferences": map[string]interface{}{
					"theme":         "dark",
					"notifications": true,
				},
			},
			"items": []string{"item1", "item2", "item3"},
		}
		jsonData, err := json.Marshal(input)
		g.Expect(err).ToNot(HaveOccurred())

		toonData, err := CompressToToon(jsonData)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(toonData).ToNot(BeEmpty())

		t.Logf("Original JSON length: %d", len(jsonData))
		t.Logf("TOON length: %d", len(toonData))
		t.Logf("TOON output:\n%s", toonData)
	})
}
