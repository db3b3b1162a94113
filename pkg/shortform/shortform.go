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

// Package shortform renames record keys to their shortest unique prefixes
// and back.
package shortform

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/shaders/toonpack/pkg/graph"
)

// Map assigns a short form to each original key. The same type holds the
// inverted map used on decode.
type Map map[string]string

// ConsistencyError means two keys claim the same short form, which makes
// renaming irreversible.
type ConsistencyError struct {
	Short string
	Keys  []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("shortform: keys %q share short form %q", e.Keys, e.Short)
}

// CollectKeys returns every distinct record key in v, ordered by rune length
// and then lexicographically. maxDepth follows graph.Visitor.MaxDepth.
func CollectKeys(v any, maxDepth int) ([]string, error) {
	seen := make(map[string]struct{})
	err := graph.Walk(v, maxDepth, func(k string) {
		seen[k] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys, nil
}

// sortKeys orders keys shortest first, then in byte order.
func sortKeys(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// Generate assigns each key the shortest prefix not already taken by a key
// processed before it. Keys are processed shortest first.
func Generate(keys []string) (Map, error) {
	ordered := slices.Clone(keys)
	sortKeys(ordered)
	ordered = slices.Compact(ordered)

	m := make(Map, len(ordered))
	owner := make(map[string]string, len(ordered))
	for _, key := range ordered {
		short, ok := "", false
		for end := 0; end < len(key); {
			_, size := utf8.DecodeRuneInString(key[end:])
			end += size
			if _, taken := owner[key[:end]]; !taken {
				short, ok = key[:end], true
				break
			}
		}
		if !ok {
			// Every prefix is taken, including the key itself. A distinct key
			// set cannot get here; the check keeps the map injective anyway.
			if prev, taken := owner[key]; taken {
				return nil, &ConsistencyError{Short: key, Keys: []string{prev, key}}
			}
			short = key
		}
		m[key] = short
		owner[short] = key
	}
	return m, nil
}

// Invert returns the short-to-original map.
func (m Map) Invert() (Map, error) {
	inv := make(Map, len(m))
	for key, short := range m {
		if prev, dup := inv[short]; dup {
			keys := []string{prev, key}
			slices.Sort(keys)
			return nil, &ConsistencyError{Short: short, Keys: keys}
		}
		inv[short] = key
	}
	return inv, nil
}

// Rename returns a copy of v with every record key replaced by its mapping.
// Keys missing from m are kept as they are.
func Rename(v any, m Map, maxDepth int) (any, error) {
	out, err := graph.Transform(v, graph.Visitor{
		Key: func(k string) string {
			if short, ok := m[k]; ok {
				return short
			}
			return k
		},
		MaxDepth: maxDepth,
	})
	var dup *graph.DuplicateKeyError
	if errors.As(err, &dup) {
		return nil, &ConsistencyError{Short: dup.Key, Keys: dup.From}
	}
	return out, err
}
