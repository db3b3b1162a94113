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

// Package intern replaces long string values with short placeholder tokens
// and restores them.
package intern

import (
	"strconv"
	"unicode/utf8"

	"github.com/shaders/toonpack/pkg/graph"
)

// TokenPrefix starts every placeholder. Tokens are TokenPrefix followed by a
// positive decimal with no leading zero.
const TokenPrefix = "@S"

// Table maps a placeholder token to the string it replaced.
type Table map[string]string

// Token returns the n-th placeholder.
func Token(n int) string {
	return TokenPrefix + strconv.Itoa(n)
}

// IsToken reports whether s has the placeholder syntax.
func IsToken(s string) bool {
	if len(s) <= len(TokenPrefix) || s[:len(TokenPrefix)] != TokenPrefix {
		return false
	}
	digits := s[len(TokenPrefix):]
	if digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// Interner holds the state of a single interning pass. It must not be shared
// between encode calls.
type Interner struct {
	threshold int
	escape    bool
	seen      map[string]string
	table     Table
}

// New returns an Interner replacing strings of at least threshold runes. With
// escape set, strings that already look like tokens are interned whatever
// their length, so every token left in the output is a table key.
func New(threshold int, escape bool) *Interner {
	return &Interner{
		threshold: threshold,
		escape:    escape,
		seen:      make(map[string]string),
		table:     make(Table),
	}
}

// Replace returns a copy of v with eligible strings swapped for tokens.
func (in *Interner) Replace(v any, maxDepth int) (any, error) {
	return graph.Transform(v, graph.Visitor{
		Scalar: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok || !in.eligible(s) {
				return v, nil
			}
			return in.intern(s), nil
		},
		MaxDepth: maxDepth,
	})
}

func (in *Interner) eligible(s string) bool {
	if utf8.RuneCountInString(s) >= in.threshold {
		return true
	}
	return in.escape && IsToken(s)
}

func (in *Interner) intern(s string) string {
	if tok, ok := in.seen[s]; ok {
		return tok
	}
	tok := Token(len(in.table) + 1)
	in.seen[s] = tok
	in.table[tok] = s
	return tok
}

// Table returns the tokens minted so far.
func (in *Interner) Table() Table {
	return in.table
}

// Restore returns a copy of v with every string found in t replaced by its
// original. Strings missing from t, token-shaped or not, are left alone.
func Restore(v any, t Table, maxDepth int) (any, error) {
	return graph.Transform(v, graph.Visitor{
		Scalar: func(v any) (any, error) {
			if s, ok := v.(string); ok {
				if orig, found := t[s]; found {
					return orig, nil
				}
			}
			return v, nil
		},
		MaxDepth: maxDepth,
	})
}
