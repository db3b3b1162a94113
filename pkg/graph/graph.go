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

// Package graph provides the shared traversal used by every transform in
// toonpack. A graph is a plain Go value as produced by encoding/json or the
// TOON decoder: records are map[string]any, lists are []any and everything
// else is a scalar.
package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// DefaultMaxDepth bounds container nesting when the caller passes a zero limit.
const DefaultMaxDepth = 1000

// ErrMaxDepth is returned when a graph nests deeper than the configured limit.
var ErrMaxDepth = errors.New("graph: maximum nesting depth exceeded")

// Kind classifies a graph node.
type Kind int

const (
	Scalar Kind = iota
	List
	Record
)

func (k Kind) String() string {
	switch k {
	case List:
		return "list"
	case Record:
		return "record"
	default:
		return "scalar"
	}
}

// KindOf reports whether v is a list, a record or a scalar. Typed slices and
// string-keyed maps count as containers; []byte is a scalar.
func KindOf(v any) Kind {
	switch v.(type) {
	case []any:
		return List
	case map[string]any:
		return Record
	case nil, string, bool, float64, json.Number, []byte:
		return Scalar
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return List
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Record
		}
	}
	return Scalar
}

// AsList returns the elements of a list node.
func AsList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	if KindOf(v) != List {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsRecord returns the members of a record node.
func AsRecord(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if KindOf(v) != Record {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// DuplicateKeyError is returned by Transform when two keys of one record map
// to the same output key.
type DuplicateKeyError struct {
	Key  string
	From []string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("graph: keys %q collide on %q", e.From, e.Key)
}

// Visitor holds the per-node hooks of a Transform. Nil hooks are identities.
type Visitor struct {
	// Key rewrites a record key.
	Key func(key string) string
	// Scalar rewrites a scalar value.
	Scalar func(v any) (any, error)
	// MaxDepth limits container nesting. Zero selects DefaultMaxDepth and a
	// negative value disables the check.
	MaxDepth int
}

// Transform rebuilds v bottom-up, applying the visitor hooks. The input is
// never modified; lists keep their order and record members are visited in
// key order, so hooks with side effects see a deterministic sequence.
func Transform(v any, vis Visitor) (any, error) {
	return vis.transform(v, 0)
}

func (vis Visitor) transform(v any, depth int) (any, error) {
	switch KindOf(v) {
	case List:
		if err := CheckDepth(depth+1, vis.MaxDepth); err != nil {
			return nil, err
		}
		in, _ := AsList(v)
		out := make([]any, len(in))
		for i, elem := range in {
			t, err := vis.transform(elem, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil
	case Record:
		if err := CheckDepth(depth+1, vis.MaxDepth); err != nil {
			return nil, err
		}
		in, _ := AsRecord(v)
		out := make(map[string]any, len(in))
		var origin map[string]string
		if vis.Key != nil {
			origin = make(map[string]string, len(in))
		}
		for _, k := range slices.Sorted(maps.Keys(in)) {
			t, err := vis.transform(in[k], depth+1)
			if err != nil {
				return nil, err
			}
			nk := k
			if vis.Key != nil {
				nk = vis.Key(k)
				if prev, dup := origin[nk]; dup {
					return nil, &DuplicateKeyError{Key: nk, From: sortedPair(prev, k)}
				}
				origin[nk] = k
			}
			out[nk] = t
		}
		return out, nil
	default:
		if vis.Scalar == nil {
			return v, nil
		}
		return vis.Scalar(v)
	}
}

// Walk visits every record key in v, depth first. It is the read-only
// counterpart of Transform.
func Walk(v any, maxDepth int, key func(string)) error {
	return walk(v, 0, maxDepth, key)
}

func walk(v any, depth, maxDepth int, key func(string)) error {
	switch KindOf(v) {
	case List:
		if err := CheckDepth(depth+1, maxDepth); err != nil {
			return err
		}
		in, _ := AsList(v)
		for _, elem := range in {
			if err := walk(elem, depth+1, maxDepth, key); err != nil {
				return err
			}
		}
	case Record:
		if err := CheckDepth(depth+1, maxDepth); err != nil {
			return err
		}
		in, _ := AsRecord(v)
		for _, k := range slices.Sorted(maps.Keys(in)) {
			key(k)
			if err := walk(in[k], depth+1, maxDepth, key); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckDepth fails with ErrMaxDepth when depth exceeds limit. A zero limit
// selects DefaultMaxDepth and a negative one disables the check.
func CheckDepth(depth, limit int) error {
	if limit == 0 {
		limit = DefaultMaxDepth
	}
	if limit > 0 && depth > limit {
		return fmt.Errorf("%w (limit %d)", ErrMaxDepth, limit)
	}
	return nil
}

func sortedPair(a, b string) []string {
	if b < a {
		a, b = b, a
	}
	return []string{a, b}
}
