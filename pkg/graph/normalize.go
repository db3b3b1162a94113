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

package graph

import (
	"encoding/json"
	"reflect"
)

// MaxExactInt is the largest magnitude up to which every integer has an exact
// float64 representation.
const MaxExactInt = 1 << 53

// Normalize converts v into the canonical shape produced by encoding/json:
// []any, map[string]any, string, float64, bool and nil. Typed containers are
// copied and numbers become float64, so graphs coming from different decoders
// compare equal. Integers beyond MaxExactInt stay int64 or uint64 because a
// float64 would round them.
func Normalize(v any) any {
	switch KindOf(v) {
	case List:
		in, _ := AsList(v)
		out := make([]any, len(in))
		for i, elem := range in {
			out[i] = Normalize(elem)
		}
		return out
	case Record:
		in, _ := AsRecord(v)
		out := make(map[string]any, len(in))
		for k, elem := range in {
			out[k] = Normalize(elem)
		}
		return out
	}
	switch n := v.(type) {
	case json.Number:
		return normalizeNumber(n)
	case float32:
		return float64(n)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return v
}

func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return fromInt(i)
	}
	var u uint64
	if err := json.Unmarshal([]byte(n), &u); err == nil {
		return fromUint(u)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func fromInt(i int64) any {
	if i >= -MaxExactInt && i <= MaxExactInt {
		return float64(i)
	}
	return i
}

func fromUint(u uint64) any {
	if u <= MaxExactInt {
		return float64(u)
	}
	if u <= 1<<63-1 {
		return int64(u)
	}
	return u
}

// Equal reports whether a and b hold the same graph after normalization.
func Equal(a, b any) bool {
	return reflect.DeepEqual(Normalize(a), Normalize(b))
}
