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

// Package cleaner strips empty members from a graph before it is encoded.
// Cleaning is one way: removed members are not recorded anywhere.
package cleaner

import (
	"github.com/shaders/toonpack/pkg/graph"
)

// Options selects which values count as empty.
type Options struct {
	Nulls        bool
	EmptyStrings bool
	EmptyLists   bool
	EmptyRecords bool

	// MaxDepth follows graph.Visitor.MaxDepth.
	MaxDepth int
}

// DefaultOptions removes every kind of empty value.
func DefaultOptions() Options {
	return Options{
		Nulls:        true,
		EmptyStrings: true,
		EmptyLists:   true,
		EmptyRecords: true,
	}
}

// Clean returns a copy of v without empty members. Containers that become
// empty once their members are cleaned are removed as well. The root itself is
// never removed.
func Clean(v any, opts Options) (any, error) {
	return opts.clean(v, 0)
}

func (o Options) clean(v any, depth int) (any, error) {
	switch graph.KindOf(v) {
	case graph.List:
		if err := graph.CheckDepth(depth+1, o.MaxDepth); err != nil {
			return nil, err
		}
		in, _ := graph.AsList(v)
		out := make([]any, 0, len(in))
		for _, elem := range in {
			c, err := o.clean(elem, depth+1)
			if err != nil {
				return nil, err
			}
			if !o.empty(c) {
				out = append(out, c)
			}
		}
		return out, nil
	case graph.Record:
		if err := graph.CheckDepth(depth+1, o.MaxDepth); err != nil {
			return nil, err
		}
		in, _ := graph.AsRecord(v)
		out := make(map[string]any, len(in))
		for k, elem := range in {
			c, err := o.clean(elem, depth+1)
			if err != nil {
				return nil, err
			}
			if !o.empty(c) {
				out[k] = c
			}
		}
		return out, nil
	default:
		return v, nil
	}
}

func (o Options) empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return o.Nulls
	case string:
		return o.EmptyStrings && t == ""
	case []any:
		return o.EmptyLists && len(t) == 0
	case map[string]any:
		return o.EmptyRecords && len(t) == 0
	}
	return false
}
