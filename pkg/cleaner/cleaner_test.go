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

package cleaner

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/shaders/toonpack/pkg/graph"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		input any
		want  any
	}{
		{
			name:  "drops nulls",
			opts:  DefaultOptions(),
			input: map[string]any{"a": nil, "b": 1.0},
			want:  map[string]any{"b": 1.0},
		},
		{
			name: "drops containers emptied by cleaning",
			opts: DefaultOptions(),
			input: map[string]any{
				"keep":  map[string]any{"x": "y", "gone": ""},
				"empty": map[string]any{"only": nil},
				"list":  []any{nil, []any{}, map[string]any{}},
			},
			want: map[string]any{
				"keep": map[string]any{"x": "y"},
			},
		},
		{
			name:  "keeps zero and false",
			opts:  DefaultOptions(),
			input: []any{0.0, false, "", "x"},
			want:  []any{0.0, false, "x"},
		},
		{
			name:  "root survives even when empty",
			opts:  DefaultOptions(),
			input: map[string]any{"a": nil},
			want:  map[string]any{},
		},
		{
			name:  "scalar root is untouched",
			opts:  DefaultOptions(),
			input: "",
			want:  "",
		},
		{
			name:  "categories can be switched off",
			opts:  Options{Nulls: true},
			input: map[string]any{"a": nil, "b": "", "c": []any{}, "d": map[string]any{}},
			want:  map[string]any{"b": "", "c": []any{}, "d": map[string]any{}},
		},
		{
			name:  "typed containers are cleaned",
			opts:  DefaultOptions(),
			input: map[string]any{"tags": []string{"", "go"}},
			want:  map[string]any{"tags": []any{"go"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			got, err := Clean(tt.input, tt.opts)
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(got).To(Equal(tt.want))
		})
	}
}

func TestCleanDepthLimit(t *testing.T) {
	g := NewWithT(t)

	opts := DefaultOptions()
	opts.MaxDepth = 2
	_, err := Clean([]any{[]any{[]any{"deep"}}}, opts)
	g.Expect(errors.Is(err, graph.ErrMaxDepth)).To(BeTrue())
}
