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
	"log/slog"

	"github.com/shaders/toonpack/pkg/graph"
)

// DefaultLongStringThreshold is the minimum rune length of an interned string.
const DefaultLongStringThreshold = 50

// Options controls which stages Encode runs.
type Options struct {
	// AllowShortForms renames record keys to their shortest unique prefixes.
	AllowShortForms bool
	// AllowCleaning strips null and empty members. This stage is lossy.
	AllowCleaning bool
	// ReplaceLongStrings interns strings of at least LongStringThreshold runes.
	ReplaceLongStrings  bool
	LongStringThreshold int
	// EscapeTokenLookalikes interns input strings that already look like
	// placeholders, so they survive decoding unchanged.
	EscapeTokenLookalikes bool
	// MaxDepth limits graph nesting; see graph.Visitor.
	MaxDepth int
	// Logger receives per-stage debug records. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{
		AllowShortForms:       true,
		AllowCleaning:         true,
		ReplaceLongStrings:    true,
		LongStringThreshold:   DefaultLongStringThreshold,
		EscapeTokenLookalikes: true,
		MaxDepth:              graph.DefaultMaxDepth,
	}
}

// Option adjusts Options.
type Option func(*Options)

func WithShortForms(enabled bool) Option {
	return func(o *Options) { o.AllowShortForms = enabled }
}

func WithCleaning(enabled bool) Option {
	return func(o *Options) { o.AllowCleaning = enabled }
}

func WithLongStrings(enabled bool) Option {
	return func(o *Options) { o.ReplaceLongStrings = enabled }
}

func WithThreshold(runes int) Option {
	return func(o *Options) { o.LongStringThreshold = runes }
}

func WithTokenEscaping(enabled bool) Option {
	return func(o *Options) { o.EscapeTokenLookalikes = enabled }
}

func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func (o Options) validate() error {
	if o.ReplaceLongStrings && o.LongStringThreshold < 1 {
		return &ValidationError{Field: "longStringThreshold", Reason: "must be at least 1"}
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
