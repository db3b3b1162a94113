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

// Package toonpack shrinks a JSON-like graph before it is written as TOON and
// reverses the shrinking on decode.
//
// Encode runs up to four stages in a fixed order:
//
//  1. key short forms: every record key becomes its shortest unique prefix
//  2. cleaning: null and empty members are dropped (not reversible)
//  3. long string interning: strings of at least LongStringThreshold runes
//     become @S<n> placeholders backed by a side table
//  4. TOON encoding
//
// The returned Result carries the TOON text and the side tables, and is all
// Decode needs.
package toonpack

import (
	"fmt"

	"github.com/shaders/toonpack/pkg/cleaner"
	"github.com/shaders/toonpack/pkg/intern"
	"github.com/shaders/toonpack/pkg/runtime"
	"github.com/shaders/toonpack/pkg/shortform"
)

// Result is the output of Encode. A nil field is absent; a non-nil empty
// ReplaceLongStringsTable means interning ran and found nothing.
type Result struct {
	EncodedText             *string
	KeyShortForms           map[string]string
	ReplaceLongStringsTable map[string]string
}

// Text returns the encoded text, or "" when it is absent.
func (r Result) Text() string {
	if r.EncodedText == nil {
		return ""
	}
	return *r.EncodedText
}

// Encode shrinks v and renders it as TOON.
func Encode(v any, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return EncodeWithOptions(v, o)
}

// EncodeWithOptions is Encode with an explicit Options value.
func EncodeWithOptions(v any, o Options) (Result, error) {
	if err := o.validate(); err != nil {
		return Result{}, err
	}
	log := o.logger()

	var res Result
	cur := v

	if o.AllowShortForms {
		keys, err := shortform.CollectKeys(cur, o.MaxDepth)
		if err != nil {
			return Result{}, fmt.Errorf("collect keys: %w", err)
		}
		forms, err := shortform.Generate(keys)
		if err != nil {
			return Result{}, fmt.Errorf("assign short forms: %w", err)
		}
		if cur, err = shortform.Rename(cur, forms, o.MaxDepth); err != nil {
			return Result{}, fmt.Errorf("rename keys: %w", err)
		}
		res.KeyShortForms = forms
		log.Debug("keys short-formed", "keys", len(forms))
	}

	if o.AllowCleaning {
		copts := cleaner.DefaultOptions()
		copts.MaxDepth = o.MaxDepth
		var err error
		if cur, err = cleaner.Clean(cur, copts); err != nil {
			return Result{}, fmt.Errorf("clean: %w", err)
		}
	}

	if o.ReplaceLongStrings {
		in := intern.New(o.LongStringThreshold, o.EscapeTokenLookalikes)
		var err error
		if cur, err = in.Replace(cur, o.MaxDepth); err != nil {
			return Result{}, fmt.Errorf("intern strings: %w", err)
		}
		res.ReplaceLongStringsTable = in.Table()
		log.Debug("long strings interned", "entries", len(res.ReplaceLongStringsTable), "threshold", o.LongStringThreshold)
	}

	text, err := runtime.EncodeText(cur)
	if err != nil {
		return Result{}, err
	}
	res.EncodedText = &text
	log.Debug("graph encoded", "bytes", len(text))
	return res, nil
}

// Decode rebuilds the graph held by r. Members removed by cleaning stay
// removed.
func Decode(r Result) (any, error) {
	return DecodeWithOptions(r, DefaultOptions())
}

// DecodeWithOptions is Decode honouring o.MaxDepth and o.Logger. The stage
// flags are ignored: the side tables present in r decide what is reversed.
func DecodeWithOptions(r Result, o Options) (any, error) {
	if r.EncodedText == nil {
		return nil, &ValidationError{Field: "encodedText", Reason: "is missing"}
	}
	log := o.logger()

	v, err := runtime.DecodeText(*r.EncodedText)
	if err != nil {
		return nil, err
	}

	if len(r.ReplaceLongStringsTable) > 0 {
		if v, err = intern.Restore(v, r.ReplaceLongStringsTable, o.MaxDepth); err != nil {
			return nil, fmt.Errorf("restore strings: %w", err)
		}
		log.Debug("long strings restored", "entries", len(r.ReplaceLongStringsTable))
	}

	if len(r.KeyShortForms) > 0 {
		inv, err := shortform.Map(r.KeyShortForms).Invert()
		if err != nil {
			return nil, err
		}
		if v, err = shortform.Rename(v, inv, o.MaxDepth); err != nil {
			return nil, fmt.Errorf("restore keys: %w", err)
		}
		log.Debug("keys restored", "keys", len(inv))
	}
	return v, nil
}
