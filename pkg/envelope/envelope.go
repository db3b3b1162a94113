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

// Package envelope serializes a toonpack.Result into a self-describing byte
// payload and back.
//
// A sealed payload is one header byte followed by the body. The high nibble of
// the header names the Format, the low nibble the Compression. The body always
// carries an xxhash64 checksum of the encoded text, verified by Open.
package envelope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/shaders/toonpack/pkg/toonpack"
)

var (
	ErrUnknownFormat      = errors.New("envelope: unknown format")
	ErrUnknownCompression = errors.New("envelope: unknown compression")
	ErrChecksumMismatch   = errors.New("envelope: checksum mismatch")
	ErrEmpty              = errors.New("envelope: empty payload")
)

// Format selects the body serialization.
type Format byte

const (
	FormatJSON Format = iota + 1
	FormatCBOR
	FormatProto
)

var formatNames = map[Format]string{
	FormatJSON:  "json",
	FormatCBOR:  "cbor",
	FormatProto: "proto",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", byte(f))
}

// ParseFormat maps a name such as "cbor" to its Format.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Compression selects how the body is compressed.
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

var compressionNames = map[Compression]string{
	CompressionNone: "none",
	CompressionZstd: "zstd",
	CompressionLZ4:  "lz4",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("compression(%d)", byte(c))
}

// ParseCompression maps a name such as "zstd" to its Compression. The empty
// string means CompressionNone.
func ParseCompression(name string) (Compression, error) {
	if name == "" {
		return CompressionNone, nil
	}
	for c, n := range compressionNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// Envelope seals results with a fixed format and compression.
type Envelope struct {
	Format      Format
	Compression Compression
}

// Default seals as uncompressed JSON.
func Default() Envelope {
	return Envelope{Format: FormatJSON, Compression: CompressionNone}
}

// body is the serialized form shared by every format.
type body struct {
	EncodedText             *string            `json:"encodedText,omitempty" cbor:"1,keyasint,omitempty"`
	KeyShortForms           *map[string]string `json:"keyShortForms,omitempty" cbor:"2,keyasint,omitempty"`
	ReplaceLongStringsTable *map[string]string `json:"replaceLongStringsTable,omitempty" cbor:"3,keyasint,omitempty"`
	Checksum                uint64             `json:"checksum,omitempty,string" cbor:"4,keyasint,omitempty"`
}

func newBody(r toonpack.Result) body {
	b := body{EncodedText: r.EncodedText}
	if r.KeyShortForms != nil {
		b.KeyShortForms = &r.KeyShortForms
	}
	if r.ReplaceLongStringsTable != nil {
		b.ReplaceLongStringsTable = &r.ReplaceLongStringsTable
	}
	if r.EncodedText != nil {
		b.Checksum = xxhash.Sum64String(*r.EncodedText)
	}
	return b
}

func (b body) result() (toonpack.Result, error) {
	r := toonpack.Result{EncodedText: b.EncodedText}
	if b.KeyShortForms != nil {
		r.KeyShortForms = *b.KeyShortForms
	}
	if b.ReplaceLongStringsTable != nil {
		r.ReplaceLongStringsTable = *b.ReplaceLongStringsTable
	}
	if b.EncodedText != nil && xxhash.Sum64String(*b.EncodedText) != b.Checksum {
		return toonpack.Result{}, ErrChecksumMismatch
	}
	return r, nil
}

// Seal serializes r.
func (e Envelope) Seal(r toonpack.Result) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	b := newBody(r)
	switch e.Format {
	case FormatJSON:
		data, err = marshalJSON(b)
	case FormatCBOR:
		data, err = marshalCBOR(b)
	case FormatProto:
		data, err = marshalProto(b)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, e.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("envelope: marshal %v: %w", e.Format, err)
	}
	data, err = compress(e.Compression, data)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(e.Format)<<4 | byte(e.Compression)}, data...), nil
}

// Open reverses Seal. The payload header decides format and compression.
func Open(payload []byte) (toonpack.Result, error) {
	if len(payload) == 0 {
		return toonpack.Result{}, ErrEmpty
	}
	format := Format(payload[0] >> 4)
	data, err := decompress(Compression(payload[0]&0x0f), payload[1:])
	if err != nil {
		return toonpack.Result{}, err
	}
	var b body
	switch format {
	case FormatJSON:
		err = unmarshalJSON(data, &b)
	case FormatCBOR:
		err = unmarshalCBOR(data, &b)
	case FormatProto:
		err = unmarshalProto(data, &b)
	default:
		return toonpack.Result{}, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return toonpack.Result{}, fmt.Errorf("envelope: unmarshal %v: %w", format, err)
	}
	return b.result()
}
