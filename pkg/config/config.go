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

// Package config loads toonpack settings from YAML.
//
// The file is named by the --config flag or, failing that, the
// TOONPACK_CONFIG environment variable. Without either, Default applies.
// Fields missing from the file keep their default values.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shaders/toonpack/pkg/envelope"
	"github.com/shaders/toonpack/pkg/graph"
	"github.com/shaders/toonpack/pkg/toonpack"
)

// EnvVar names the config file when no path is given.
const EnvVar = "TOONPACK_CONFIG"

// Config is the top-level configuration.
type Config struct {
	Encode   EncodeConfig   `yaml:"encode"`
	Envelope EnvelopeConfig `yaml:"envelope"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// EncodeConfig mirrors toonpack.Options.
type EncodeConfig struct {
	AllowShortForms       bool `yaml:"allow_short_forms"`
	AllowCleaning         bool `yaml:"allow_cleaning"`
	ReplaceLongStrings    bool `yaml:"replace_long_strings"`
	LongStringThreshold   int  `yaml:"long_string_threshold"`
	EscapeTokenLookalikes bool `yaml:"escape_token_lookalikes"`
	MaxDepth              int  `yaml:"max_depth"`
}

// EnvelopeConfig selects how results are sealed.
type EnvelopeConfig struct {
	// Format is json, cbor or proto.
	Format string `yaml:"format"`
	// Compression is none, zstd or lz4.
	Compression string `yaml:"compression"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Encode: EncodeConfig{
			AllowShortForms:       true,
			AllowCleaning:         true,
			ReplaceLongStrings:    true,
			LongStringThreshold:   toonpack.DefaultLongStringThreshold,
			EscapeTokenLookalikes: true,
			MaxDepth:              graph.DefaultMaxDepth,
		},
		Envelope: EnvelopeConfig{
			Format:      "json",
			Compression: "none",
		},
		LogLevel: "info",
	}
}

// Load reads the file at path over the defaults. An empty path falls back to
// $TOONPACK_CONFIG, and to Default when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads YAML from r over the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// Validate checks every field.
func (c *Config) Validate() error {
	var errs []error
	if c.Encode.ReplaceLongStrings && c.Encode.LongStringThreshold < 1 {
		errs = append(errs, fmt.Errorf("encode.long_string_threshold must be at least 1, got %d", c.Encode.LongStringThreshold))
	}
	if _, err := envelope.ParseFormat(c.Envelope.Format); err != nil {
		errs = append(errs, fmt.Errorf("envelope.format: %w", err))
	}
	if _, err := envelope.ParseCompression(c.Envelope.Compression); err != nil {
		errs = append(errs, fmt.Errorf("envelope.compression: %w", err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// EncodeOptions converts the encode section into toonpack options.
func (c *Config) EncodeOptions() []toonpack.Option {
	e := c.Encode
	return []toonpack.Option{
		toonpack.WithShortForms(e.AllowShortForms),
		toonpack.WithCleaning(e.AllowCleaning),
		toonpack.WithLongStrings(e.ReplaceLongStrings),
		toonpack.WithThreshold(e.LongStringThreshold),
		toonpack.WithTokenEscaping(e.EscapeTokenLookalikes),
		toonpack.WithMaxDepth(e.MaxDepth),
	}
}

// Sealer returns the configured envelope.
func (c *Config) Sealer() (envelope.Envelope, error) {
	f, err := envelope.ParseFormat(c.Envelope.Format)
	if err != nil {
		return envelope.Envelope{}, err
	}
	comp, err := envelope.ParseCompression(c.Envelope.Compression)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return envelope.Envelope{Format: f, Compression: comp}, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
