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

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/shaders/toonpack/pkg/config"
	"github.com/shaders/toonpack/pkg/envelope"
	"github.com/shaders/toonpack/pkg/toonpack"
)

func TestDefault(t *testing.T) {
	g := NewWithT(t)

	cfg := config.Default()
	g.Expect(cfg.Validate()).To(Succeed())

	opts := toonpack.DefaultOptions()
	for _, opt := range cfg.EncodeOptions() {
		opt(&opts)
	}
	g.Expect(opts).To(Equal(toonpack.DefaultOptions()))

	env, err := cfg.Sealer()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(env).To(Equal(envelope.Default()))
}

func TestParse(t *testing.T) {
	g := NewWithT(t)

	cfg, err := config.Parse(strings.NewReader(`
encode:
  allow_cleaning: false
  long_string_threshold: 80
envelope:
  format: cbor
  compression: zstd
log_level: debug
`))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Encode.AllowCleaning).To(BeFalse())
	g.Expect(cfg.Encode.AllowShortForms).To(BeTrue())
	g.Expect(cfg.Encode.LongStringThreshold).To(Equal(80))

	env, err := cfg.Sealer()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(env).To(Equal(envelope.Envelope{Format: envelope.FormatCBOR, Compression: envelope.CompressionZstd}))

	level, err := cfg.Level()
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(level).To(Equal(slog.LevelDebug))
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "encode:\n  shorten: true\n", "shorten"},
		{"bad threshold", "encode:\n  long_string_threshold: 0\n", "long_string_threshold"},
		{"bad format", "envelope:\n  format: xml\n", "envelope.format"},
		{"bad compression", "envelope:\n  compression: brotli\n", "envelope.compression"},
		{"bad level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			_, err := config.Parse(strings.NewReader(tt.yaml))
			g.Expect(err).To(MatchError(ContainSubstring(tt.want)))
		})
	}
}

func TestParseEmpty(t *testing.T) {
	g := NewWithT(t)

	cfg, err := config.Parse(strings.NewReader(""))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg).To(Equal(config.Default()))
}

func TestLoad(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "toonpack.yaml")
	g.Expect(os.WriteFile(path, []byte("envelope:\n  format: proto\n"), 0o600)).To(Succeed())

	cfg, err := config.Load(path)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Envelope.Format).To(Equal("proto"))

	t.Setenv(config.EnvVar, path)
	cfg, err = config.Load("")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Envelope.Format).To(Equal("proto"))

	t.Setenv(config.EnvVar, "")
	cfg, err = config.Load("")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg).To(Equal(config.Default()))

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	g.Expect(err).To(HaveOccurred())
}
