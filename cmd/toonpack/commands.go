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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/shaders/toonpack/pkg/config"
	"github.com/shaders/toonpack/pkg/envelope"
	"github.com/shaders/toonpack/pkg/tokens"
	"github.com/shaders/toonpack/pkg/toonpack"
)

// common holds the flags shared by every command.
type common struct {
	configPath string
	logLevel   string
}

func (c *common) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file (default $"+config.EnvVar+")")
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// load reads the config and builds a stderr logger from it.
func (c *common) load(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return errUsage
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

func encodeCommand(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		flags        common
		format       string
		compression  string
		noShortForms bool
		noClean      bool
		noIntern     bool
		threshold    int
		textOnly     bool
	)
	fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.register(fs)
	fs.StringVar(&format, "format", "", "envelope format: json, cbor, proto")
	fs.StringVar(&compression, "compression", "", "envelope compression: none, zstd, lz4")
	fs.BoolVar(&noShortForms, "no-short-forms", false, "keep original keys")
	fs.BoolVar(&noClean, "no-clean", false, "keep null and empty members")
	fs.BoolVar(&noIntern, "no-intern", false, "keep long strings inline")
	fs.IntVar(&threshold, "threshold", 0, "minimum length of an interned string")
	fs.BoolVar(&textOnly, "text", false, "write only the TOON text, without side tables")
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, logger, err := flags.load(stderr)
	if err != nil {
		return err
	}
	if format != "" {
		cfg.Envelope.Format = format
	}
	if compression != "" {
		cfg.Envelope.Compression = compression
	}
	if threshold != 0 {
		cfg.Encode.LongStringThreshold = threshold
	}
	cfg.Encode.AllowShortForms = cfg.Encode.AllowShortForms && !noShortForms
	cfg.Encode.AllowCleaning = cfg.Encode.AllowCleaning && !noClean
	cfg.Encode.ReplaceLongStrings = cfg.Encode.ReplaceLongStrings && !noIntern
	if err := cfg.Validate(); err != nil {
		return err
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	res, err := toonpack.EncodeJSON(input, append(cfg.EncodeOptions(), toonpack.WithLogger(logger))...)
	if err != nil {
		return err
	}
	if textOnly {
		_, err = io.WriteString(stdout, res.Text())
		return err
	}

	env, err := cfg.Sealer()
	if err != nil {
		return err
	}
	payload, err := env.Seal(res)
	if err != nil {
		return err
	}
	logger.Debug("sealed envelope", "format", env.Format, "compression", env.Compression, "bytes", len(payload))
	_, err = stdout.Write(payload)
	return err
}

func decodeCommand(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var flags common
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.register(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, _, err := flags.load(stderr); err != nil {
		return err
	}

	payload, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	res, err := envelope.Open(payload)
	if err != nil {
		return err
	}
	out, err := toonpack.DecodeJSON(res)
	if err != nil {
		return err
	}
	_, err = stdout.Write(append(out, '\n'))
	return err
}

func statsCommand(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		flags    common
		encoding string
		approx   bool
	)
	fs := pflag.NewFlagSet("stats", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.register(fs)
	fs.StringVar(&encoding, "encoding", tokens.DefaultEncoding, "tiktoken encoding used to count tokens")
	fs.BoolVar(&approx, "approx", false, "estimate tokens from byte length instead of tiktoken")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, logger, err := flags.load(stderr)
	if err != nil {
		return err
	}

	var counter tokens.Counter = tokens.Approx{}
	if !approx {
		tk, err := tokens.NewTiktoken(encoding)
		if err != nil {
			logger.Warn("falling back to approximate token counts", "error", err)
		} else {
			counter = tk
		}
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	res, err := toonpack.EncodeJSON(input, append(cfg.EncodeOptions(), toonpack.WithLogger(logger))...)
	if err != nil {
		return err
	}
	report, err := tokens.Measure(counter, jsonc.ToJSON(input), res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, report)
	return err
}
