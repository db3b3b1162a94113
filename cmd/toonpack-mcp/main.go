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

// Command toonpack-mcp serves the toonpack tools over MCP, on stdio by
// default or over streamable HTTP with --http.
package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/shaders/toonpack/pkg/config"
	"github.com/shaders/toonpack/pkg/mcptools"
)

var version = "dev"

func main() {
	var (
		configPath string
		httpAddr   string
	)
	pflag.StringVar(&configPath, "config", "", "YAML config file (default $"+config.EnvVar+")")
	pflag.StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	pflag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	// stdout belongs to the stdio transport.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s := server.NewMCPServer("toonpack", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	mcptools.Register(s, mcptools.NewHandlers(cfg, logger))

	if httpAddr == "" {
		if err := server.ServeStdio(s); err != nil {
			logger.Error("stdio server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	http.Handle("/mcp", server.NewStreamableHTTPServer(s))
	logger.Info("MCP server listening", "addr", httpAddr, "path", "/mcp")
	if err := http.ListenAndServe(httpAddr, nil); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}
