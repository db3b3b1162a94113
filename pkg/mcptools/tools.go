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

// Package mcptools exposes toonpack encode and decode as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/shaders/toonpack/pkg/config"
	"github.com/shaders/toonpack/pkg/toonpack"
)

const (
	EncodeToolName = "toon_encode"
	DecodeToolName = "toon_decode"
)

// Handlers serves the toonpack tools. Config values are the defaults for
// arguments the caller leaves out.
type Handlers struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers returns handlers backed by cfg. A nil logger discards output.
func NewHandlers(cfg *config.Config, logger *slog.Logger) *Handlers {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{cfg: cfg, logger: logger}
}

// Register adds both tools to s.
func Register(s *server.MCPServer, h *Handlers) {
	s.AddTool(EncodeTool(), h.Encode)
	s.AddTool(DecodeTool(), h.Decode)
}

func EncodeTool() mcp.Tool {
	return mcp.NewTool(EncodeToolName,
		mcp.WithDescription("Shrink a JSON document and encode it as TOON. Returns encodedText plus the keyShortForms and replaceLongStringsTable needed to decode it."),
		mcp.WithString("json",
			mcp.Required(),
			mcp.Description("JSON document to encode. Comments and trailing commas are accepted."),
		),
		mcp.WithBoolean("allow_short_forms",
			mcp.Description("Rename keys to their shortest unique prefixes."),
		),
		mcp.WithBoolean("allow_cleaning",
			mcp.Description("Drop null and empty members. Not reversible."),
		),
		mcp.WithBoolean("replace_long_strings",
			mcp.Description("Replace long strings with @S<n> placeholders."),
		),
		mcp.WithNumber("long_string_threshold",
			mcp.Description("Minimum length, in characters, of a replaced string."),
		),
	)
}

func DecodeTool() mcp.Tool {
	return mcp.NewTool(DecodeToolName,
		mcp.WithDescription("Decode the result of toon_encode back into JSON."),
		mcp.WithString("result",
			mcp.Required(),
			mcp.Description("JSON object with encodedText and optional keyShortForms and replaceLongStringsTable."),
		),
	)
}

func (h *Handlers) Encode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	e := h.cfg.Encode
	opts := append(h.cfg.EncodeOptions(),
		toonpack.WithShortForms(req.GetBool("allow_short_forms", e.AllowShortForms)),
		toonpack.WithCleaning(req.GetBool("allow_cleaning", e.AllowCleaning)),
		toonpack.WithLongStrings(req.GetBool("replace_long_strings", e.ReplaceLongStrings)),
		toonpack.WithThreshold(req.GetInt("long_string_threshold", e.LongStringThreshold)),
		toonpack.WithLogger(h.logger),
	)

	res, err := toonpack.EncodeJSON([]byte(doc), opts...)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encode failed", err), nil
	}
	out, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "encoded document", "input_bytes", len(doc), "output_bytes", len(res.Text()))
	return mcp.NewToolResultText(string(out)), nil
}

func (h *Handlers) Decode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("result")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var res toonpack.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return mcp.NewToolResultErrorFromErr("result is not valid JSON", err), nil
	}
	out, err := toonpack.DecodeJSON(res)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("decode failed", err), nil
	}
	h.logger.InfoContext(ctx, "decoded document", "output_bytes", len(out))
	return mcp.NewToolResultText(string(out)), nil
}
