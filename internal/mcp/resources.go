// resources.go implements MCP resource handlers.
//
// Resources give clients read-only context without a tool call: the current
// settings and the recent post history from the audit log.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jpl-au/socialposts/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	SettingsURI = "socialposts://settings"
	HistoryURI  = "socialposts://history"
)

// historyLimit bounds the history resource.
const historyLimit = 50

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcp.NewResource(SettingsURI, "Settings",
			mcp.WithResourceDescription("Current socialposts configuration"),
			mcp.WithMIMEType("application/json"),
		),
		h.readSettings,
	)

	s.AddResource(
		mcp.NewResource(HistoryURI, "Post history",
			mcp.WithResourceDescription("Recent LinkedIn post attempts, newest first"),
			mcp.WithMIMEType("application/json"),
		),
		h.readHistory,
	)
}

// readSettings handles socialposts://settings resource requests.
func (h *handlers) readSettings(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cfg := h.ctx.Config()
	return jsonContents(req.Params.URI, map[string]any{
		"scope":    cfg.Scope().String(),
		"path":     cfg.Path(),
		"settings": cfg.All(),
		"servers":  cfg.ServerNames(),
	})
}

// readHistory handles socialposts://history resource requests.
func (h *handlers) readHistory(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := log.Recent(historyLimit, "social:")
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if records == nil {
		records = []log.Record{}
	}
	return jsonContents(req.Params.URI, records)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
