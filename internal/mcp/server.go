// Package mcp implements the Model Context Protocol server, exposing
// socialposts to LLMs. An assistant connected over stdio can post a note it
// has drafted, read and change settings, and read the recent post history.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/jpl-au/socialposts/internal/notice"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling LLM integration.
//
// Design: notices from extension handlers go to the slog logger on stderr,
// since stdout carries JSON-RPC. The tool result is what the client sees.
func Serve(base extension.Context, exts []extension.Extension) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	extCtx := extension.NewContext(base.Config(), base.Tools(), notice.NewSlog(logger))
	s := New(extCtx, exts)

	slog.Info("socialposts MCP server ready", "version", Version, "transport", "stdio", "mcp_server", extCtx.Config().MCPServer())

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// New builds the server: extension tools, config and guide tools, and the
// settings and history resources.
func New(extCtx extension.Context, exts []extension.Extension) *server.MCPServer {
	s := server.NewMCPServer(
		"socialposts",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	h := &handlers{ctx: extCtx}
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, extCtx, exts)
	return s
}

// handlers provides MCP request handlers with access to host services.
type handlers struct {
	ctx extension.Context
}

// registerTools exposes the host's own operations.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("socialposts_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (social.mcp_server, limits.max_content) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("socialposts_config_set",
			mcp.WithDescription("Set a configuration value. Takes effect on the next post."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (social.mcp_server, limits.max_content)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("socialposts_guide",
			mcp.WithDescription("Get help/guide content for socialposts commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'post-to-linkedin', 'servers') or empty for index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools binds each extension tool's handler to extCtx and
// logs every invocation under "mcp:{tool}".
func registerExtensionTools(s *server.MCPServer, extCtx extension.Context, exts []extension.Extension) {
	for _, ext := range exts {
		for _, t := range ext.MCPTools() {
			handler := t.Handler
			name := t.Tool.Name
			s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				res, err := handler(ctx, extCtx, req)
				if err == nil && res != nil && res.IsError {
					err = errors.New("tool returned an error result")
				}
				log.Event("mcp:"+name, "call").Tool(name).Detail("extension", ext.Name()).Write(err)
				return res, err
			})
		}
	}
}
