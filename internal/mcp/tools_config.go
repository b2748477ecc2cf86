// tools_config.go implements MCP tools for configuration management.
//
// Design: tools edit the same *config.Config the extensions read, so a
// change made here applies to the next post without a restart.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/socialposts/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles socialposts_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.ctx.Config()

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles socialposts_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}

	// An empty server name is a valid setting, so only absence is rejected.
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	cfg := h.ctx.Config()
	if err := cfg.Set(key, value); err != nil {
		log.Event("mcp:config_set", "set").Detail("key", key).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()

	log.Event("mcp:config_set", "set").Detail("key", key).Detail("scope", cfg.Scope().String()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s = %s (%s)", key, value, cfg.Scope())), nil
}
