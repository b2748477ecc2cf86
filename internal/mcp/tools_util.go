// tools_util.go provides helper functions for MCP tool parameter extraction
// and result encoding.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter from the MCP request, returning def
// if the parameter is missing or not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// jsonResult serialises v as indented JSON in a text result. Marshal
// failures become error results rather than Go errors.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
