// mcp.go exposes the post handler as an MCP tool, so an assistant connected
// to "socialposts serve" can post a note it has drafted.

package social

import (
	"context"

	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/post"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolPost is the MCP tool name.
const ToolPost = "social_post_to_linkedin"

func postTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool(ToolPost,
			mcp.WithDescription("Post text to LinkedIn with PUBLIC visibility through the configured MCP server"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Post body, sent verbatim")),
		),
		Handler: handlePost,
	}
}

func handlePost(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil //nolint:nilerr
	}

	res := poster(extCtx, SourceMCP).Post(ctx, text)
	if !res.OK {
		return mcp.NewToolResultError(post.FailurePrefix + res.Message), nil
	}

	msg := post.SuccessMessage
	if res.Reply != "" {
		msg += "\n" + res.Reply
	}
	return mcp.NewToolResultText(msg), nil
}
