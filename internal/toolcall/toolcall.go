// Package toolcall is the tool-invocation capability: it calls a named tool
// on a named MCP server and hands back the loosely structured text response.
//
// Callers depend on the Caller interface. Hub is the production
// implementation; tests substitute their own Caller or attach in-process
// servers to a Hub.
package toolcall

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Caller invokes a tool on a named server.
type Caller interface {
	UseTool(ctx context.Context, server, tool string, args map[string]any) (*Response, error)
}

// Inspector lists the tools a server advertises. Hub implements it.
type Inspector interface {
	ListTools(ctx context.Context, server string) ([]mcp.Tool, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, server, tool string, args map[string]any) (*Response, error)

// UseTool implements Caller.
func (f CallerFunc) UseTool(ctx context.Context, server, tool string, args map[string]any) (*Response, error) {
	return f(ctx, server, tool, args)
}

// Content is one entry of a tool response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is a tool result. Only the text of content entries and the error
// flag are kept; nothing else from the wire result is consulted.
type Response struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text returns the first text entry and whether one exists.
func (r *Response) Text() (string, bool) {
	if r == nil {
		return "", false
	}
	for _, c := range r.Content {
		if c.Type == mcp.ContentTypeText {
			return c.Text, true
		}
	}
	return "", false
}

// fromResult converts an mcp-go result. Non-text content keeps its type
// with empty text so positions are preserved.
func fromResult(res *mcp.CallToolResult) *Response {
	out := &Response{IsError: res.IsError}
	for _, c := range res.Content {
		switch v := c.(type) {
		case mcp.TextContent:
			out.Content = append(out.Content, Content{Type: v.Type, Text: v.Text})
		case mcp.ImageContent:
			out.Content = append(out.Content, Content{Type: v.Type})
		case mcp.AudioContent:
			out.Content = append(out.Content, Content{Type: v.Type})
		case mcp.EmbeddedResource:
			out.Content = append(out.Content, Content{Type: v.Type})
		case mcp.ResourceLink:
			out.Content = append(out.Content, Content{Type: v.Type})
		default:
			out.Content = append(out.Content, Content{Type: "unknown"})
		}
	}
	return out
}
