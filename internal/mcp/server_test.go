package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/notice"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pingExtension contributes one tool that reports the configured server.
type pingExtension struct{}

func (pingExtension) Name() string               { return "ping" }
func (pingExtension) Commands() []*cobra.Command { return nil }
func (pingExtension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("ping_server"),
		Handler: func(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("server=" + extCtx.Config().MCPServer()), nil
		},
	}}
}

func connect(t *testing.T) (*client.Client, *config.Config) {
	t.Helper()

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "config.yaml"), config.ScopeGlobal)
	require.NoError(t, err)

	extCtx := extension.NewContext(cfg, nil, &notice.Recorder{})
	c, err := client.NewInProcessClient(New(extCtx, []extension.Extension{pingExtension{}}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "test", Version: "dev"}
	_, err = c.Initialize(ctx, req)
	require.NoError(t, err)

	return c, cfg
}

func call(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestServer_ListTools(t *testing.T) {
	c, _ := connect(t)

	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"socialposts_config_get",
		"socialposts_config_set",
		"socialposts_guide",
		"ping_server",
	}, names)
}

func TestServer_ConfigRoundTrip(t *testing.T) {
	c, cfg := connect(t)

	res := call(t, c, "socialposts_config_set", map[string]any{"key": config.KeyMCPServer, "value": "work-linkedin"})
	assert.False(t, res.IsError, text(t, res))
	assert.Equal(t, "work-linkedin", cfg.MCPServer())

	res = call(t, c, "socialposts_config_get", map[string]any{"key": config.KeyMCPServer})
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"work-linkedin"`)

	// Extension tools see the change without a restart.
	res = call(t, c, "ping_server", nil)
	assert.Equal(t, "server=work-linkedin", text(t, res))

	reloaded, err := config.LoadFile(cfg.Path(), config.ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, "work-linkedin", reloaded.MCPServer())
}

func TestServer_ConfigErrors(t *testing.T) {
	c, _ := connect(t)

	res := call(t, c, "socialposts_config_set", map[string]any{"key": "nope", "value": "x"})
	assert.True(t, res.IsError)

	res = call(t, c, "socialposts_config_set", map[string]any{"key": config.KeyMCPServer})
	assert.True(t, res.IsError)
	assert.Equal(t, "value is required", text(t, res))

	res = call(t, c, "socialposts_config_get", map[string]any{"key": "nope"})
	assert.True(t, res.IsError)
}

func TestServer_Guide(t *testing.T) {
	c, _ := connect(t)

	res := call(t, c, "socialposts_guide", nil)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "socialposts")

	res = call(t, c, "socialposts_guide", map[string]any{"topic": "no-such-topic"})
	assert.Contains(t, text(t, res), "available_topics")
}

func TestServer_SettingsResource(t *testing.T) {
	c, _ := connect(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = SettingsURI
	res, err := c.ReadResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	tc, ok := res.Contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, tc.Text, `"social.mcp_server": "linkedin"`)
	assert.Contains(t, tc.Text, `"scope": "global"`)
}
