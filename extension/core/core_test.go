package core

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/jpl-au/socialposts/internal/notice"
	"github.com/jpl-au/socialposts/internal/post"
	"github.com/jpl-au/socialposts/internal/toolcall"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ext  *Extension
	cfg  *config.Config
	hub  *toolcall.Hub
	out  *bytes.Buffer
	home string
	wd   string
}

// setup isolates HOME and the working directory, loads config the way the
// host does, and activates the core extension.
func setup(t *testing.T) *fixture {
	t.Helper()

	home := t.TempDir()
	wd := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)

	cfg, err := config.Load()
	require.NoError(t, err)

	hub := toolcall.NewHub(cfg, "socialposts-test", "dev")
	t.Cleanup(func() { _ = hub.Close() })

	ext := &Extension{}
	require.NoError(t, ext.Activate(extension.NewContext(cfg, hub, &notice.Recorder{})))

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetOutput("")
	t.Cleanup(func() {
		cmd.SetOut(os.Stdout)
		cmd.SetIn(os.Stdin)
		cmd.SetOutput("")
	})

	return &fixture{ext: ext, cfg: cfg, hub: hub, out: &buf, home: home, wd: wd}
}

// exec runs the core command named by args[0] with the remaining args.
func (f *fixture) exec(t *testing.T, args ...string) error {
	t.Helper()
	for _, c := range f.ext.Commands() {
		if c.Name() == args[0] {
			c.SetArgs(args[1:])
			c.SilenceErrors = true
			c.SilenceUsage = true
			return c.Execute()
		}
	}
	t.Fatalf("no command %s", args[0])
	return nil
}

func (f *fixture) run(t *testing.T, args ...string) string {
	t.Helper()
	f.out.Reset()
	require.NoError(t, f.exec(t, args...))
	return f.out.String()
}

func linkedinServer(schema ...mcp.ToolOption) *server.MCPServer {
	s := server.NewMCPServer("linkedin", "1.0.0", server.WithToolCapabilities(true))
	s.AddTool(mcp.NewTool("whoami"), func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("me"), nil
	})
	if schema != nil {
		s.AddTool(mcp.NewTool(post.ToolName, schema...), func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("posted"), nil
		})
	}
	return s
}

func TestInit(t *testing.T) {
	f := setup(t)

	out := f.run(t, "init")
	assert.Contains(t, out, "Initialised socialposts config")

	local := filepath.Join(f.wd, config.Dir, "config.yaml")
	cfg, err := config.LoadFile(local, config.ScopeLocal)
	require.NoError(t, err)
	assert.True(t, cfg.IsSet(config.KeyMCPServer))
	assert.Equal(t, config.DefaultMCPServer, cfg.MCPServer())

	err = f.exec(t, "init")
	assert.ErrorIs(t, err, ErrAlreadyInitialised)

	f.run(t, "init", "--force")
}

func TestConfig_GetSet(t *testing.T) {
	f := setup(t)

	assert.Equal(t, "linkedin\n", f.run(t, "config", config.KeyMCPServer))

	out := f.run(t, "config", config.KeyMCPServer, "work")
	assert.Equal(t, "social.mcp_server = work (global)\n", out)
	assert.Equal(t, "work", f.cfg.MCPServer())

	reloaded, err := config.LoadScope(config.ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, "work", reloaded.MCPServer())

	out = f.run(t, "config")
	assert.Contains(t, out, "social.mcp_server: work\n")
	assert.Contains(t, out, "limits.max_content: 104857600\n")
}

func TestConfig_Local(t *testing.T) {
	f := setup(t)

	f.run(t, "config", config.KeyMCPServer, "folder", "--local")

	local, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, "folder", local.MCPServer())
	assert.Equal(t, "linkedin", f.cfg.MCPServer(), "global config untouched")
}

func TestConfig_Errors(t *testing.T) {
	f := setup(t)

	assert.ErrorIs(t, f.exec(t, "config", "nope"), config.ErrUnknownKey)
	assert.ErrorIs(t, f.exec(t, "config", config.KeyMaxContent, "0"), config.ErrInvalidValue)
}

func TestConfig_JSONError(t *testing.T) {
	f := setup(t)
	cmd.SetOutput("json")

	require.NoError(t, f.exec(t, "config", "nope"))
	var got map[string]string
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got))
	assert.Contains(t, got["error"], "unknown")
}

func TestServers_AddListRemove(t *testing.T) {
	f := setup(t)

	out := f.run(t, "servers", "add", "linkedin",
		"--command", "npx", "--arg", "-y", "--arg", "linkedin-mcp",
		"--env", "TOKEN=a=b", "--envfile", "~/.linkedin.env")
	assert.Contains(t, out, "Added linkedin (stdio: npx -y linkedin-mcp)")

	f.run(t, "servers", "add", "remote", "--url", "https://mcp.example.com/mcp", "--header", "Authorization=Bearer x")

	reloaded, err := config.LoadScope(config.ScopeGlobal)
	require.NoError(t, err)
	s, err := reloaded.Server("linkedin")
	require.NoError(t, err)
	assert.Equal(t, []string{"-y", "linkedin-mcp"}, s.Args)
	assert.Equal(t, map[string]string{"TOKEN": "a=b"}, s.Env)
	assert.Equal(t, "~/.linkedin.env", s.EnvFile)
	r, err := reloaded.Server("remote")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Authorization": "Bearer x"}, r.Headers)

	out = f.run(t, "servers", "ls")
	assert.Contains(t, out, "* linkedin")
	assert.Contains(t, out, "https://mcp.example.com/mcp")

	f.run(t, "servers", "rm", "remote")
	assert.Equal(t, []string{"linkedin"}, f.cfg.ServerNames())

	assert.ErrorIs(t, f.exec(t, "servers", "rm", "remote"), config.ErrUnknownServer)
}

func TestServers_AddInvalid(t *testing.T) {
	f := setup(t)

	assert.Error(t, f.exec(t, "servers", "add", "x"), "one of --command or --url is required")
	assert.Error(t, f.exec(t, "servers", "add", "x", "--command", "a", "--url", "https://b"))
	assert.ErrorIs(t, f.exec(t, "servers", "add", "x", "--url", "ftp://b"), config.ErrInvalidValue)
	assert.ErrorIs(t, f.exec(t, "servers", "add", "x", "--command", "a", "--env", "NOVALUE"), config.ErrInvalidValue)
	assert.Empty(t, f.cfg.ServerNames())
}

func TestServers_Import(t *testing.T) {
	f := setup(t)
	cmd.SetIn(strings.NewReader(`{"mcpServers": {
		"linkedin": {"command": "linkedin-mcp", "env": {"TOKEN": "t"}},
		"remote": {"url": "https://mcp.example.com/mcp"}
	}}`))

	out := f.run(t, "servers", "import")
	assert.Equal(t, "Imported linkedin\nImported remote\n", out)
	assert.Equal(t, []string{"linkedin", "remote"}, f.cfg.ServerNames())

	cmd.SetIn(strings.NewReader(`{"mcpServers": {}}`))
	assert.ErrorIs(t, f.exec(t, "servers", "import"), config.ErrInvalidValue)
}

func TestServers_Check(t *testing.T) {
	f := setup(t)
	f.hub.Attach("good", linkedinServer(
		mcp.WithString("text", mcp.Required()),
		mcp.WithString("visibility", mcp.Required(), mcp.Enum("PUBLIC", "CONNECTIONS")),
	))
	f.hub.Attach("private-only", linkedinServer(
		mcp.WithString("text", mcp.Required()),
		mcp.WithString("visibility", mcp.Enum("CONNECTIONS")),
	))
	f.hub.Attach("no-post", linkedinServer())

	out := f.run(t, "servers", "check", "good")
	assert.Equal(t, "good: ok (2 tools, post_to_linkedin accepts the post payload)\n", out)

	assert.ErrorIs(t, f.exec(t, "servers", "check", "private-only"), toolcall.ErrSchemaMismatch)

	err := f.exec(t, "servers", "check", "no-post")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not offer post_to_linkedin")

	err = f.exec(t, "servers", "check")
	assert.ErrorIs(t, err, config.ErrUnknownServer, "defaults to the settings server")
}

func TestServers_CheckJSON(t *testing.T) {
	f := setup(t)
	f.hub.Attach("no-post", linkedinServer())
	cmd.SetOutput("json")

	f.out.Reset()
	require.Error(t, f.exec(t, "servers", "check", "no-post"))

	var got CheckResult
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got))
	assert.Equal(t, "no-post", got.Server)
	assert.False(t, got.OK)
	assert.Equal(t, []string{"whoami"}, got.Tools)
}

func TestHistoryAndVacuum(t *testing.T) {
	f := setup(t)
	require.NoError(t, log.Open())
	t.Cleanup(log.Close)

	assert.Equal(t, "No post attempts recorded\n", f.run(t, "history"))

	log.Event("social:share", "post").Server("linkedin").Write(nil)
	log.Event("social:post-to-linkedin", "post").Server("linkedin").Write(&post.Error{Kind: post.KindTool, Message: "quota"})

	out := f.run(t, "history")
	assert.Contains(t, out, "social:share")
	assert.Contains(t, out, "post failed (tool): quota")

	out = f.run(t, "vacuum", "--older-than", "1d", "--dry-run")
	assert.Equal(t, "Would delete 0 entries\n", out)

	cmd.SetIn(strings.NewReader("n\n"))
	out = f.run(t, "vacuum", "--older-than", "1d")
	assert.Contains(t, out, "Cancelled")

	assert.Error(t, f.exec(t, "vacuum", "--older-than", "soon", "--force"))
}

func TestGuideAndVersion(t *testing.T) {
	f := setup(t)

	assert.Contains(t, f.run(t, "guide"), "# socialposts")
	assert.Contains(t, f.run(t, "guide", "servers"), "mcpServers")
	assert.Contains(t, f.run(t, "llm"), "Confirm with the user before posting")

	err := f.exec(t, "guide", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available:")

	assert.Contains(t, f.run(t, "version"), "Build Tag:")
}

func TestCommands(t *testing.T) {
	var names []string
	for _, c := range (&Extension{}).Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"init", "config", "servers", "history", "vacuum", "serve", "guide", "llm", "version"}, names)
}
