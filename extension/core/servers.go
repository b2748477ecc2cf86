// servers.go implements the "socialposts servers" command group: the MCP
// server definitions that a server name in settings resolves to.
//
// Design: definitions live in the same YAML file as the rest of the config,
// under "servers". import accepts the {"mcpServers": {...}} document desktop
// assistants use, so a working setup can be pasted in unchanged.

package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/format"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/jpl-au/socialposts/internal/post"
	"github.com/jpl-au/socialposts/internal/progress"
	"github.com/jpl-au/socialposts/internal/toolcall"
	"github.com/spf13/cobra"
)

// ErrNoInspector is returned by check when the host cannot list tools.
var ErrNoInspector = errors.New("tool listing not available")

func (e *Extension) newServersCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "servers",
		Short: "Manage MCP server definitions",
		Long: `Manage the MCP servers socialposts can post through.

  socialposts servers ls
  socialposts servers add linkedin --command linkedin-mcp --envfile ~/.linkedin.env
  socialposts servers add linkedin --url https://mcp.example.com/mcp --header "Authorization=Bearer x"
  socialposts servers import mcp.json
  socialposts servers check
  socialposts servers rm linkedin`,
	}
	c.AddCommand(
		e.newServersLsCmd(),
		e.newServersAddCmd(),
		e.newServersRmCmd(),
		e.newServersImportCmd(),
		e.newServersCheckCmd(),
	)
	return c
}

func (e *Extension) newServersLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List server definitions",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := e.writableConfig(c)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
			}
			log.Event("core:servers", "list").Detail("count", len(cfg.Servers)).Write(nil)

			if cmd.JSON() {
				servers := cfg.Servers
				if servers == nil {
					servers = map[string]config.Server{}
				}
				return cmd.PrintJSON(map[string]any{"current": cfg.MCPServer(), "servers": servers})
			}
			return format.Servers(cmd.Out(), cfg)
		},
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.socialposts/config.yaml)")
	return c
}

func (e *Extension) newServersAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a server definition",
		Long: `Add or replace a server definition. Give either --command (stdio) or
--url (streamable HTTP).

  socialposts servers add linkedin --command npx --arg -y --arg linkedin-mcp --env TOKEN=...
  socialposts servers add linkedin --command linkedin-mcp --envfile ~/.linkedin.env
  socialposts servers add remote --url https://mcp.example.com/mcp --header "Authorization=Bearer ..."`,
		Args: cobra.ExactArgs(1),
		RunE: e.runServersAdd,
	}
	c.Flags().String(extension.FlagCommand, "", "Executable for a stdio server")
	c.Flags().StringArray(extension.FlagArg, nil, "Argument for --command (repeatable)")
	c.Flags().StringArray(extension.FlagEnv, nil, "KEY=value environment entry (repeatable)")
	c.Flags().String(extension.FlagEnvFile, "", "File of KEY=value lines for the server environment")
	c.Flags().String(extension.FlagURL, "", "Streamable HTTP endpoint")
	c.Flags().StringArray(extension.FlagHeader, nil, "Key=value HTTP header (repeatable)")
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.socialposts/config.yaml)")
	c.MarkFlagsMutuallyExclusive(extension.FlagCommand, extension.FlagURL)
	c.MarkFlagsOneRequired(extension.FlagCommand, extension.FlagURL)
	return c
}

func (e *Extension) runServersAdd(c *cobra.Command, args []string) error {
	name := args[0]

	var s config.Server
	s.Command, _ = c.Flags().GetString(extension.FlagCommand)
	s.Args, _ = c.Flags().GetStringArray(extension.FlagArg)
	s.EnvFile, _ = c.Flags().GetString(extension.FlagEnvFile)
	s.URL, _ = c.Flags().GetString(extension.FlagURL)

	env, _ := c.Flags().GetStringArray(extension.FlagEnv)
	headers, _ := c.Flags().GetStringArray(extension.FlagHeader)
	var err error
	if s.Env, err = parsePairs(env); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("--%s: %w", extension.FlagEnv, err))
	}
	if s.Headers, err = parsePairs(headers); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("--%s: %w", extension.FlagHeader, err))
	}

	cfg, err := e.writableConfig(c)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}
	if err := cfg.AddServer(name, s); err != nil {
		log.Event("core:servers", "add").Server(name).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("servers add %q: %w", name, err))
	}

	err = cfg.Save()
	log.Event("core:servers", "add").Server(name).Detail("transport", s.Transport()).Detail("scope", cfg.Scope().String()).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config save: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"name": name, "server": s, "scope": cfg.Scope().String()})
	}
	fmt.Fprintf(cmd.Out(), "Added %s (%s: %s) to %s config\n", name, s.Transport(), format.Target(s), cfg.Scope())
	return nil
}

// parsePairs turns repeated "KEY=value" flags into a map. Values may
// contain "=".
func parsePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q is not KEY=value", config.ErrInvalidValue, p)
		}
		out[k] = v
	}
	return out, nil
}

func (e *Extension) newServersRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a server definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := e.writableConfig(c)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
			}
			if err := cfg.RemoveServer(name); err != nil {
				log.Event("core:servers", "rm").Server(name).Write(err)
				return cmd.PrintJSONError(fmt.Errorf("servers rm: %w", err))
			}
			err = cfg.Save()
			log.Event("core:servers", "rm").Server(name).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("config save: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"removed": name})
			}
			fmt.Fprintf(cmd.Out(), "Removed %s\n", name)
			return nil
		},
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.socialposts/config.yaml)")
	return c
}

func (e *Extension) newServersImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import [file]",
		Short: "Import servers from an mcpServers JSON document",
		Long: `Import server definitions from a {"mcpServers": {...}} JSON document, the
format desktop assistants use. Reads stdin when no file is given or file is "-".
Existing definitions with the same name are replaced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runServersImport,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.socialposts/config.yaml)")
	return c
}

func (e *Extension) runServersImport(c *cobra.Command, args []string) error {
	src := "-"
	if len(args) > 0 {
		src = args[0]
	}

	var data []byte
	var err error
	if src == "-" {
		data, err = io.ReadAll(cmd.In())
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("servers import: %w", err))
	}

	servers, err := config.ParseMCPServers(data)
	if err != nil {
		log.Event("core:servers", "import").Write(err)
		return cmd.PrintJSONError(fmt.Errorf("servers import: %w", err))
	}

	cfg, err := e.writableConfig(c)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	names := slices.Sorted(maps.Keys(servers))
	for _, name := range names {
		if err := cfg.AddServer(name, servers[name]); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("servers import %q: %w", name, err))
		}
	}

	err = cfg.Save()
	log.Event("core:servers", "import").Detail("count", len(names)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config save: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"imported": names, "scope": cfg.Scope().String()})
	}
	for _, name := range names {
		fmt.Fprintf(cmd.Out(), "Imported %s\n", name)
	}
	return nil
}

// CheckResult is the outcome of a server health check.
type CheckResult struct {
	Server string   `json:"server"`
	OK     bool     `json:"ok"`
	Tools  []string `json:"tools,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func (e *Extension) newServersCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [name]",
		Short: "Check that a server can take posts",
		Long: `Start a server, list its tools, and confirm post_to_linkedin exists and
accepts {"text", "visibility": "PUBLIC"}. Nothing is posted.

Defaults to the server named in settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runServersCheck,
	}
}

func (e *Extension) runServersCheck(c *cobra.Command, args []string) error {
	name := e.ctx.Config().MCPServer()
	if len(args) > 0 {
		name = args[0]
	}

	inspector, ok := e.ctx.Tools().(toolcall.Inspector)
	if !ok {
		return cmd.PrintJSONError(ErrNoInspector)
	}

	spin := progress.NewSpinner("Checking " + name)
	if !cmd.JSON() {
		spin.Start()
	}
	res, err := checkServer(c.Context(), inspector, name)
	spin.Stop()

	log.Event("core:servers", "check").Server(name).Tool(post.ToolName).Detail("tools", len(res.Tools)).Write(err)

	if cmd.JSON() {
		if err := cmd.PrintJSON(res); err != nil {
			return err
		}
		if err != nil {
			c.SilenceErrors = true
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("servers check %q: %w", name, err)
	}
	fmt.Fprintf(cmd.Out(), "%s: ok (%d tools, %s accepts the post payload)\n", name, len(res.Tools), post.ToolName)
	return nil
}

// checkServer lists the tools on name and validates the post payload
// against post_to_linkedin's input schema.
func checkServer(ctx context.Context, inspector toolcall.Inspector, name string) (CheckResult, error) {
	res := CheckResult{Server: name}

	tools, err := inspector.ListTools(ctx, name)
	if err != nil {
		res.Error = err.Error()
		return res, err
	}
	for _, t := range tools {
		res.Tools = append(res.Tools, t.Name)
	}

	tool, ok := toolcall.FindTool(tools, post.ToolName)
	if !ok {
		err := fmt.Errorf("server does not offer %s", post.ToolName)
		res.Error = err.Error()
		return res, err
	}

	if err := toolcall.ValidateArgs(tool, post.NewPayload("sample").Args()); err != nil {
		res.Error = err.Error()
		return res, err
	}

	res.OK = true
	return res, nil
}
