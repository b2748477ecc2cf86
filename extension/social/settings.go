// settings.go implements the "socialposts settings" command, the one-field
// settings screen for the MCP server name.
//
// Design: every edit persists the whole settings record immediately, so
// there is no separate save step. The value is stored as given, including
// the empty string; a bad name surfaces as a failed post, not here.

package social

import (
	"fmt"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/spf13/cobra"
)

// Settings screen labels.
const (
	SettingsTitle        = "Social Posts Settings"
	MCPServerLabel       = "MCP Server Name"
	MCPServerDesc        = "The name of the MCP server to use for LinkedIn integration"
	MCPServerPlaceholder = config.DefaultMCPServer
)

func (e *Extension) newSettingsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "settings [value]",
		Short: "Show or change the MCP server name",
		Long: `Show or change the name of the MCP server used for LinkedIn posts.

  socialposts settings              # show the current value
  socialposts settings my-linkedin  # use the server named my-linkedin
  socialposts settings ""           # clear it

The change is saved immediately and used by the next post.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runSettings,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.socialposts/config.yaml)")
	return c
}

func (e *Extension) runSettings(c *cobra.Command, args []string) error {
	cfg := e.ctx.Config()
	if forceLocal, _ := c.Flags().GetBool(extension.FlagLocal); forceLocal && cfg.Scope() != config.ScopeLocal {
		var err error
		cfg, err = config.LoadScope(config.ScopeLocal)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
		}
	}

	if len(args) == 0 {
		log.Event(SourceConfig, "show").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{
				"name":        MCPServerLabel,
				"description": MCPServerDesc,
				"placeholder": MCPServerPlaceholder,
				"value":       cfg.MCPServer(),
				"scope":       cfg.Scope().String(),
			})
		}
		w := cmd.Out()
		fmt.Fprintln(w, SettingsTitle)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s: %s\n", MCPServerLabel, cfg.MCPServer())
		fmt.Fprintf(w, "  %s\n", MCPServerDesc)
		return nil
	}

	cfg.SetMCPServer(args[0])
	err := cfg.Save()
	log.Event(SourceConfig, "set").Server(args[0]).Detail("scope", cfg.Scope().String()).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config save: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"value": cfg.MCPServer(), "scope": cfg.Scope().String()})
	}
	fmt.Fprintf(cmd.Out(), "%s = %q (%s)\n", MCPServerLabel, cfg.MCPServer(), cfg.Scope())
	return nil
}
