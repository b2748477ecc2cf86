// config.go implements the "socialposts config" command for configuration
// management.
//
// Design: Config follows a cascade model similar to git: local config
// (.socialposts/config.yaml) takes precedence over global
// (~/.socialposts/config.yaml). The --local flag forces use of local config
// even if it doesn't exist yet.

package core

import (
	"fmt"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  socialposts config                              # show config
  socialposts config social.mcp_server            # show one value
  socialposts config social.mcp_server linkedin   # set a value

Configuration locations:
  Global: ~/.socialposts/config.yaml
  Local:  .socialposts/config.yaml (created by init)

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: e.runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.socialposts/config.yaml)")
	return c
}

// writableConfig returns the config a command should edit: the loaded one,
// or the local file when --local asks for it and the loaded one is global.
func (e *Extension) writableConfig(c *cobra.Command) (*config.Config, error) {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)
	if e.ctx != nil && e.ctx.Config() != nil && (!forceLocal || e.ctx.Config().Scope() == config.ScopeLocal) {
		return e.ctx.Config(), nil
	}
	if forceLocal {
		return config.LoadScope(config.ScopeLocal)
	}
	return config.Load()
}

func (e *Extension) runConfig(c *cobra.Command, args []string) error {
	cfg, err := e.writableConfig(c)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}
	scopeName := cfg.Scope().String()

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// Values are not logged; server names may embed account details.
		log.Event("core:config", "set").Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
