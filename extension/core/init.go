// init.go implements the "socialposts init" command.
//
// Design: init writes .socialposts/config.yaml in the current directory with
// the defaults spelled out, so a notes folder can carry its own server name.
// Once it exists the local file takes precedence over the global one.

package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/spf13/cobra"
)

// ErrAlreadyInitialised is returned when a local config already exists.
var ErrAlreadyInitialised = errors.New("already initialised")

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a local socialposts config",
		Long: `Creates .socialposts/config.yaml in the current directory.

  socialposts init            # local config with default settings
  socialposts init --force    # overwrite an existing local config

The local config takes precedence over ~/.socialposts/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagForce, "f", false, "Overwrite an existing local config")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	force, _ := c.Flags().GetBool(extension.FlagForce)
	path := config.LocalPath()

	err := initLocal(path, force)

	log.Event("core:init", "init").Detail("force", force).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"path": path})
	}
	fmt.Fprintf(cmd.Out(), "Initialised socialposts config in %s\n", path)
	return nil
}

// initLocal writes a fresh local config at path with the defaults set.
func initLocal(path string, force bool) error {
	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		return fmt.Errorf("%w: %s exists (use --force to overwrite)", ErrAlreadyInitialised, path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}

	cfg := config.New(path, config.ScopeLocal)
	cfg.SetMCPServer(config.DefaultMCPServer)
	return cfg.Save()
}
