// Package core provides the core extension for socialposts.
// It registers commands: init, config, servers, history, vacuum, serve,
// guide, llm, version.
package core

import (
	"github.com/jpl-au/socialposts/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension   = (*Extension)(nil)
	_ extension.Activatable = (*Extension)(nil)
)

// Name returns "core" - this extension provides the host commands.
func (e *Extension) Name() string { return "core" }

// Activate keeps the host context for commands that read settings or reach
// MCP servers.
func (e *Extension) Activate(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		e.newConfigCmd(),
		e.newServersCmd(),
		newHistoryCmd(),
		newVacuumCmd(),
		e.newServeCmd(),
		newGuideCmd(),
		newLlmCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the MCP server registers its own config and guide
// tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
