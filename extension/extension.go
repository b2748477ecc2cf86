// Package extension provides the plugin architecture for socialposts.
// Extensions encapsulate related functionality (commands, MCP tools) and
// register at init time; the host activates them once settings are loaded.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for socialposts extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	// Called after Activate for Activatable extensions.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Activatable extensions receive the host context before their commands
// are registered. Settings are already loaded when Activate runs.
type Activatable interface {
	Extension
	Activate(ctx Context) error
}

// Deactivatable extensions release resources when the host shuts down.
type Deactivatable interface {
	Extension
	Deactivate() error
}
