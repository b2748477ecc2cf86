// serve.go implements the "socialposts serve" command for MCP server
// operation.
//
// Separated from extension.go because serve has unique lifecycle
// requirements. Unlike other commands that run and exit, serve blocks
// handling MCP requests over stdio until the client disconnects.

package core

import (
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio so an assistant
can post notes, read and change settings, and read the post history.

Logs go to stderr; stdout carries JSON-RPC only.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(e.ctx, extension.All())
		},
	}
}
