// Package social provides the social extension for socialposts.
// It registers commands: post-to-linkedin, share, settings, and the MCP tool
// social_post_to_linkedin.
package social

import (
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/post"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Audit log sources, one per trigger.
const (
	SourceCommand = "social:post-to-linkedin"
	SourceShare   = "social:share"
	SourceMCP     = "social:mcp"
	SourceConfig  = "social:settings"
)

// Extension implements the social extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Activatable   = (*Extension)(nil)
	_ extension.Deactivatable = (*Extension)(nil)
)

// Name returns "social".
func (e *Extension) Name() string { return "social" }

// Activate keeps the host context. Settings are already loaded.
func (e *Extension) Activate(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Deactivate drops the host context.
func (e *Extension) Deactivate() error {
	e.ctx = nil
	return nil
}

// Commands returns the two post triggers and the settings command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newPostCmd(),
		e.newShareCmd(),
		e.newSettingsCmd(),
	}
}

// MCPTools returns the tool that lets an assistant trigger a post.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{postTool()}
}

// poster builds a Poster over the context's capability, notifier and
// settings. Built per trigger so the server name is read when posting.
func poster(ctx extension.Context, source string) *post.Poster {
	return post.New(ctx.Tools(), ctx.Notifier(), ctx.Config(), source)
}
