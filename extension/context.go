// context.go defines the Context interface for extension access to host
// services.
//
// Design: the tool-invocation capability and the notifier are handed to
// extensions here rather than reached through package globals, so tests
// can activate an extension against a fake Caller and a notice.Recorder.

package extension

import (
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/notice"
	"github.com/jpl-au/socialposts/internal/toolcall"
)

// Context provides extensions controlled access to host services.
type Context interface {
	// Config returns the loaded configuration. Extensions that edit
	// settings call Save on it.
	Config() *config.Config

	// Tools returns the tool-invocation capability.
	Tools() toolcall.Caller

	// Notifier returns where user-facing notices go.
	Notifier() notice.Notifier
}

// extContext implements Context.
type extContext struct {
	cfg      *config.Config
	tools    toolcall.Caller
	notifier notice.Notifier
}

// NewContext creates a new extension context.
func NewContext(cfg *config.Config, tools toolcall.Caller, notifier notice.Notifier) Context {
	return &extContext{
		cfg:      cfg,
		tools:    tools,
		notifier: notifier,
	}
}

func (c *extContext) Config() *config.Config    { return c.cfg }
func (c *extContext) Tools() toolcall.Caller    { return c.tools }
func (c *extContext) Notifier() notice.Notifier { return c.notifier }
