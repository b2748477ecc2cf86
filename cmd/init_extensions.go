/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles the extension lifecycle: activation, command
// registration and teardown.
//
// Design: settings are loaded before any extension is activated, and
// commands are registered only after activation, so a trigger can never
// run against unloaded settings. The tool hub is created once and shared
// by every extension through the Context.

package cmd

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/toolcall"
	"github.com/jpl-au/socialposts/internal/version"
)

// ClientName is sent to MCP servers in the initialize handshake.
const ClientName = "socialposts"

var (
	extContext extension.Context
	hub        *toolcall.Hub
	activeExts []extension.Extension
	activeOnce sync.Once
	activeErr  error
)

// activate loads settings, builds the shared context, activates every
// registered extension and registers their commands. Runs once per process.
func activate() error {
	activeOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			activeErr = fmt.Errorf("load settings: %w", err)
			return
		}

		hub = toolcall.NewHub(cfg, ClientName, version.Short())
		extContext = extension.NewContext(cfg, hub, terminalNotifier{})

		activeExts = extension.All()
		if err := extension.Activate(extContext, activeExts); err != nil {
			activeErr = err
			return
		}

		for _, ext := range activeExts {
			for _, c := range ext.Commands() {
				rootCmd.AddCommand(c)
			}
		}
	})
	return activeErr
}

// deactivate tears extensions down and closes every MCP session.
func deactivate() error {
	var errs []error
	if err := extension.Deactivate(activeExts); err != nil {
		errs = append(errs, err)
	}
	if hub != nil {
		if err := hub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing MCP sessions: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ExtensionContext returns the shared context, or nil before activation.
func ExtensionContext() extension.Context {
	return extContext
}

// Hub returns the shared tool hub, or nil before activation.
func Hub() *toolcall.Hub {
	return hub
}
