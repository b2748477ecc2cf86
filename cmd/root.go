/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from the
// extension lifecycle.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/socialposts/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "socialposts",
	Short: "Publish markdown notes to LinkedIn through an MCP server",
	Long: `Send the text of a markdown note to LinkedIn by calling the post_to_linkedin
tool on a configured MCP server, and report whether it worked.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, activates extensions, executes the command, and
// tears extensions down before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	if err := activate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Close()
		os.Exit(1)
	}

	err := rootCmd.Execute()

	if closeErr := deactivate(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", closeErr)
	}
	// os.Exit skips deferred calls.
	log.Close()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
