// vacuum.go implements the "socialposts vacuum" command, which prunes old
// audit log entries.
//
// Design: pruning is irreversible, so a confirmation prompt guards it
// unless --force is given. --dry-run only counts.

package core

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/duration"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/spf13/cobra"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Prune old audit log entries",
		Long: `Permanently delete audit log entries older than a duration.

  socialposts vacuum --older-than 3m --dry-run
  socialposts vacuum --older-than 30d --force

Duration formats: 12h (hours), 7d (days), 4w (weeks), 3m (months)`,
		Args: cobra.NoArgs,
		RunE: runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Delete entries older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show how many entries would be deleted")
	c.Flags().BoolP(extension.FlagForce, "f", false, "Skip confirmation")
	_ = c.MarkFlagRequired(extension.FlagOlderThan)
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	force, _ := c.Flags().GetBool(extension.FlagForce)

	cutoff, err := duration.Cutoff(olderThan, time.Now())
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
	}

	if !dryRun && !force && !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Delete audit log entries older than %s? This cannot be undone. [y/N] ", olderThan)
		response, err := bufio.NewReader(cmd.In()).ReadString('\n')
		if err != nil && response == "" {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	n, err := log.Prune(cutoff, dryRun)

	// Logged after pruning so the entry itself survives.
	log.Event("core:vacuum", "vacuum").Detail("older_than", olderThan).Detail("dry_run", dryRun).Detail("count", n).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"deleted": n, "dry_run": dryRun})
	}
	if dryRun {
		fmt.Fprintf(cmd.Out(), "Would delete %d entries\n", n)
		return nil
	}
	fmt.Fprintf(cmd.Out(), "Deleted %d entries\n", n)
	return nil
}
