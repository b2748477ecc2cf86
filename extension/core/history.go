// history.go implements the "socialposts history" command: recent post
// attempts read back from the audit log.

package core

import (
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/duration"
	"github.com/jpl-au/socialposts/internal/history"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recent post attempts",
		Long: `Show recent post attempts, newest first, with the server used and the
reason for any failure.

  socialposts history                 # last 20 attempts
  socialposts history -n 50 --since 7d
  socialposts history --source ""     # every audit entry, not just posts`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 20, "Limit number of entries shown")
	c.Flags().String(extension.FlagSince, "", "Only entries newer than duration (e.g., 12h, 7d)")
	c.Flags().String(extension.FlagSource, history.DefaultSource, "Source filter; a trailing ':' matches a prefix")
	return c
}

func runHistory(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	since, _ := c.Flags().GetString(extension.FlagSince)
	source, _ := c.Flags().GetString(extension.FlagSource)

	if limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", limit))
	}

	opts := history.Options{
		Limit:  limit,
		Source: source,
		Colour: !cmd.JSON() && cmd.StdoutIsTerminal(),
	}
	if since != "" {
		cutoff, err := duration.Cutoff(since, time.Now())
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Since = cutoff
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := history.Run(w, opts)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history: %w", err))
	}

	if cmd.JSON() {
		records := result.Records
		if records == nil {
			records = []log.Record{}
		}
		return cmd.PrintJSON(records)
	}
	if len(result.Records) == 0 {
		fmt.Fprintln(cmd.Out(), "No post attempts recorded")
	}
	return nil
}
