// Package history lists recent post attempts from the audit log.
//
// Every trigger writes one audit entry per attempt, so the log doubles as a
// record of what was posted where and why a post failed.
package history

import (
	"io"
	"time"

	"github.com/jpl-au/socialposts/internal/format"
	"github.com/jpl-au/socialposts/internal/log"
)

// DefaultSource selects every social trigger.
const DefaultSource = "social:"

// Options configures a history listing.
type Options struct {
	Limit  int       // Maximum entries to return (0 = log default)
	Source string    // Source filter; a trailing ":" matches by prefix
	Since  time.Time // Drop entries older than this (zero = no bound)
	Colour bool      // Colourise status
}

// Result contains the outcome of a history listing.
type Result struct {
	Records []log.Record
}

// Run reads matching entries, newest first, and writes them to w.
func Run(w io.Writer, opts Options) (Result, error) {
	var result Result

	records, err := log.Recent(opts.Limit, opts.Source)
	if err != nil {
		return result, err
	}

	if !opts.Since.IsZero() {
		kept := records[:0]
		for _, r := range records {
			if !r.Time.Before(opts.Since) {
				kept = append(kept, r)
			}
		}
		records = kept
	}

	result.Records = records
	return result, format.History(w, records, opts.Colour)
}
