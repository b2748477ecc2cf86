/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/socialposts/internal/notice"
	"golang.org/x/term"
)

var validOutputFormats = []string{"json"}

var output string

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// in is the input reader for commands. Defaults to os.Stdin.
var in io.Reader = os.Stdin

// Out returns the output writer.
func Out() io.Writer { return out }

// In returns the input reader.
func In() io.Reader { return in }

// Output returns the output format flag value.
func Output() string { return output }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// SetIn sets the input reader (for testing).
func SetIn(r io.Reader) { in = r }

// SetOutput sets the output format (for testing).
func SetOutput(format string) { output = format }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// IsTerminal reports whether f is an interactive terminal. Readers and
// writers that are not files are never terminals.
func IsTerminal(f any) bool {
	if fd, ok := f.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fd.Fd()))
	}
	return false
}

// StdoutIsTerminal reports whether command output goes to a terminal.
func StdoutIsTerminal() bool { return IsTerminal(out) }

// StdinIsTerminal reports whether command input comes from a terminal.
func StdinIsTerminal() bool { return IsTerminal(in) }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// terminalNotifier renders notices to the current output writer, picking
// JSON or styling when the notice is shown rather than when it is built,
// because extensions receive the notifier before flags are parsed.
type terminalNotifier struct{}

// Notify implements notice.Notifier.
func (terminalNotifier) Notify(n notice.Notice) {
	notice.NewTerminal(out, JSON(), !JSON() && StdoutIsTerminal()).Notify(n)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
}
