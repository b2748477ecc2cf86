// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// behaviour while this package handles presentation: column alignment and
// colourised status.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/log"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// HumanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func HumanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// status renders a success flag, coloured when colour is set.
func status(ok, colour bool) string {
	s, style := "ok    ", okStyle
	if !ok {
		s, style = "failed", failStyle
	}
	if colour {
		return style.Render(s)
	}
	return s
}

// History prints audit records one per line, newest first:
// time, status, source, server, then the error for failures.
func History(w io.Writer, records []log.Record, colour bool) error {
	if len(records) == 0 {
		return nil
	}

	maxSource := 6 // minimum "SOURCE"
	for _, r := range records {
		maxSource = max(maxSource, len(r.Source))
	}

	fmt.Fprintf(w, "%-16s  %-6s  %-*s  %s\n", "TIME", "STATUS", maxSource, "SOURCE", "SERVER")
	for _, r := range records {
		server := r.Server
		if server == "" {
			server = "-"
		}
		fmt.Fprintf(w, "%s  %s  %-*s  %s", r.Time.Format("2006-01-02 15:04"), status(r.Success, colour), maxSource, r.Source, server)
		if !r.Success && r.Error != "" {
			fmt.Fprintf(w, "  %s", r.Error)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// Servers prints server definitions in name order. The server posts go to
// is marked with "*".
func Servers(w io.Writer, cfg *config.Config) error {
	names := cfg.ServerNames()
	if len(names) == 0 {
		fmt.Fprintln(w, "No servers configured")
		return nil
	}

	maxName := 4 // minimum "NAME"
	for _, n := range names {
		maxName = max(maxName, len(n))
	}

	current := cfg.MCPServer()
	fmt.Fprintf(w, "  %-*s  %-5s  %s\n", maxName, "NAME", "TYPE", "TARGET")
	for _, n := range names {
		s, _ := cfg.Server(n)
		mark := " "
		if n == current {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-*s  %-5s  %s\n", mark, maxName, n, s.Transport(), Target(s))
	}
	return nil
}

// Target describes where a server definition points: the command line for
// stdio, the URL for HTTP.
func Target(s config.Server) string {
	if s.Transport() == config.TransportHTTP {
		return s.URL
	}
	return strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
}
