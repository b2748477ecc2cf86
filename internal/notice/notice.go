// Package notice delivers transient user-facing messages. A notice carries
// its display duration so front-ends that can expire messages (a terminal
// status line, a desktop toast, an MCP client) know how long to keep it.
package notice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Display durations. DefaultDuration applies to notices that do not name
// their own.
const (
	SuccessDuration = 3000 * time.Millisecond
	FailureDuration = 5000 * time.Millisecond
	DefaultDuration = 4000 * time.Millisecond
)

// Level distinguishes confirmations from failures.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a single transient message.
type Notice struct {
	Level    Level         `json:"level"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
}

// MarshalJSON reports the duration in milliseconds.
func (n Notice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Level      Level  `json:"level"`
		Message    string `json:"message"`
		DurationMS int64  `json:"duration_ms"`
	}{n.Level, n.Message, n.Duration.Milliseconds()})
}

// Info returns an informational notice.
func Info(msg string, d time.Duration) Notice {
	return Notice{Level: LevelInfo, Message: msg, Duration: d}
}

// Error returns an error notice.
func Error(msg string, d time.Duration) Notice {
	return Notice{Level: LevelError, Message: msg, Duration: d}
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// Terminal writes notices to a terminal or pipe.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	json   bool
	styled bool
}

// NewTerminal returns a notifier writing to out. With asJSON each notice is
// one JSON object per line; with styled notices are coloured by level.
func NewTerminal(out io.Writer, asJSON, styled bool) *Terminal {
	return &Terminal{out: out, json: asJSON, styled: styled}
}

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Notify implements Notifier.
func (t *Terminal) Notify(n Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.json {
		b, err := json.Marshal(map[string]Notice{"notice": n})
		if err != nil {
			return
		}
		fmt.Fprintln(t.out, string(b))
		return
	}

	msg := n.Message
	if t.styled {
		switch n.Level {
		case LevelError:
			msg = errorStyle.Render(msg)
		default:
			msg = infoStyle.Render(msg)
		}
	}
	fmt.Fprintln(t.out, msg)
}

// Slog writes notices to a structured logger. Used where stdout is not
// the user's, such as the MCP stdio server.
type Slog struct {
	logger *slog.Logger
}

// NewSlog returns a notifier writing to logger.
func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{logger: logger}
}

// Notify implements Notifier.
func (s *Slog) Notify(n Notice) {
	level := slog.LevelInfo
	if n.Level == LevelError {
		level = slog.LevelError
	}
	s.logger.Log(context.Background(), level, n.Message, "notice", true, "duration_ms", n.Duration.Milliseconds())
}

// Recorder collects notices in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Level returns the recorded notices with the given level.
func (r *Recorder) Level(l Level) []Notice {
	var out []Notice
	for _, n := range r.Notices() {
		if n.Level == l {
			out = append(out, n)
		}
	}
	return out
}
