// Package log provides the audit trail for socialposts operations.
// Entries are stored in ~/.socialposts/log/socialposts-log.db and record
// every post attempt, settings change and MCP tool invocation.
//
// # Fluent API
//
// Build an entry with [Event], chain fields, then call [Builder.Write]:
//
//	log.Event("social:post-to-linkedin", "post").
//		Attempt(id).
//		Server(endpoint).
//		Tool("post_to_linkedin").
//		Detail("chars", len(text)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source  string // e.g. "social:share", "mcp:social_post_to_linkedin"
	Action  string // verb: post, set, check, list
	Attempt string // post attempt id, empty for non-post actions
	Server  string // MCP endpoint name the action targeted
	Tool    string // remote tool name

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Attempt sets the post attempt id.
func (b *Builder) Attempt(id string) *Builder {
	b.entry.Attempt = id
	return b
}

// Server sets the MCP endpoint name the operation targeted.
func (b *Builder) Server(name string) *Builder {
	b.entry.Server = name
	return b
}

// Tool sets the remote tool name.
func (b *Builder) Tool(name string) *Builder {
	b.entry.Tool = name
	return b
}

// Detail adds a key-value pair to the entry's detail map.
// Never pass note content or credentials here.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	if wd, err := os.Getwd(); err == nil {
		global.project = hash(wd)
	}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Recent returns up to limit entries, newest first. An empty source matches
// every entry; a source ending in ":" matches by prefix.
func Recent(limit int, source string) ([]Record, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, ErrNotOpen
	}
	return l.recent(limit, source)
}

// Prune removes entries that started before cutoff and returns how many
// were removed. With dryRun nothing is deleted and the count is of entries
// that would be.
func Prune(cutoff time.Time, dryRun bool) (int64, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return 0, ErrNotOpen
	}
	return l.prune(cutoff, dryRun)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
