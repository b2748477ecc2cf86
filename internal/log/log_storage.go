// log_storage.go implements SQLite-based persistent audit logging.
//
// Separated from log.go to isolate database concerns. The project field is a
// hash of the working directory so entries from different note folders can
// be told apart without storing the path itself.
//
// Design: write errors are reported on stderr and otherwise ignored. A post
// must reach the user's notice even if the audit log is unavailable.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// ErrNotOpen is returned by queries when the logger has not been opened.
var ErrNotOpen = errors.New("audit log not open")

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

// Record is an entry read back from the log.
type Record struct {
	ID      int64          `json:"id"`
	Time    time.Time      `json:"time"`
	Source  string         `json:"source"`
	Action  string         `json:"action"`
	Attempt string         `json:"attempt,omitempty"`
	Server  string         `json:"server,omitempty"`
	Tool    string         `json:"tool,omitempty"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, action, attempt, server, tool,
		                 success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, e.Action,
		nilIfEmpty(e.Attempt), nilIfEmpty(e.Server), nilIfEmpty(e.Tool),
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "socialposts: audit log write failed: %v\n", err)
	}
}

func (l *Logger) recent(limit int, source string) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	q := `SELECT id, start, source, action, attempt, server, tool, success, error, detail FROM log`
	var args []any
	switch {
	case source == "":
	case strings.HasSuffix(source, ":"):
		q += ` WHERE source LIKE ?`
		args = append(args, source+"%")
	default:
		q += ` WHERE source = ?`
		args = append(args, source)
	}
	q += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r                             Record
			start                         int64
			success                       int
			attempt, server, tool, errMsg sql.NullString
			detail                        sql.NullString
		)
		if err := rows.Scan(&r.ID, &start, &r.Source, &r.Action, &attempt, &server, &tool, &success, &errMsg, &detail); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		r.Time = time.Unix(start, 0)
		r.Attempt = attempt.String
		r.Server = server.String
		r.Tool = tool.String
		r.Success = success == 1
		r.Error = errMsg.String
		if detail.Valid {
			_ = json.Unmarshal([]byte(detail.String), &r.Detail)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// prune deletes entries that started before cutoff, or only counts them
// when dryRun is set.
func (l *Logger) prune(cutoff time.Time, dryRun bool) (int64, error) {
	if dryRun {
		var n int64
		err := l.db.QueryRow(`SELECT COUNT(*) FROM log WHERE start < ?`, cutoff.Unix()).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("count audit log: %w", err)
		}
		return n, nil
	}

	res, err := l.db.Exec(`DELETE FROM log WHERE start < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	if _, err := l.db.Exec(`VACUUM`); err != nil {
		return n, fmt.Errorf("vacuum audit log: %w", err)
	}
	return n, nil
}

// dbPathFunc is the function that returns the database path.
// Tests can override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".socialposts", "log", "socialposts-log.db")
	}
	return filepath.Join(home, ".socialposts", "log", "socialposts-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a project identifier from the directory path.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			start    INTEGER NOT NULL,
			end      INTEGER NOT NULL,
			project  TEXT NOT NULL,
			source   TEXT NOT NULL,
			action   TEXT NOT NULL,
			attempt  TEXT,
			server   TEXT,
			tool     TEXT,
			success  INTEGER NOT NULL,
			error    TEXT,
			detail   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
		CREATE INDEX IF NOT EXISTS idx_log_attempt ON log(attempt);
	`)
	return err
}

// nilIfEmpty returns nil for empty strings so they are stored as NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
