// Package document resolves the "active document": the note whose text a
// trigger sends. A note is a file on disk or text piped on stdin.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
)

var (
	// ErrNoActiveDocument is returned when no path is given and stdin is a terminal.
	ErrNoActiveDocument = errors.New("no active markdown view")
	// ErrTooLarge is returned when a note exceeds limits.max_content.
	ErrTooLarge = errors.New("document exceeds maximum size")
	// ErrIsDirectory is returned when the path names a directory.
	ErrIsDirectory = errors.New("path is a directory")
)

// StdinPath is the path argument that selects stdin explicitly.
const StdinPath = "-"

// Source describes where the active document comes from.
type Source struct {
	Path       string    // file path, "-" for stdin, or empty
	Stdin      io.Reader // reader used for stdin
	StdinIsTTY bool      // true when stdin is an interactive terminal
}

// Document is a note read for posting.
type Document struct {
	Path    string // empty for stdin
	Content string
}

// Name returns a display name for the document.
func (d Document) Name() string {
	if d.Path == "" {
		return "stdin"
	}
	return d.Path
}

// Read resolves and reads the active document, refusing more than
// maxContent bytes. An empty document is valid.
func Read(src Source, maxContent int64) (Document, error) {
	switch {
	case src.Path == StdinPath:
		return readStdin(src.Stdin, maxContent)
	case src.Path != "":
		return readFile(src.Path, maxContent)
	case src.Stdin != nil && !src.StdinIsTTY:
		return readStdin(src.Stdin, maxContent)
	default:
		return Document{}, ErrNoActiveDocument
	}
}

func readStdin(r io.Reader, maxContent int64) (Document, error) {
	if r == nil {
		return Document{}, ErrNoActiveDocument
	}
	content, err := readLimited(r, maxContent)
	if err != nil {
		return Document{}, fmt.Errorf("read stdin: %w", err)
	}
	return Document{Content: content}, nil
}

func readFile(path string, maxContent int64) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if info.Size() > maxContent {
		return Document{}, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, info.Size(), maxContent)
	}

	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	content, err := readLimited(f, maxContent)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Document{Path: path, Content: content}, nil
}

// readLimited reads at most max bytes, failing with ErrTooLarge past that.
func readLimited(r io.Reader, max int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > max {
		return "", fmt.Errorf("%w (limit %d bytes)", ErrTooLarge, max)
	}
	return string(data), nil
}

// IsMarkdown reports whether path has a markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	default:
		return false
	}
}

// Render renders markdown for terminal display. On failure the raw text is
// returned with the error.
func Render(text string) (string, error) {
	out, err := glamour.Render(text, "dark")
	if err != nil {
		return text, fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
