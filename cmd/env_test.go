// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that run the built binary:
// command parsing -> extension -> post handler -> MCP client -> notice.
//
// Each test gets its own HOME and working directory, so the global config
// and audit log never leak between tests or into the user's real files.
// Extension packages test their commands in-process against in-process MCP
// servers; these tests cover what only the real binary shows: exit codes,
// notice output, and files on disk.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the socialposts binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "socialposts-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "socialposts"
		if os.PathSeparator == '\\' {
			binaryName = "socialposts.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates an isolated HOME and working directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// command builds an exec.Cmd for socialposts with the isolated environment.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home)
	return cmd
}

// run executes socialposts with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("socialposts %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes socialposts and returns output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes socialposts with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("socialposts %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// write creates a file in the working directory and returns its name.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
	return name
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// testNote is a realistic note body.
const testNote = `# Shipped: offline sync

After three months of work the mobile app now syncs offline edits.

- conflict-free merges
- 40% smaller payloads

#buildinpublic`
