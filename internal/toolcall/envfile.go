// envfile.go loads KEY=value files referenced by stdio server definitions,
// so tokens can live outside config.yaml.

package toolcall

import (
	"bufio"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// loadEnvFile reads and parses an env file. An empty path yields no entries.
func loadEnvFile(envFile string) (map[string]string, error) {
	envFile = strings.TrimSpace(envFile)
	if envFile == "" {
		return nil, nil
	}
	resolved, err := expandUserPath(envFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read envfile %q: %w", resolved, err)
	}
	parsed, err := parseEnvFile(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse envfile %q: %w", resolved, err)
	}
	return parsed, nil
}

// expandUserPath expands a leading "~/" to the home directory.
// "~user" forms are left untouched.
func expandUserPath(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if p == "~" {
		return home, nil
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:]), nil
	}
	return p, nil
}

func parseEnvFile(content string) (map[string]string, error) {
	env := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d missing '='", lineNo)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d has empty key", lineNo)
		}
		val = strings.TrimSpace(val)
		if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
			val = val[1 : len(val)-1]
		}
		env[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan envfile: %w", err)
	}
	return env, nil
}

// environ merges the env file under the inline env (inline wins) and
// returns KEY=value pairs in a stable order.
func environ(inline map[string]string, envFile string) ([]string, error) {
	merged, err := loadEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	if merged == nil {
		merged = make(map[string]string, len(inline))
	}
	maps.Copy(merged, inline)

	out := make([]string, 0, len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		out = append(out, k+"="+merged[k])
	}
	return out, nil
}
