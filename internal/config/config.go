// Package config provides reading and writing of socialposts configuration.
// Supports both global (~/.socialposts/config.yaml) and local (.socialposts/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: goes back to the file the config was read from, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
	// ErrUnknownServer is returned when a named MCP server is not configured.
	ErrUnknownServer = errors.New("unknown MCP server")
)

// Dir is the name of the directory holding config and logs.
const Dir = ".socialposts"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.socialposts/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .socialposts/config.yaml
	ScopeLocal
)

// String returns the scope name used in command output.
func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// DefaultMCPServer is the endpoint name used until the user picks another.
const DefaultMCPServer = "linkedin"

// Social holds the settings of the social posts plugin.
type Social struct {
	// MCPServer is a pointer so an explicitly stored empty string survives
	// the merge over the default.
	MCPServer *string `yaml:"mcp_server,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Default limits applied when not configured.
const DefaultMaxContent = 100 * 1024 * 1024 // 100 MB

// Validation bounds for configuration values.
const (
	MinMaxContent = 1
	MaxMaxContent = 10 * 1024 * 1024 * 1024 // 10 GB
)

// Config contains configuration for socialposts.
type Config struct {
	Social  Social            `yaml:"social,omitempty"`
	Limits  Limits            `yaml:"limits,omitempty"`
	Servers map[string]Server `yaml:"servers,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	for name, s := range c.Servers {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("server %q: %w", name, err)
		}
	}
	return nil
}

// MCPServer returns the endpoint name posts are sent to (defaults to "linkedin").
// An explicitly stored empty string is returned as-is.
func (c *Config) MCPServer() string {
	if c.Social.MCPServer == nil {
		return DefaultMCPServer
	}
	return *c.Social.MCPServer
}

// SetMCPServer overwrites the endpoint name. Any value is accepted.
func (c *Config) SetMCPServer(name string) {
	c.Social.MCPServer = &name
}

// MaxContent returns the maximum note size in bytes (defaults to 100 MB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.socialposts/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	return LoadFile(pathForScope(scope), scope)
}

// New returns an empty config that saves to path.
func New(path string, scope Scope) *Config {
	return &Config{path: path, scope: scope}
}

// LoadFile reads configuration from an explicit path. A missing file yields
// an empty config that saves back to path.
func LoadFile(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config saves to.
func (c *Config) Path() string {
	if c.path == "" {
		return pathForScope(c.scope)
	}
	return c.path
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755. The file is 0600
// because server definitions may carry tokens in env or headers.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
