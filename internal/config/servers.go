// servers.go defines named MCP server definitions.
//
// The social.mcp_server setting is only a name; it is resolved against the
// servers map at call time. A definition launches a local subprocess over
// stdio (command/args/env/envfile) or reaches a streamable HTTP endpoint
// (url/headers). The field names follow the mcpServers JSON format used by
// desktop assistants so pasted definitions import without translation.

package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Server is a single named MCP server definition.
type Server struct {
	Command string            `yaml:"command,omitempty" json:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	EnvFile string            `yaml:"envfile,omitempty" json:"envfile,omitempty"`
	URL     string            `yaml:"url,omitempty" json:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// Transport names reported for a server definition.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Transport returns "stdio" or "http" depending on which endpoint is set.
func (s Server) Transport() string {
	if s.URL != "" {
		return TransportHTTP
	}
	return TransportStdio
}

// Validate requires exactly one of command or url.
func (s Server) Validate() error {
	switch {
	case s.Command == "" && s.URL == "":
		return fmt.Errorf("%w: one of command or url is required", ErrInvalidValue)
	case s.Command != "" && s.URL != "":
		return fmt.Errorf("%w: command and url are mutually exclusive", ErrInvalidValue)
	case s.URL != "" && !strings.HasPrefix(s.URL, "http://") && !strings.HasPrefix(s.URL, "https://"):
		return fmt.Errorf("%w: url must start with http:// or https://", ErrInvalidValue)
	}
	return nil
}

// Server returns the named server definition.
func (c *Config) Server(name string) (Server, error) {
	s, ok := c.Servers[name]
	if !ok {
		return Server{}, fmt.Errorf("%w: %q", ErrUnknownServer, name)
	}
	return s, nil
}

// ServerNames returns configured server names in sorted order.
func (c *Config) ServerNames() []string {
	return slices.Sorted(maps.Keys(c.Servers))
}

// AddServer validates and stores a server definition, replacing any
// existing definition with the same name.
func (c *Config) AddServer(name string, s Server) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: server name is required", ErrInvalidValue)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if c.Servers == nil {
		c.Servers = make(map[string]Server)
	}
	c.Servers[name] = s
	return nil
}

// RemoveServer deletes a server definition.
func (c *Config) RemoveServer(name string) error {
	if _, ok := c.Servers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownServer, name)
	}
	delete(c.Servers, name)
	return nil
}

// ParseMCPServers parses the {"mcpServers": {...}} document format that
// desktop assistants publish for server setup.
func ParseMCPServers(data []byte) (map[string]Server, error) {
	var input struct {
		MCPServers map[string]Server `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse mcpServers document: %w", err)
	}
	if len(input.MCPServers) == 0 {
		return nil, fmt.Errorf("%w: no MCP servers found in document", ErrInvalidValue)
	}
	for name, s := range input.MCPServers {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("server %q: %w", name, err)
		}
	}
	return input.MCPServers, nil
}
