// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the config command and the MCP config tools.
// Server definitions are structured and managed through servers.go rather
// than dotted keys.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// Config keys.
const (
	KeyMCPServer  = "social.mcp_server"
	KeyMaxContent = "limits.max_content"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{KeyMCPServer, KeyMaxContent}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyMCPServer:
		return c.MCPServer(), nil
	case KeyMaxContent:
		return strconv.FormatInt(c.MaxContent(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyMCPServer:
		c.SetMCPServer(value)
	case KeyMaxContent:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxContent || n > MaxMaxContent {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidValue, KeyMaxContent, MinMaxContent, int64(MaxMaxContent))
		}
		c.Limits.MaxContent = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		KeyMCPServer:  c.MCPServer(),
		KeyMaxContent: strconv.FormatInt(c.MaxContent(), 10),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case KeyMCPServer:
		return c.Social.MCPServer != nil
	case KeyMaxContent:
		return c.Limits.MaxContent != nil
	default:
		return false
	}
}
