// Package guide provides access to embedded help and guide pages used by
// the CLI's built-in documentation system and the MCP guide tool.
package guide

import (
	"embed"
	"strings"
)

//go:embed *.md
var files embed.FS

// Get returns the content of a guide page by name. If name is empty the
// default "guide" page is returned.
func Get(name string) (string, error) {
	if name == "" {
		name = "guide"
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the available guide page names (without the .md suffix),
// excluding the default page.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != "guide" {
			names = append(names, name)
		}
	}
	return names, nil
}
