package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/socialposts/internal/config"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512B", HumanSize(512))
	assert.Equal(t, "1.5K", HumanSize(1536))
	assert.Equal(t, "100.0M", HumanSize(100<<20))
	assert.Equal(t, "2.0G", HumanSize(2<<30))
}

func TestHistory(t *testing.T) {
	ts := time.Date(2026, 2, 1, 9, 30, 0, 0, time.Local)
	records := []log.Record{
		{Time: ts, Source: "social:share", Server: "linkedin", Success: false, Error: "post failed (tool): quota"},
		{Time: ts, Source: "social:post-to-linkedin", Server: "linkedin", Success: true},
		{Time: ts, Source: "core:config", Success: true},
	}

	var buf bytes.Buffer
	require.NoError(t, History(&buf, records, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "TIME"))
	assert.Contains(t, lines[1], "2026-02-01 09:30  failed  social:share")
	assert.True(t, strings.HasSuffix(lines[1], "linkedin  post failed (tool): quota"))
	assert.Contains(t, lines[2], "ok      social:post-to-linkedin  linkedin")
	assert.True(t, strings.HasSuffix(lines[3], "  -"))
}

func TestHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, nil, false))
	assert.Empty(t, buf.String())
}

func TestServers(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.AddServer("linkedin", config.Server{Command: "npx", Args: []string{"-y", "linkedin-mcp"}}))
	require.NoError(t, cfg.AddServer("remote", config.Server{URL: "https://mcp.example.com/mcp"}))

	var buf bytes.Buffer
	require.NoError(t, Servers(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, "* linkedin  stdio  npx -y linkedin-mcp")
	assert.Contains(t, out, "  remote    http   https://mcp.example.com/mcp")
}

func TestServers_None(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Servers(&buf, &config.Config{}))
	assert.Equal(t, "No servers configured\n", buf.String())
}
