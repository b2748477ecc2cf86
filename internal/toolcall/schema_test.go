package toolcall

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postTool() mcp.Tool {
	return mcp.NewTool("post_to_linkedin",
		mcp.WithString("text", mcp.Required()),
		mcp.WithString("visibility", mcp.Required(), mcp.Enum("PUBLIC", "CONNECTIONS")),
	)
}

func TestValidateArgs(t *testing.T) {
	tool := postTool()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateArgs(tool, map[string]any{"text": "", "visibility": "PUBLIC"}))
	})

	t.Run("missing field", func(t *testing.T) {
		err := ValidateArgs(tool, map[string]any{"text": "hi"})
		require.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Contains(t, err.Error(), "visibility")
	})

	t.Run("enum", func(t *testing.T) {
		err := ValidateArgs(tool, map[string]any{"text": "hi", "visibility": "PRIVATE"})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("wrong type", func(t *testing.T) {
		err := ValidateArgs(tool, map[string]any{"text": 42, "visibility": "PUBLIC"})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})
}

func TestValidateArgs_RawSchema(t *testing.T) {
	tool := mcp.NewToolWithRawSchema("post_to_linkedin", "", json.RawMessage(`{
		"type": "object",
		"properties": {"text": {"type": "string"}},
		"required": ["text"],
		"additionalProperties": false
	}`))

	err := ValidateArgs(tool, map[string]any{"text": "hi", "visibility": "PUBLIC"})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	assert.NoError(t, ValidateArgs(tool, map[string]any{"text": "hi"}))
}

func TestFindTool(t *testing.T) {
	tools := []mcp.Tool{mcp.NewTool("a"), postTool()}

	got, ok := FindTool(tools, "post_to_linkedin")
	require.True(t, ok)
	assert.Equal(t, "post_to_linkedin", got.Name)

	_, ok = FindTool(tools, "missing")
	assert.False(t, ok)
}
