// schema.go checks tool arguments against the input schema a server
// advertises, without calling the tool.

package toolcall

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaMismatch is returned when arguments do not satisfy a tool's
// input schema.
var ErrSchemaMismatch = errors.New("arguments do not match tool schema")

// ValidateArgs reports whether args satisfy tool's input schema. Every
// violation is listed in the returned error.
func ValidateArgs(tool mcp.Tool, args map[string]any) error {
	raw := tool.RawInputSchema
	if raw == nil {
		b, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return fmt.Errorf("encode schema of %s: %w", tool.Name, err)
		}
		raw = b
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("load schema of %s: %w", tool.Name, err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("validate %s arguments: %w", tool.Name, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(msgs, "; "))
}

// FindTool returns the tool called name from tools.
func FindTool(tools []mcp.Tool, name string) (mcp.Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return mcp.Tool{}, false
}
