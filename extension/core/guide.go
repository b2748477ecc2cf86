// guide.go implements the "socialposts guide" command for documentation
// access.
//
// Design: Guides are embedded in the binary via the guide package, ensuring
// documentation is always available without external files. Terminal output
// gets glamour rendering for readability; pipe/redirect gets raw markdown
// for machine consumption and LLM context loading.

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/guide"
	"github.com/jpl-au/socialposts/internal/document"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the socialposts usage guide",
		Long: `Outputs the socialposts guide for LLMs and humans.

  socialposts guide                   # main guide
  socialposts guide post-to-linkedin  # posting in detail
  socialposts guide servers           # MCP server setup`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			printMarkdown(content)
			return nil
		},
	}
}

// printMarkdown writes content, rendered when stdout is a terminal.
func printMarkdown(content string) {
	if cmd.JSON() {
		_ = cmd.PrintJSON(map[string]string{"content": content})
		return
	}
	if cmd.StdoutIsTerminal() {
		if rendered, err := document.Render(content); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return
		}
	}
	fmt.Fprint(cmd.Out(), content)
}
