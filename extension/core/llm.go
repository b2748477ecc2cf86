// llm.go implements the "socialposts llm" command for LLM onboarding.
//
// Design: Reads from guide/llm.md to avoid duplicating content. The guide
// file is the single source of truth for LLM onboarding documentation.

package core

import (
	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/guide"
	"github.com/spf13/cobra"
)

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs that post on a user's behalf.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			printMarkdown(content)
			return nil
		},
	}
}
