// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, git commit, Go version, and platform.`,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			if cmd.JSON() {
				_ = cmd.PrintJSON(info)
				return
			}
			fmt.Fprint(cmd.Out(), info.String())
		},
	}
}
