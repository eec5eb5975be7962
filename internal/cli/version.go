package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(versionLine())
		},
	}
}

// versionLine renders the version plus whatever build metadata is set.
func versionLine() string {
	line := "landx " + Version
	if Commit != "" {
		line += " (" + Commit + ")"
	}
	if Date != "" {
		line += " built " + Date
	}
	return line
}
