package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NewTec-GmbH/lobster-rust/internal/lobster"
)

var (
	// Version information - typically set via ldflags at build time
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lobster-rust",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "lobster-rust %s\n", Version)
		fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
		fmt.Fprintf(out, "Build date: %s\n", BuildDate)
		fmt.Fprintf(out, "Schema: %s v%d\n", lobster.Schema, lobster.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
