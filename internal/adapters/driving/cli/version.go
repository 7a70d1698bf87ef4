package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// Needs no services.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Args:             cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("codegrep version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
