package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the boardpack version",
	Long:  "Print the boardpack version. Runs without opening the data directory.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("boardpack version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
