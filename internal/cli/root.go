package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatsift",
	Short: "Prepare exported chat logs for LLM consumption",
	Long: "Chatsift turns a structured chat export into bounded-size plain-text\n" +
		"chunks: simplify consolidates and filters the export, noise drops\n" +
		"low-value lines, and split cuts the result to size.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(noiseCmd)
	rootCmd.AddCommand(splitCmd)
}
