package cmd

import (
	"github.com/spf13/cobra"
	"meeting-summarizer/config"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "meeting-summarizer",
		Short:        "transcribe and summarize meeting recordings",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(server(config))
	rootCmd.AddCommand(migrate(config))
	return rootCmd
}
