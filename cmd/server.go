package cmd

import (
	"github.com/spf13/cobra"
	"meeting-summarizer/config"
	server2 "meeting-summarizer/server"
)

func server(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "start http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server2.RunHttp(config)
		},
	}
}
