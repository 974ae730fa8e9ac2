package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"meeting-summarizer/config"
	"meeting-summarizer/repository"
	"os"
)

func migrate(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create or update the meetings table",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
			ctx := logger.WithContext(cmd.Context())

			repo, err := repository.NewRepo(config.DB)
			if err != nil {
				return err
			}
			if err := repo.Migrate(ctx); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("migration failed")
				return err
			}
			zerolog.Ctx(ctx).Info().Msg("migration complete")
			return config.DB.Close()
		},
	}
}
