package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-orm/internal/config"
	"github.com/light-bringer/procat-orm/internal/logger"
	"github.com/light-bringer/procat-orm/internal/services"
)

func newMigrateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the product and post tables on the configured engine",
		Long: `Create the product and post tables on the configured engine, whatever
the auto_migrate settings say. Existing tables are kept. With the Spanner
emulator the instance and database are created first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			cfg.Database.AutoMigrate = true
			cfg.Spanner.AutoMigrate = true

			log := logger.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
			ctx := logger.WithContext(cmd.Context(), log)

			svc, err := services.NewServiceOptions(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			svc.Close()

			if cfg.Engine == config.EngineMemory {
				log.Info().Msg("memory engine has no schema")
				return nil
			}
			log.Info().Str("engine", cfg.Engine).Msg("migrations completed")
			return nil
		},
	}
}
