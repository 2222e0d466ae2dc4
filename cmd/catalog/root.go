package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-orm/internal/config"
	"github.com/light-bringer/procat-orm/internal/logger"
	"github.com/light-bringer/procat-orm/internal/services"
)

const engineFlag = "engine"

type configLoader func() (*config.Config, error)

// cli carries what every subcommand needs to reach the engine.
type cli struct {
	load   configLoader
	engine string
}

func newRootCommand(load configLoader) *cobra.Command {
	c := &cli{load: load}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Manage products and posts on a pluggable storage engine",
		Long: `Manage products and posts on a pluggable storage engine.

The engine and its connection settings come from CATALOG_* environment
variables (or a .env file). --engine overrides CATALOG_ENGINE.

Examples:
  catalog product seed --engine postgres
  catalog product add --name 정장 --price 50000 --category FASHION
  catalog post seed --count 10`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.engine, engineFlag, "",
		"Storage engine (memory, postgres, mysql, spanner); overrides CATALOG_ENGINE")

	root.AddCommand(newProductCommand(c))
	root.AddCommand(newPostCommand(c))
	root.AddCommand(newMigrateCommand(c))
	return root
}

// config loads the configuration and applies the --engine override.
func (c *cli) config() (*config.Config, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, err
	}
	if c.engine != "" {
		cfg.Engine = strings.ToLower(c.engine)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// services opens the configured engine. The logger is attached to the
// command context so use cases log through zerolog.Ctx.
func (c *cli) services(cmd *cobra.Command) (*services.ServiceOptions, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
	ctx := logger.WithContext(cmd.Context(), log)
	cmd.SetContext(ctx)

	opts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s engine: %w", cfg.Engine, err)
	}
	return opts, nil
}

// run opens the engine, calls fn and closes the engine again.
func (c *cli) run(fn func(cmd *cobra.Command, args []string, svc *services.ServiceOptions) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := c.services(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := fn(cmd, args, svc); err != nil {
			zerolog.Ctx(cmd.Context()).Error().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
			return err
		}
		return nil
	}
}
