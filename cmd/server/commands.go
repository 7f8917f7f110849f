package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phrazzld/books-api/internal/config"
	"github.com/phrazzld/books-api/internal/platform/logger"
	"github.com/phrazzld/books-api/internal/platform/postgres"
	"github.com/phrazzld/books-api/internal/schema"
	"github.com/phrazzld/books-api/internal/seed"
)

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "server",
		Short:         "Books API server",
		Long:          "Serves the books CRUD API and runs its database maintenance tasks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "",
		"config file path (default: $"+config.ConfigFileEnv+")")

	root.AddCommand(
		newServeCmd(c),
		newMigrateCmd(c),
		newSeedCmd(c),
	)
	return root
}

// load reads configuration and sets up structured logging.
func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	c.cfg = cfg
	c.logger = log
	return nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func newServeCmd(c *cli) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			db, err := setupAppDatabase(ctx, c.cfg.Database, c.logger)
			if err != nil {
				return err
			}

			if migrate {
				if err := postgres.Migrate(ctx, db, postgres.MigrateUp, c.logger); err != nil {
					_ = db.Close()
					return err
				}
			}

			app, err := newApplication(c.cfg, c.logger, db)
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd(c *cli) *cobra.Command {
	commands := []string{
		postgres.MigrateUp,
		postgres.MigrateDown,
		postgres.MigrateStatus,
		postgres.MigrateVersion,
		postgres.MigrateReset,
	}

	return &cobra.Command{
		Use:       "migrate {up|down|status|version|reset}",
		Short:     "Run database migrations",
		ValidArgs: commands,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			db, err := setupAppDatabase(ctx, c.cfg.Database, c.logger)
			if err != nil {
				return err
			}
			defer closeDatabase(db, c.logger)

			return postgres.Migrate(ctx, db, args[0], c.logger)
		},
	}
}

func newSeedCmd(c *cli) *cobra.Command {
	var (
		file string
		opts seed.Options
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load book fixtures from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			db, err := setupAppDatabase(ctx, c.cfg.Database, c.logger)
			if err != nil {
				return err
			}
			defer closeDatabase(db, c.logger)

			books := postgres.NewPostgresBookStore(db, c.logger, c.cfg.Database.QueryTimeout)
			seeder := seed.NewSeeder(db, books, schema.NewBookSchema(c.cfg.Schema.MaxYear), c.logger)

			result, err := seeder.Run(ctx, payloads, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, skipped %d\n", result.Inserted, result.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML fixture file")
	cmd.Flags().BoolVar(&opts.SkipExisting, "skip-existing", false, "skip books whose isbn already exists")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
