// Package cmd holds the answerq command line.
package cmd

import (
	"context"
	"fmt"
	"log"

	"answerq/internal/data/repository"
	"answerq/internal/wire"
	"answerq/pkg/database"
	"answerq/pkg/mailer"
	"answerq/pkg/token"
	"answerq/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand builds the answerq CLI with its serve and migrate subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "answerq",
		Short:         "answerq survey backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCommand(), newMigrateCommand())
	return rootCmd
}

// Execute runs the root command and exits on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Fatalf("answerq: %v", err)
	}
}

func newServeCommand() *cobra.Command {
	var skipMigrate bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "apply migrations and run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), !skipMigrate)
		},
	}

	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations on startup")
	return serveCmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "run database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			config, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.InitDB(cmd.Context(), config.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db.Pool(), command); err != nil {
				return err
			}
			logger.Info("Migration finished", zap.String("command", command))
			return nil
		},
	}
}

// bootstrap loads config and builds the logger, falling back to a production
// logger when the log directory is unusable.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	return config, logger, nil
}

func serve(ctx context.Context, migrate bool) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("mail_enabled", config.Email.Enabled),
	)

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if migrate {
		if err := database.Migrate(ctx, db.Pool(), "up"); err != nil {
			return err
		}
	}

	repos := repository.NewRepository(db, logger)

	var sender mailer.Sender
	if config.Email.Enabled {
		sender = mailer.NewSMTPSender(config.Email)
	} else {
		logger.Warn("Mail delivery disabled, notifications are logged only")
		sender = mailer.NewLogSender(logger)
	}
	dispatcher := mailer.NewDispatcher(sender, config.Email.Timeout, logger)

	composer, err := mailer.NewComposer(config.App.Name)
	if err != nil {
		return fmt.Errorf("load mail templates: %w", err)
	}

	issuer := token.NewIssuer(config.JWT.Secret, config.JWT.Expiry, config.App.Name)

	app := wire.Wiring(repos, dispatcher, composer, issuer, config, logger)

	if err := APIServer(ctx, app.Router, config.App.Port, config.App.RequestTimeout, logger); err != nil {
		return err
	}

	// Let queued notifications finish before the pool closes.
	dispatcher.Wait()
	logger.Info("Application stopped")
	return nil
}
