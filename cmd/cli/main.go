package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/radiol/optiroster/internal/config"
	"github.com/radiol/optiroster/pkg/db"
	"github.com/radiol/optiroster/pkg/postgres"
	"github.com/radiol/optiroster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	store  db.RosterStore
	logger *zap.Logger
	runID  string
	ctx    context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "OptiRoster CLI - Compute monthly duty rosters",
		Long:  `A CLI tool for computing monthly hospital duty rosters by mixed-integer optimization.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(rulesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the optional roster store
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, app.runID, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application")

	app.logger.Debug("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	// Persistence is optional; without a database URL results are only printed
	if app.cfg.DatabaseURL != "" {
		app.logger.Debug("Connecting to database")
		store, err := postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.store = store
		app.logger.Debug("Database initialized successfully")
	}

	return nil
}
