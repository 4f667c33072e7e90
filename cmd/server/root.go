package main

import (
	"context"
	"fmt"
	"os"

	"dining-reviews/internal/config"
	"dining-reviews/internal/database"
	"dining-reviews/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dining-reviews",
	Short: "Campus dining hall review service",
	Long: `Serves the dining reviews REST API: accounts, reviews of the campus
dining halls, review photos and a live review feed.

Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to settings.yml (default: search ./configs and /configs)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// loadConfig reads configuration and sets up the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, nil
}

// openStore connects, pings and brings the schema up to date.
func openStore(ctx context.Context, cfg *config.Config) (*database.Store, error) {
	pool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	store := database.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return store, nil
}
