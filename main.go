package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Billy-Davies-2/expansion-draft/internal/config"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

func newRootCmd() *cobra.Command {
	cfg := config.FromEnv()

	rootCmd := &cobra.Command{
		Use:   "expansion-draft",
		Short: "Expansion draft coordinator for a dynasty fantasy football league",
		Long: `expansion-draft serves the protection and expansion draft API for a
Sleeper league. Owners protect players, the remaining players form the
pool, and expansion teams pick from it in snake order.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Blob store: memory, sqlite, postgres, redis (env: DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SQLiteFile, "sqlite-file", cfg.SQLiteFile, "SQLite database file (env: SQLITE_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string (env: DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Environment, "environment", cfg.Environment, "development or production (env: ENVIRONMENT)")

	serve := newServeCmd(&cfg)
	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newResetCmd(&cfg))
	rootCmd.AddCommand(newRulesCmd(&cfg))

	// serve is the default
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
