package commands

import (
	"fmt"
	"os"

	"jacha_aru_api_go/config"
	"jacha_aru_api_go/db"
	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jacha-admin",
	Short: "Administrative tasks for the Jacha Aru API",
	Long: `jacha-admin runs maintenance tasks against the configured database.

It reads the same environment (and .env file) as the API server. Every
command migrates the schema before running.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if logLevel == "" {
			logLevel = cfg.LogLevel
		}
		logger.Init(logger.Config{Environment: cfg.Environment, Level: logLevel, Service: "jacha-admin"})

		if err := db.Initialize(cfg); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		return db.Close()
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
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (defaults to LOG_LEVEL)")
}
