package commands

import (
	"fmt"

	"jacha_aru_api_go/models"

	"github.com/spf13/cobra"
)

// migrateCmd only needs the root pre-run, which migrates
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%d tables, driver %s)\n", len(models.All()), cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
