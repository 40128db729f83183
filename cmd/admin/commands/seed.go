package commands

import (
	"fmt"
	"os"
	"sort"

	"jacha_aru_api_go/db"
	"jacha_aru_api_go/services"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load catalog rows from a YAML file",
	Long: `Load categorias, temas, indicadores, fuentes, years, fichas and
desegregaciones from a YAML file. Rows that already exist are left alone,
so the command can be re-run safely.

Example:
  jacha-admin seed --file catalog.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		seed, err := services.ParseCatalogSeed(f)
		if err != nil {
			return err
		}
		report, err := services.SeedCatalog(db.DB, seed)
		if err != nil {
			return err
		}

		tables := make([]string, 0, len(report.Created))
		for table := range report.Created {
			tables = append(tables, table)
		}
		sort.Strings(tables)

		out := cmd.OutOrStdout()
		if len(tables) == 0 {
			fmt.Fprintln(out, "catalog already up to date")
			return nil
		}
		for _, table := range tables {
			fmt.Fprintf(out, "%-20s %d created\n", table, report.Created[table])
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Catalog YAML file")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}
