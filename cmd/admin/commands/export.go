package commands

import (
	"fmt"
	"os"

	"jacha_aru_api_go/db"
	"jacha_aru_api_go/services"

	"github.com/spf13/cobra"
)

var (
	// Export flags
	exportOut         string
	exportCategoriaID uint
	exportTemaID      uint
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtro catalog to an .xlsx workbook",
	Long: `Write every live filtro, optionally narrowed by categoria and tema, to an
Excel workbook.

Examples:
  jacha-admin export --out filtros.xlsx
  jacha-admin export --out salud.xlsx --categoria 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := services.ExportFiltros(db.DB, services.FiltroFilters{
			CategoriaID: exportCategoriaID,
			TemaID:      exportTemaID,
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", exportOut, buf.Len())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "filtros.xlsx", "Output file")
	exportCmd.Flags().UintVar(&exportCategoriaID, "categoria", 0, "Only filtros of this categoria")
	exportCmd.Flags().UintVar(&exportTemaID, "tema", 0, "Only filtros of this tema")
	rootCmd.AddCommand(exportCmd)
}
