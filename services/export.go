package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// FiltrosSheet is the sheet name of the filtro export workbook
const FiltrosSheet = "Filtros"

var filtroExportHeader = []interface{}{
	"ID", "Categoria", "Tema", "Indicador", "Desegregacion", "Year", "Fuente", "Ficha", "Status",
}

// ExportFiltros renders every live filtro, with its taxonomy names, as an xlsx workbook
func ExportFiltros(db *gorm.DB, filters FiltroFilters) (*bytes.Buffer, error) {
	filtros, err := GetFiltros(db, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", FiltrosSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(FiltrosSheet, "A1", &filtroExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, filtro := range filtros {
		row := []interface{}{filtro.ID, "", "", "", "", "", "", "", string(filtro.Status)}
		if filtro.Categoria != nil {
			row[1] = filtro.Categoria.Categoria
		}
		if filtro.Tema != nil {
			row[2] = filtro.Tema.Tema
		}
		if filtro.Indicador != nil {
			row[3] = filtro.Indicador.Indicador
		}
		if filtro.Desegregacion != nil {
			row[4] = filtro.Desegregacion.Desegregacion
		}
		if filtro.Year != nil {
			row[5] = filtro.Year.Year
		}
		if filtro.Fuente != nil {
			row[6] = filtro.Fuente.Fuente
		}
		if filtro.FichaMetodologica != nil {
			row[7] = filtro.FichaMetodologica.Ficha
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(FiltrosSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write filtro %d: %w", filtro.ID, err)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(FiltrosSheet, "A1", "I1", headerStyle)
	f.SetColWidth(FiltrosSheet, "B", "G", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}
