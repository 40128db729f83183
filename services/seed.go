package services

import (
	"fmt"
	"io"
	"strings"

	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// CatalogSeed is the layout of the catalog YAML file
type CatalogSeed struct {
	Categorias []struct {
		Nombre string   `yaml:"nombre"`
		Temas  []string `yaml:"temas"`
	} `yaml:"categorias"`
	Indicadores        []string `yaml:"indicadores"`
	Fuentes            []string `yaml:"fuentes"`
	Years              []int    `yaml:"years"`
	Fichas             []int    `yaml:"fichas"`
	TiposDesegregacion []struct {
		Nombre          string   `yaml:"nombre"`
		Desegregaciones []string `yaml:"desegregaciones"`
	} `yaml:"tipos_desegregacion"`
}

// SeedReport counts the rows a seed run inserted
type SeedReport struct {
	Created map[string]int
}

func (r *SeedReport) add(table string, created bool) {
	if created {
		r.Created[table]++
	}
}

// ParseCatalogSeed decodes a catalog file, rejecting unknown keys
func ParseCatalogSeed(r io.Reader) (*CatalogSeed, error) {
	var seed CatalogSeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, validationf("invalid catalog file: %v", err)
	}
	return &seed, nil
}

// SeedCatalog find-or-creates every catalog entry by name in one
// transaction. Running it twice creates nothing the second time.
func SeedCatalog(db *gorm.DB, seed *CatalogSeed) (*SeedReport, error) {
	report := &SeedReport{Created: map[string]int{}}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range seed.Categorias {
			categoria := models.Categoria{Categoria: strings.TrimSpace(c.Nombre)}
			created, err := findOrCreate(tx, &categoria, "categoria = ?", categoria.Categoria)
			if err != nil {
				return err
			}
			report.add("categoria", created)

			for _, name := range c.Temas {
				tema := models.Tema{Tema: strings.TrimSpace(name), CategoriaID: categoria.ID}
				created, err := findOrCreate(tx, &tema, "tema = ? AND categoria_id = ?", tema.Tema, categoria.ID)
				if err != nil {
					return err
				}
				report.add("tema", created)
			}
		}

		for _, name := range seed.Indicadores {
			row := models.Indicador{Indicador: strings.TrimSpace(name)}
			created, err := findOrCreate(tx, &row, "indicador = ?", row.Indicador)
			if err != nil {
				return err
			}
			report.add("indicador", created)
		}

		for _, name := range seed.Fuentes {
			row := models.Fuente{Fuente: strings.TrimSpace(name)}
			created, err := findOrCreate(tx, &row, "fuente = ?", row.Fuente)
			if err != nil {
				return err
			}
			report.add("fuente", created)
		}

		for _, y := range seed.Years {
			row := models.Year{Year: y}
			created, err := findOrCreate(tx, &row, "year = ?", y)
			if err != nil {
				return err
			}
			report.add("year", created)
		}

		for _, n := range seed.Fichas {
			row := models.FichaMetodologica{Ficha: n}
			created, err := findOrCreate(tx, &row, "ficha = ?", n)
			if err != nil {
				return err
			}
			report.add("ficha_metodologica", created)
		}

		for _, t := range seed.TiposDesegregacion {
			tipo := models.TipoDesegregacion{TipoDesegregacion: strings.TrimSpace(t.Nombre)}
			created, err := findOrCreate(tx, &tipo, "tipo_desegregacion = ?", tipo.TipoDesegregacion)
			if err != nil {
				return err
			}
			report.add("tipo_desegregacion", created)

			for _, name := range t.Desegregaciones {
				row := models.Desegregacion{Desegregacion: strings.TrimSpace(name), TipoDesegregacionID: tipo.ID}
				created, err := findOrCreate(tx, &row, "desegregacion = ? AND tipo_desegregacion_id = ?", row.Desegregacion, tipo.ID)
				if err != nil {
					return err
				}
				report.add("desegregacion", created)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Named("seed").Info("catalog seeded", zap.Any("created", report.Created))
	return report, nil
}

// findOrCreate loads the live row matching query into row, inserting row
// when there is none.
func findOrCreate[T any](tx *gorm.DB, row *T, query string, args ...interface{}) (bool, error) {
	result := tx.Where(query, args...).Limit(1).Find(row)
	if result.Error != nil {
		return false, fmt.Errorf("failed to look up seed row: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	if err := tx.Create(row).Error; err != nil {
		return false, translateStoreError(err, "seed catalog", "duplicate catalog entry")
	}
	return true, nil
}
