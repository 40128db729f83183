package services

import (
	"errors"
	"fmt"

	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const (
	labelFiltro        = "Filtro"
	duplicateFiltroMsg = "a filtro with the same combination already exists"
)

// FiltroInput is the seven-dimension combination of a new filtro
type FiltroInput struct {
	CategoriaID         uint
	TemaID              uint
	IndicadorID         uint
	DesegregacionID     uint
	YearID              uint
	FuenteID            uint
	FichaMetodologicaID uint
}

type FiltroUpdate struct {
	CategoriaID         *uint
	TemaID              *uint
	IndicadorID         *uint
	DesegregacionID     *uint
	YearID              *uint
	FuenteID            *uint
	FichaMetodologicaID *uint
	Status              *models.RecordStatus
}

// FiltroFilters narrows GetFiltros; zero values are ignored
type FiltroFilters struct {
	CategoriaID uint
	TemaID      uint
}

var filtroRelations = []string{
	"Categoria",
	"Tema",
	"Indicador",
	"Desegregacion.TipoDesegregacion",
	"Year",
	"Fuente",
	"FichaMetodologica",
}

// GetFiltros returns filtros newest first, optionally by categoria and/or tema
func GetFiltros(db *gorm.DB, filters FiltroFilters) ([]models.Filtro, error) {
	query := db
	if filters.CategoriaID != 0 {
		query = query.Where("categoria_id = ?", filters.CategoriaID)
	}
	if filters.TemaID != 0 {
		query = query.Where("tema_id = ?", filters.TemaID)
	}
	return findAll[models.Filtro](query, "id DESC", filtroRelations...)
}

func GetFiltroByID(db *gorm.DB, id uint) (*models.Filtro, error) {
	return findOne[models.Filtro](db, labelFiltro, id, filtroRelations...)
}

// CreateFiltro inserts a filtro after checking its combination is unused
func CreateFiltro(db *gorm.DB, input FiltroInput) (*models.Filtro, error) {
	filtro := &models.Filtro{
		CategoriaID:         input.CategoriaID,
		TemaID:              input.TemaID,
		IndicadorID:         input.IndicadorID,
		DesegregacionID:     input.DesegregacionID,
		YearID:              input.YearID,
		FuenteID:            input.FuenteID,
		FichaMetodologicaID: input.FichaMetodologicaID,
	}

	if err := requireFiltroRefs(db, filtro.Key()); err != nil {
		return nil, err
	}
	if err := ensureUniqueFiltro(db, filtro.Key(), 0); err != nil {
		return nil, err
	}
	if err := createRecord(db, labelFiltro, filtro, duplicateFiltroMsg); err != nil {
		return nil, err
	}
	return GetFiltroByID(db, filtro.ID)
}

// UpdateFiltro merges the supplied dimensions over the current ones and
// checks the resulting combination against every other filtro.
func UpdateFiltro(db *gorm.DB, id uint, input FiltroUpdate) (*models.Filtro, error) {
	current, err := findOne[models.Filtro](db, labelFiltro, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	updates := map[string]interface{}{}
	mergeKey := func(column string, value *uint, target *uint) {
		if value != nil {
			*target = *value
			updates[column] = *value
		}
	}
	mergeKey("categoria_id", input.CategoriaID, &merged.CategoriaID)
	mergeKey("tema_id", input.TemaID, &merged.TemaID)
	mergeKey("indicador_id", input.IndicadorID, &merged.IndicadorID)
	mergeKey("desegregacion_id", input.DesegregacionID, &merged.DesegregacionID)
	mergeKey("year_id", input.YearID, &merged.YearID)
	mergeKey("fuente_id", input.FuenteID, &merged.FuenteID)
	mergeKey("ficha_metodologica_id", input.FichaMetodologicaID, &merged.FichaMetodologicaID)

	if len(updates) > 0 {
		if err := requireFiltroRefs(db, merged.Key()); err != nil {
			return nil, err
		}
	}
	if err := ensureUniqueFiltro(db, merged.Key(), id); err != nil {
		return nil, err
	}
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.Filtro](db, labelFiltro, id, updates, duplicateFiltroMsg); err != nil {
		return nil, err
	}
	return GetFiltroByID(db, id)
}

// DeleteFiltro soft-deletes a filtro no consulta references
func DeleteFiltro(db *gorm.DB, id uint) error {
	return removeRecord[models.Filtro](db, labelFiltro, id, nil,
		blocker{"consultas filtros", &models.ConsultaFiltro{}, "filtro_id"},
		blocker{"consultas rapidas", &models.ConsultaRapida{}, "filtro_id"},
	)
}

// ensureUniqueFiltro fails with ErrConflict when another non-deleted filtro
// has the same combination. excludeID skips the filtro being updated.
func ensureUniqueFiltro(db *gorm.DB, key models.FiltroKey, excludeID uint) error {
	query := db.Where(map[string]interface{}{
		"categoria_id":          key.CategoriaID,
		"tema_id":               key.TemaID,
		"indicador_id":          key.IndicadorID,
		"desegregacion_id":      key.DesegregacionID,
		"year_id":               key.YearID,
		"fuente_id":             key.FuenteID,
		"ficha_metodologica_id": key.FichaMetodologicaID,
	})
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var existing models.Filtro
	err := query.First(&existing).Error
	switch {
	case err == nil:
		return conflictf("%s (ID %d)", duplicateFiltroMsg, existing.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check filtro combination: %w", err)
	}
}

func requireFiltroRefs(db *gorm.DB, key models.FiltroKey) error {
	return requireRefs(db,
		ref{labelCategoria, &models.Categoria{}, key.CategoriaID},
		ref{labelTema, &models.Tema{}, key.TemaID},
		ref{labelIndicador, &models.Indicador{}, key.IndicadorID},
		ref{labelDesegregacion, &models.Desegregacion{}, key.DesegregacionID},
		ref{labelYear, &models.Year{}, key.YearID},
		ref{labelFuente, &models.Fuente{}, key.FuenteID},
		ref{labelFicha, &models.FichaMetodologica{}, key.FichaMetodologicaID},
	)
}
