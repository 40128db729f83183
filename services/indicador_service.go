package services

import (
	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const labelIndicador = "Indicador"

// IndicadorInput creates an indicador. TemaIDs and TipoDesegregacionIDs are
// applied when non-nil.
type IndicadorInput struct {
	Indicador            string
	TemaIDs              []uint
	TipoDesegregacionIDs []uint
}

// IndicadorUpdate is a partial update. A nil id list leaves those links
// untouched; an empty one clears them.
type IndicadorUpdate struct {
	Indicador            *string
	Status               *models.RecordStatus
	TemaIDs              []uint
	TipoDesegregacionIDs []uint
}

var indicadorRelations = []string{
	"IndicadorTemas.Tema.Categoria",
	"TipoDesegregacionIndicadores.TipoDesegregacion",
}

func GetIndicadores(db *gorm.DB) ([]models.Indicador, error) {
	return findAll[models.Indicador](db, "indicador ASC", "IndicadorTemas.Tema.Categoria")
}

func GetIndicadorByID(db *gorm.DB, id uint) (*models.Indicador, error) {
	return findOne[models.Indicador](db, labelIndicador, id, indicadorRelations...)
}

// GetIndicadoresByTema returns the indicadores linked to an existing tema
func GetIndicadoresByTema(db *gorm.DB, temaID uint) ([]models.Indicador, error) {
	if err := requireRefs(db, ref{labelTema, &models.Tema{}, temaID}); err != nil {
		return nil, err
	}
	query := db.Joins("JOIN indicador_tema ON indicador_tema.indicador_id = indicador.id AND indicador_tema.deleted_at IS NULL").
		Where("indicador_tema.tema_id = ?", temaID)
	return findAll[models.Indicador](query, "indicador.indicador ASC")
}

func CreateIndicador(db *gorm.DB, input IndicadorInput) (*models.Indicador, error) {
	indicador := &models.Indicador{Indicador: input.Indicador}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := createRecord(tx, labelIndicador, indicador, "indicador already exists"); err != nil {
			return err
		}
		return replaceIndicadorLinks(tx, indicador.ID, input.TemaIDs, input.TipoDesegregacionIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetIndicadorByID(db, indicador.ID)
}

func UpdateIndicador(db *gorm.DB, id uint, input IndicadorUpdate) (*models.Indicador, error) {
	if _, err := GetIndicadorByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "indicador", input.Indicador)
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := applyUpdates[models.Indicador](tx, labelIndicador, id, updates, "indicador already exists"); err != nil {
			return err
		}
		return replaceIndicadorLinks(tx, id, input.TemaIDs, input.TipoDesegregacionIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetIndicadorByID(db, id)
}

func replaceIndicadorLinks(tx *gorm.DB, indicadorID uint, temaIDs, tipoIDs []uint) error {
	if temaIDs != nil {
		if err := requireIDs(tx, labelTema, &models.Tema{}, temaIDs); err != nil {
			return err
		}
		err := replaceLinks(tx, "indicador_id", indicadorID, temaIDs, func(temaID uint) models.IndicadorTema {
			return models.IndicadorTema{IndicadorID: indicadorID, TemaID: temaID}
		})
		if err != nil {
			return err
		}
	}
	if tipoIDs != nil {
		if err := requireIDs(tx, labelTipoDesegregacion, &models.TipoDesegregacion{}, tipoIDs); err != nil {
			return err
		}
		return replaceLinks(tx, "indicador_id", indicadorID, tipoIDs, func(tipoID uint) models.TipoDesegregacionIndicador {
			return models.TipoDesegregacionIndicador{IndicadorID: indicadorID, TipoDesegregacionID: tipoID}
		})
	}
	return nil
}

// DeleteIndicador soft-deletes an indicador with no filtros or links
func DeleteIndicador(db *gorm.DB, id uint) error {
	return removeRecord[models.Indicador](db, labelIndicador, id, nil,
		blocker{"filtros", &models.Filtro{}, "indicador_id"},
		blocker{"indicador temas", &models.IndicadorTema{}, "indicador_id"},
		blocker{"tipo desegregacion indicadores", &models.TipoDesegregacionIndicador{}, "indicador_id"},
	)
}
