package services

import (
	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const (
	labelTipoDesegregacion = "TipoDesegregacion"
	labelDesegregacion     = "Desegregacion"
)

type TipoDesegregacionInput struct {
	TipoDesegregacion string
}

type TipoDesegregacionUpdate struct {
	TipoDesegregacion *string
	Status            *models.RecordStatus
}

func GetTiposDesegregacion(db *gorm.DB) ([]models.TipoDesegregacion, error) {
	return findAll[models.TipoDesegregacion](db, "tipo_desegregacion ASC", "Desegregaciones")
}

func GetTipoDesegregacionByID(db *gorm.DB, id uint) (*models.TipoDesegregacion, error) {
	return findOne[models.TipoDesegregacion](db, labelTipoDesegregacion, id, "Desegregaciones", "TipoDesegregacionIndicadores.Indicador")
}

func CreateTipoDesegregacion(db *gorm.DB, input TipoDesegregacionInput) (*models.TipoDesegregacion, error) {
	tipo := &models.TipoDesegregacion{TipoDesegregacion: input.TipoDesegregacion}
	if err := createRecord(db, labelTipoDesegregacion, tipo, "tipo desegregacion already exists"); err != nil {
		return nil, err
	}
	return GetTipoDesegregacionByID(db, tipo.ID)
}

func UpdateTipoDesegregacion(db *gorm.DB, id uint, input TipoDesegregacionUpdate) (*models.TipoDesegregacion, error) {
	if _, err := GetTipoDesegregacionByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "tipo_desegregacion", input.TipoDesegregacion)
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.TipoDesegregacion](db, labelTipoDesegregacion, id, updates, "tipo desegregacion already exists"); err != nil {
		return nil, err
	}
	return GetTipoDesegregacionByID(db, id)
}

func DeleteTipoDesegregacion(db *gorm.DB, id uint) error {
	return removeRecord[models.TipoDesegregacion](db, labelTipoDesegregacion, id, nil,
		blocker{"desegregaciones", &models.Desegregacion{}, "tipo_desegregacion_id"},
		blocker{"tipo desegregacion indicadores", &models.TipoDesegregacionIndicador{}, "tipo_desegregacion_id"},
	)
}

// DesegregacionInput creates a desegregacion; YearIDs are linked when non-nil
type DesegregacionInput struct {
	Desegregacion       string
	TipoDesegregacionID uint
	YearIDs             []uint
}

type DesegregacionUpdate struct {
	Desegregacion       *string
	TipoDesegregacionID *uint
	Status              *models.RecordStatus
	YearIDs             []uint
}

func GetDesegregaciones(db *gorm.DB) ([]models.Desegregacion, error) {
	return findAll[models.Desegregacion](db, "desegregacion ASC", "TipoDesegregacion")
}

// GetDesegregacionesByTipo returns the desegregaciones of an existing tipo
func GetDesegregacionesByTipo(db *gorm.DB, tipoID uint) ([]models.Desegregacion, error) {
	if err := requireRefs(db, ref{labelTipoDesegregacion, &models.TipoDesegregacion{}, tipoID}); err != nil {
		return nil, err
	}
	return findAll[models.Desegregacion](db.Where("tipo_desegregacion_id = ?", tipoID), "desegregacion ASC", "TipoDesegregacion")
}

func GetDesegregacionByID(db *gorm.DB, id uint) (*models.Desegregacion, error) {
	return findOne[models.Desegregacion](db, labelDesegregacion, id, "TipoDesegregacion", "YearDesegregaciones.Year")
}

func CreateDesegregacion(db *gorm.DB, input DesegregacionInput) (*models.Desegregacion, error) {
	if err := requireRefs(db, ref{labelTipoDesegregacion, &models.TipoDesegregacion{}, input.TipoDesegregacionID}); err != nil {
		return nil, err
	}

	desegregacion := &models.Desegregacion{
		Desegregacion:       input.Desegregacion,
		TipoDesegregacionID: input.TipoDesegregacionID,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := createRecord(tx, labelDesegregacion, desegregacion, "desegregacion already exists"); err != nil {
			return err
		}
		return replaceDesegregacionYears(tx, desegregacion.ID, input.YearIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetDesegregacionByID(db, desegregacion.ID)
}

func UpdateDesegregacion(db *gorm.DB, id uint, input DesegregacionUpdate) (*models.Desegregacion, error) {
	if _, err := GetDesegregacionByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "desegregacion", input.Desegregacion)
	if input.TipoDesegregacionID != nil {
		if err := requireRefs(db, ref{labelTipoDesegregacion, &models.TipoDesegregacion{}, *input.TipoDesegregacionID}); err != nil {
			return nil, err
		}
		updates["tipo_desegregacion_id"] = *input.TipoDesegregacionID
	}
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := applyUpdates[models.Desegregacion](tx, labelDesegregacion, id, updates, "desegregacion already exists"); err != nil {
			return err
		}
		return replaceDesegregacionYears(tx, id, input.YearIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetDesegregacionByID(db, id)
}

func replaceDesegregacionYears(tx *gorm.DB, desegregacionID uint, yearIDs []uint) error {
	if yearIDs == nil {
		return nil
	}
	if err := requireIDs(tx, labelYear, &models.Year{}, yearIDs); err != nil {
		return err
	}
	return replaceLinks(tx, "desegregacion_id", desegregacionID, yearIDs, func(yearID uint) models.YearDesegregacion {
		return models.YearDesegregacion{DesegregacionID: desegregacionID, YearID: yearID}
	})
}

func DeleteDesegregacion(db *gorm.DB, id uint) error {
	return removeRecord[models.Desegregacion](db, labelDesegregacion, id, nil,
		blocker{"filtros", &models.Filtro{}, "desegregacion_id"},
		blocker{"year desegregaciones", &models.YearDesegregacion{}, "desegregacion_id"},
	)
}
