package services

import (
	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const labelFuente = "Fuente"

// FuenteInput creates a fuente; YearIDs are linked when non-nil
type FuenteInput struct {
	Fuente  string
	YearIDs []uint
}

type FuenteUpdate struct {
	Fuente  *string
	Status  *models.RecordStatus
	YearIDs []uint
}

func GetFuentes(db *gorm.DB) ([]models.Fuente, error) {
	return findAll[models.Fuente](db, "fuente ASC", "FuenteYears.Year")
}

func GetFuenteByID(db *gorm.DB, id uint) (*models.Fuente, error) {
	return findOne[models.Fuente](db, labelFuente, id, "FuenteYears.Year", "FichaFuentes.FichaMetodologica")
}

func CreateFuente(db *gorm.DB, input FuenteInput) (*models.Fuente, error) {
	fuente := &models.Fuente{Fuente: input.Fuente}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := createRecord(tx, labelFuente, fuente, "fuente already exists"); err != nil {
			return err
		}
		return replaceFuenteYears(tx, fuente.ID, input.YearIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetFuenteByID(db, fuente.ID)
}

func UpdateFuente(db *gorm.DB, id uint, input FuenteUpdate) (*models.Fuente, error) {
	if _, err := GetFuenteByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "fuente", input.Fuente)
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := applyUpdates[models.Fuente](tx, labelFuente, id, updates, "fuente already exists"); err != nil {
			return err
		}
		return replaceFuenteYears(tx, id, input.YearIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetFuenteByID(db, id)
}

func replaceFuenteYears(tx *gorm.DB, fuenteID uint, yearIDs []uint) error {
	if yearIDs == nil {
		return nil
	}
	if err := requireIDs(tx, labelYear, &models.Year{}, yearIDs); err != nil {
		return err
	}
	return replaceLinks(tx, "fuente_id", fuenteID, yearIDs, func(yearID uint) models.FuenteYear {
		return models.FuenteYear{FuenteID: fuenteID, YearID: yearID}
	})
}

func DeleteFuente(db *gorm.DB, id uint) error {
	return removeRecord[models.Fuente](db, labelFuente, id, nil,
		blocker{"filtros", &models.Filtro{}, "fuente_id"},
		blocker{"fuente years", &models.FuenteYear{}, "fuente_id"},
		blocker{"ficha fuentes", &models.FichaFuente{}, "fuente_id"},
	)
}
