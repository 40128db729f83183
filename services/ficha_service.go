package services

import (
	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const labelFicha = "FichaMetodologica"

// FichaInput creates a ficha metodologica; FuenteIDs are linked when non-nil
type FichaInput struct {
	Ficha     int
	FuenteIDs []uint
}

type FichaUpdate struct {
	Ficha     *int
	Status    *models.RecordStatus
	FuenteIDs []uint
}

func GetFichas(db *gorm.DB) ([]models.FichaMetodologica, error) {
	return findAll[models.FichaMetodologica](db, "ficha ASC", "FichaFuentes.Fuente")
}

func GetFichaByID(db *gorm.DB, id uint) (*models.FichaMetodologica, error) {
	return findOne[models.FichaMetodologica](db, labelFicha, id, "FichaFuentes.Fuente")
}

func CreateFicha(db *gorm.DB, input FichaInput) (*models.FichaMetodologica, error) {
	ficha := &models.FichaMetodologica{Ficha: input.Ficha}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := createRecord(tx, labelFicha, ficha, "ficha already exists"); err != nil {
			return err
		}
		return replaceFichaFuentes(tx, ficha.ID, input.FuenteIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetFichaByID(db, ficha.ID)
}

func UpdateFicha(db *gorm.DB, id uint, input FichaUpdate) (*models.FichaMetodologica, error) {
	if _, err := GetFichaByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "ficha", input.Ficha)
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := applyUpdates[models.FichaMetodologica](tx, labelFicha, id, updates, "ficha already exists"); err != nil {
			return err
		}
		return replaceFichaFuentes(tx, id, input.FuenteIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetFichaByID(db, id)
}

func replaceFichaFuentes(tx *gorm.DB, fichaID uint, fuenteIDs []uint) error {
	if fuenteIDs == nil {
		return nil
	}
	if err := requireIDs(tx, labelFuente, &models.Fuente{}, fuenteIDs); err != nil {
		return err
	}
	return replaceLinks(tx, "ficha_metodologica_id", fichaID, fuenteIDs, func(fuenteID uint) models.FichaFuente {
		return models.FichaFuente{FichaMetodologicaID: fichaID, FuenteID: fuenteID}
	})
}

func DeleteFicha(db *gorm.DB, id uint) error {
	return removeRecord[models.FichaMetodologica](db, labelFicha, id, nil,
		blocker{"filtros", &models.Filtro{}, "ficha_metodologica_id"},
		blocker{"ficha fuentes", &models.FichaFuente{}, "ficha_metodologica_id"},
	)
}
