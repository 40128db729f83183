package services

import (
	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const labelYear = "Year"

type YearInput struct {
	Year int
}

type YearUpdate struct {
	Year   *int
	Status *models.RecordStatus
}

// GetYears returns all years, most recent first
func GetYears(db *gorm.DB) ([]models.Year, error) {
	return findAll[models.Year](db, "year DESC")
}

func GetYearByID(db *gorm.DB, id uint) (*models.Year, error) {
	return findOne[models.Year](db, labelYear, id, "FuenteYears.Fuente")
}

func CreateYear(db *gorm.DB, input YearInput) (*models.Year, error) {
	year := &models.Year{Year: input.Year}
	if err := createRecord(db, labelYear, year, "year already exists"); err != nil {
		return nil, err
	}
	return GetYearByID(db, year.ID)
}

func UpdateYear(db *gorm.DB, id uint, input YearUpdate) (*models.Year, error) {
	if _, err := GetYearByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "year", input.Year)
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.Year](db, labelYear, id, updates, "year already exists"); err != nil {
		return nil, err
	}
	return GetYearByID(db, id)
}

func DeleteYear(db *gorm.DB, id uint) error {
	return removeRecord[models.Year](db, labelYear, id, nil,
		blocker{"filtros", &models.Filtro{}, "year_id"},
		blocker{"fuente years", &models.FuenteYear{}, "year_id"},
		blocker{"year desegregaciones", &models.YearDesegregacion{}, "year_id"},
	)
}
