package services

import (
	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const labelTema = "Tema"

type TemaInput struct {
	Tema        string
	CategoriaID uint
}

type TemaUpdate struct {
	Tema        *string
	CategoriaID *uint
	Status      *models.RecordStatus
}

func GetTemas(db *gorm.DB) ([]models.Tema, error) {
	return findAll[models.Tema](db, "tema ASC", "Categoria")
}

func GetTemaByID(db *gorm.DB, id uint) (*models.Tema, error) {
	return findOne[models.Tema](db, labelTema, id, "Categoria", "IndicadorTemas.Indicador")
}

func CreateTema(db *gorm.DB, input TemaInput) (*models.Tema, error) {
	if err := requireRefs(db, ref{labelCategoria, &models.Categoria{}, input.CategoriaID}); err != nil {
		return nil, err
	}

	tema := &models.Tema{Tema: input.Tema, CategoriaID: input.CategoriaID}
	if err := createRecord(db, labelTema, tema, "tema already exists"); err != nil {
		return nil, err
	}
	return GetTemaByID(db, tema.ID)
}

func UpdateTema(db *gorm.DB, id uint, input TemaUpdate) (*models.Tema, error) {
	if _, err := GetTemaByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "tema", input.Tema)
	if input.CategoriaID != nil {
		if err := requireRefs(db, ref{labelCategoria, &models.Categoria{}, *input.CategoriaID}); err != nil {
			return nil, err
		}
		updates["categoria_id"] = *input.CategoriaID
	}
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.Tema](db, labelTema, id, updates, "tema already exists"); err != nil {
		return nil, err
	}
	return GetTemaByID(db, id)
}

// DeleteTema soft-deletes a tema that no filtro or indicador link references
func DeleteTema(db *gorm.DB, id uint) error {
	return removeRecord[models.Tema](db, labelTema, id, nil,
		blocker{"filtros", &models.Filtro{}, "tema_id"},
		blocker{"indicador temas", &models.IndicadorTema{}, "tema_id"},
	)
}
