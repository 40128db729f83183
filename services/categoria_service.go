package services

import (
	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const labelCategoria = "Categoria"

// CategoriaInput holds the fields for creating a categoria
type CategoriaInput struct {
	Categoria string
}

// CategoriaUpdate holds a partial categoria update; nil fields are kept
type CategoriaUpdate struct {
	Categoria *string
	Status    *models.RecordStatus
}

// GetCategorias returns all categorias with their temas, by name
func GetCategorias(db *gorm.DB) ([]models.Categoria, error) {
	return findAll[models.Categoria](db, "categoria ASC", "Temas")
}

// GetCategoriaByID returns a categoria with its temas
func GetCategoriaByID(db *gorm.DB, id uint) (*models.Categoria, error) {
	return findOne[models.Categoria](db, labelCategoria, id, "Temas")
}

// GetTemasByCategoria returns the temas of an existing categoria
func GetTemasByCategoria(db *gorm.DB, categoriaID uint) ([]models.Tema, error) {
	if err := requireRefs(db, ref{labelCategoria, &models.Categoria{}, categoriaID}); err != nil {
		return nil, err
	}
	return findAll[models.Tema](db.Where("categoria_id = ?", categoriaID), "tema ASC")
}

func CreateCategoria(db *gorm.DB, input CategoriaInput) (*models.Categoria, error) {
	categoria := &models.Categoria{Categoria: input.Categoria}
	if err := createRecord(db, labelCategoria, categoria, "categoria already exists"); err != nil {
		return nil, err
	}
	return GetCategoriaByID(db, categoria.ID)
}

func UpdateCategoria(db *gorm.DB, id uint, input CategoriaUpdate) (*models.Categoria, error) {
	if _, err := GetCategoriaByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "categoria", input.Categoria)
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.Categoria](db, labelCategoria, id, updates, "categoria already exists"); err != nil {
		return nil, err
	}
	return GetCategoriaByID(db, id)
}

// DeleteCategoria soft-deletes a categoria without temas, filtros or investigador areas
func DeleteCategoria(db *gorm.DB, id uint) error {
	return removeRecord[models.Categoria](db, labelCategoria, id, nil,
		blocker{"temas", &models.Tema{}, "categoria_id"},
		blocker{"filtros", &models.Filtro{}, "categoria_id"},
		blocker{"investigador areas", &models.InvestigadorArea{}, "categoria_id"},
	)
}
