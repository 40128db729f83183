package services

import (
	"fmt"
	"strings"

	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const (
	labelInvestigador        = "Investigador"
	duplicateInvestigadorMsg = "investigador with this email already exists"
)

// InvestigadorInput creates an investigador. A non-nil CategoriaIDs becomes
// its full set of areas.
type InvestigadorInput struct {
	Nombre       string
	Apellido     string
	Correo       string
	TelegramID   *string
	CategoriaIDs []uint
}

// InvestigadorUpdate is a partial update. CategoriaIDs replaces the areas
// when non-nil; an empty slice clears them.
type InvestigadorUpdate struct {
	Nombre       *string
	Apellido     *string
	Correo       *string
	TelegramID   *string
	Status       *models.RecordStatus
	CategoriaIDs []uint
}

// InvestigadorConsultas groups the consultas routed to an investigador
type InvestigadorConsultas struct {
	Complejas []models.ConsultaCompleja `json:"consultas_complejas"`
	Filtros   []models.ConsultaFiltro   `json:"consultas_filtros"`
}

func GetInvestigadores(db *gorm.DB) ([]models.Investigador, error) {
	return findAll[models.Investigador](db, "apellido ASC, nombre ASC", "Areas.Categoria")
}

func GetInvestigadorByID(db *gorm.DB, id uint) (*models.Investigador, error) {
	return findOne[models.Investigador](db, labelInvestigador, id, "Areas.Categoria")
}

func CreateInvestigador(db *gorm.DB, input InvestigadorInput) (*models.Investigador, error) {
	correo := normalizeEmail(input.Correo)
	if err := ensureUniqueCorreo(db, correo, 0); err != nil {
		return nil, err
	}

	investigador := &models.Investigador{
		Nombre:     input.Nombre,
		Apellido:   input.Apellido,
		Correo:     correo,
		TelegramID: input.TelegramID,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := createRecord(tx, labelInvestigador, investigador, duplicateInvestigadorMsg); err != nil {
			return err
		}
		if input.CategoriaIDs != nil {
			return SetInvestigadorCategorias(tx, investigador.ID, input.CategoriaIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetInvestigadorByID(db, investigador.ID)
}

func UpdateInvestigador(db *gorm.DB, id uint, input InvestigadorUpdate) (*models.Investigador, error) {
	current, err := GetInvestigadorByID(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "nombre", input.Nombre)
	setIfPresent(updates, "apellido", input.Apellido)
	setIfPresent(updates, "telegram_id", input.TelegramID)
	if input.Correo != nil {
		correo := normalizeEmail(*input.Correo)
		if correo != current.Correo {
			if err := ensureUniqueCorreo(db, correo, id); err != nil {
				return nil, err
			}
			updates["correo"] = correo
		}
	}
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := applyUpdates[models.Investigador](tx, labelInvestigador, id, updates, duplicateInvestigadorMsg); err != nil {
			return err
		}
		if input.CategoriaIDs != nil {
			return SetInvestigadorCategorias(tx, id, input.CategoriaIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetInvestigadorByID(db, id)
}

// SetInvestigadorCategorias replaces the investigador's areas with exactly
// categoriaIDs. Call it inside a transaction.
func SetInvestigadorCategorias(tx *gorm.DB, investigadorID uint, categoriaIDs []uint) error {
	if err := requireIDs(tx, labelCategoria, &models.Categoria{}, categoriaIDs); err != nil {
		return err
	}
	return replaceLinks(tx, "investigador_id", investigadorID, categoriaIDs, func(categoriaID uint) models.InvestigadorArea {
		return models.InvestigadorArea{InvestigadorID: investigadorID, CategoriaID: categoriaID}
	})
}

// DeleteInvestigador soft-deletes an investigador without open consultas and
// releases its areas.
func DeleteInvestigador(db *gorm.DB, id uint) error {
	clearAreas := func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("investigador_id = ?", id).Delete(&models.InvestigadorArea{}).Error; err != nil {
			return fmt.Errorf("failed to clear investigador areas: %w", err)
		}
		return nil
	}
	return removeRecord[models.Investigador](db, labelInvestigador, id, clearAreas,
		blocker{"consultas complejas", &models.ConsultaCompleja{}, "investigador_id"},
		blocker{"consultas filtros", &models.ConsultaFiltro{}, "investigador_id"},
	)
}

// GetInvestigadorConsultas returns the complejas and filtros assigned to an investigador
func GetInvestigadorConsultas(db *gorm.DB, id uint) (*InvestigadorConsultas, error) {
	if _, err := findOne[models.Investigador](db, labelInvestigador, id); err != nil {
		return nil, err
	}

	complejas, err := GetConsultasComplejas(db, ConsultaFilters{InvestigadorID: id})
	if err != nil {
		return nil, err
	}
	filtros, err := GetConsultasFiltros(db, ConsultaFilters{InvestigadorID: id})
	if err != nil {
		return nil, err
	}
	return &InvestigadorConsultas{Complejas: complejas, Filtros: filtros}, nil
}

func ensureUniqueCorreo(db *gorm.DB, correo string, excludeID uint) error {
	query := db.Model(&models.Investigador{}).Where("correo = ?", correo)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check investigador email: %w", err)
	}
	if count > 0 {
		return conflictf(duplicateInvestigadorMsg)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
