package services

import (
	"errors"
	"fmt"

	"jacha_aru_api_go/models"

	"gorm.io/gorm"
)

const (
	labelUsuario        = "Usuario"
	duplicateUsuarioMsg = "user with this email already exists"
)

// UsuarioUpdate carries profile changes. Password changes go through
// ChangePassword.
type UsuarioUpdate struct {
	Nombres    *string
	Apellidos  *string
	Mail       *string
	GoogleID   *string
	TelegramID *string
	Status     *models.RecordStatus
}

func GetUsuarios(db *gorm.DB) ([]models.Usuario, error) {
	return findAll[models.Usuario](db, "apellidos ASC, nombres ASC")
}

func GetUsuarioByID(db *gorm.DB, id uint) (*models.Usuario, error) {
	return findOne[models.Usuario](db, labelUsuario, id)
}

func UpdateUsuario(db *gorm.DB, id uint, input UsuarioUpdate) (*models.Usuario, error) {
	if _, err := GetUsuarioByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "nombres", input.Nombres)
	setIfPresent(updates, "apellidos", input.Apellidos)
	setIfPresent(updates, "google_id", input.GoogleID)
	setIfPresent(updates, "telegram_id", input.TelegramID)
	if input.Mail != nil {
		mail := normalizeEmail(*input.Mail)
		if err := ensureMailAvailable(db, mail, id); err != nil {
			return nil, err
		}
		updates["mail"] = mail
	}
	if err := applyStatus(updates, input.Status); err != nil {
		return nil, err
	}

	if err := applyUpdates[models.Usuario](db, labelUsuario, id, updates, duplicateUsuarioMsg); err != nil {
		return nil, err
	}
	return GetUsuarioByID(db, id)
}

// ChangePassword replaces the password after checking the current one
func ChangePassword(db *gorm.DB, id uint, current, next string) error {
	usuario, err := GetUsuarioByID(db, id)
	if err != nil {
		return err
	}
	if !CheckPassword(current, usuario.Pass) {
		return unauthorized("invalid credentials")
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return applyUpdates[models.Usuario](db, labelUsuario, id, map[string]interface{}{"pass": hash}, duplicateUsuarioMsg)
}

// UpdateProfile applies a usuario's own profile changes and, when newPass is
// set, the password change in one transaction. Either both land or neither.
func UpdateProfile(db *gorm.DB, id uint, input UsuarioUpdate, currentPass, newPass *string) (*models.Usuario, error) {
	if newPass != nil && currentPass == nil {
		return nil, validationf("current_pass is required to change the password")
	}

	var usuario *models.Usuario
	err := db.Transaction(func(tx *gorm.DB) error {
		if newPass != nil {
			if err := ChangePassword(tx, id, *currentPass, *newPass); err != nil {
				return err
			}
		}
		var err error
		usuario, err = UpdateUsuario(tx, id, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	if newPass != nil {
		LogSecurityEvent("PASSWORD_CHANGED", id, usuario.Mail)
	}
	return usuario, nil
}

// DeleteUsuario soft-deletes a usuario that has no live consultas
func DeleteUsuario(db *gorm.DB, id uint) error {
	return removeRecord[models.Usuario](db, labelUsuario, id, nil,
		blocker{"consultas rapidas", &models.ConsultaRapida{}, "usuario_id"},
		blocker{"consultas filtros", &models.ConsultaFiltro{}, "usuario_id"},
		blocker{"consultas complejas", &models.ConsultaCompleja{}, "usuario_id"},
	)
}

// ensureMailAvailable checks every row, soft-deleted ones included, since
// the mail index covers them all.
func ensureMailAvailable(db *gorm.DB, mail string, excludeID uint) error {
	var existing models.Usuario
	err := db.Unscoped().Where("mail = ?", mail).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check usuario email: %w", err)
	}
	if existing.ID == excludeID {
		return nil
	}
	return conflictf(duplicateUsuarioMsg)
}
