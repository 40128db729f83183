package services

import (
	"encoding/json"

	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditContext describes who made a change and from where
type AuditContext struct {
	UsuarioID uint
	Mail      string
	IPAddress string
	UserAgent string
}

// LogAuditEvent records a write in the background. db must not be bound to
// the request context, which is cancelled once the response is sent.
func LogAuditEvent(
	db *gorm.DB,
	actx AuditContext,
	action models.AuditAction,
	resourceType string,
	resourceID uint,
	description string,
	oldValues interface{},
	newValues interface{},
) {
	entry := buildAuditLog(actx, action, resourceType, resourceID, description, oldValues, newValues)
	go func() {
		if err := db.Create(entry).Error; err != nil {
			logger.Named("audit").Error("failed to create audit log",
				zap.Error(err),
				zap.String("resource_type", resourceType),
				zap.Uint("resource_id", resourceID),
			)
		}
	}()
}

// marshalling happens on the caller's goroutine so later mutations of the
// values are not observed
func buildAuditLog(actx AuditContext, action models.AuditAction, resourceType string, resourceID uint, description string, oldValues, newValues interface{}) *models.AuditLog {
	entry := &models.AuditLog{
		UsuarioMail:  actx.Mail,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Description:  description,
		OldValues:    toJSON(oldValues),
		NewValues:    toJSON(newValues),
		IPAddress:    actx.IPAddress,
		UserAgent:    actx.UserAgent,
	}
	if actx.UsuarioID != 0 {
		id := actx.UsuarioID
		entry.UsuarioID = &id
	}
	return entry
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		logger.Named("audit").Warn("failed to encode audit values", zap.Error(err))
		return nil
	}
	return datatypes.JSON(b)
}

// GetResourceAuditHistory returns the audit trail of one record, newest first
func GetResourceAuditHistory(db *gorm.DB, resourceType string, resourceID uint) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
