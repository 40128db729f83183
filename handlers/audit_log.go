package handlers

import (
	"net/http"
	"strings"

	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

// auditEntry is an audit row with its field-level diff
type auditEntry struct {
	models.AuditLog
	Changes []models.AuditChange `json:"changes"`
}

// GetResourceHistoryHandler returns the audit history for a specific
// resource, e.g. GET /audit/filtro/12
func GetResourceHistoryHandler(c echo.Context) error {
	resourceType := strings.ToLower(strings.TrimSpace(c.Param("resource")))
	if resourceType == "" {
		return respondError(c, services.ValidationError("resource is required"))
	}
	resourceID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	logs, err := services.GetResourceAuditHistory(store(c), resourceType, resourceID)
	if err != nil {
		return respondError(c, err)
	}
	entries := make([]auditEntry, len(logs))
	for i := range logs {
		entries[i] = auditEntry{AuditLog: logs[i], Changes: logs[i].Changes()}
		if entries[i].Changes == nil {
			entries[i].Changes = []models.AuditChange{}
		}
	}
	return c.JSON(http.StatusOK, entries)
}
