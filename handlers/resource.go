package handlers

import (
	"fmt"
	"net/http"

	"jacha_aru_api_go/middleware"
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// resource wires the read, delete and audit plumbing shared by every
// catalog endpoint. Create and update parse their own bodies.
type resource[T any] struct {
	name   string // audit resource type, also the /audit/:resource segment
	label  string
	list   func(*gorm.DB) ([]T, error)
	get    func(*gorm.DB, uint) (*T, error)
	remove func(*gorm.DB, uint) error
}

func (r resource[T]) List(c echo.Context) error {
	rows, err := r.list(store(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (r resource[T]) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	row, err := r.get(store(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

func (r resource[T]) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	old, err := r.get(store(c), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := r.remove(store(c), id); err != nil {
		return respondError(c, err)
	}

	r.audit(c, models.AuditActionDelete, id, old, nil)
	return c.NoContent(http.StatusNoContent)
}

// current loads the row an update is about to change, for the audit trail
func (r resource[T]) current(c echo.Context) (uint, *T, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return 0, nil, err
	}
	row, err := r.get(store(c), id)
	if err != nil {
		return 0, nil, err
	}
	return id, row, nil
}

func (r resource[T]) created(c echo.Context, id uint, row *T) error {
	r.audit(c, models.AuditActionCreate, id, nil, row)
	return c.JSON(http.StatusCreated, row)
}

func (r resource[T]) updated(c echo.Context, id uint, old, row *T) error {
	r.audit(c, models.AuditActionUpdate, id, old, row)
	return c.JSON(http.StatusOK, row)
}

func (r resource[T]) audit(c echo.Context, action models.AuditAction, id uint, oldValues, newValues interface{}) {
	description := fmt.Sprintf("%s %s #%d", auditVerb(action), r.label, id)
	services.LogAuditEvent(dbForAudit(), middleware.GetAuditContext(c), action, r.name, id, description, oldValues, newValues)
}

func auditVerb(action models.AuditAction) string {
	switch action {
	case models.AuditActionCreate:
		return "Created"
	case models.AuditActionUpdate:
		return "Updated"
	case models.AuditActionDelete:
		return "Deleted"
	default:
		return string(action)
	}
}
