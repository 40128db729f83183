package handlers

import (
	"net/http"

	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var tiposDesegregacion = resource[models.TipoDesegregacion]{
	name:   "tipo_desegregacion",
	label:  "TipoDesegregacion",
	list:   services.GetTiposDesegregacion,
	get:    services.GetTipoDesegregacionByID,
	remove: services.DeleteTipoDesegregacion,
}

var desegregaciones = resource[models.Desegregacion]{
	name:   "desegregacion",
	label:  "Desegregacion",
	list:   services.GetDesegregaciones,
	get:    services.GetDesegregacionByID,
	remove: services.DeleteDesegregacion,
}

type tipoDesegregacionRequest struct {
	TipoDesegregacion *string              `json:"tipo_desegregacion"`
	Status            *models.RecordStatus `json:"status"`
}

func CreateTipoDesegregacionHandler(c echo.Context) error {
	var req tipoDesegregacionRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := requiredText("tipo_desegregacion", deref(req.TipoDesegregacion), 50)
	if err != nil {
		return respondError(c, err)
	}

	tipo, err := services.CreateTipoDesegregacion(store(c), services.TipoDesegregacionInput{TipoDesegregacion: name})
	if err != nil {
		return respondError(c, err)
	}
	return tiposDesegregacion.created(c, tipo.ID, tipo)
}

func UpdateTipoDesegregacionHandler(c echo.Context) error {
	id, old, err := tiposDesegregacion.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req tipoDesegregacionRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := optionalText("tipo_desegregacion", req.TipoDesegregacion, 50)
	if err != nil {
		return respondError(c, err)
	}

	tipo, err := services.UpdateTipoDesegregacion(store(c), id, services.TipoDesegregacionUpdate{
		TipoDesegregacion: name,
		Status:            req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return tiposDesegregacion.updated(c, id, old, tipo)
}

// ListTipoDesegregacionesHandler handles GET /tipos-desegregacion/:id/desegregaciones
func ListTipoDesegregacionesHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	rows, err := services.GetDesegregacionesByTipo(store(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type desegregacionRequest struct {
	Desegregacion       *string              `json:"desegregacion"`
	TipoDesegregacionID *uint                `json:"tipo_desegregacion_id"`
	Status              *models.RecordStatus `json:"status"`
	YearIDs             []uint               `json:"year_ids"`
}

func CreateDesegregacionHandler(c echo.Context) error {
	var req desegregacionRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := requiredText("desegregacion", deref(req.Desegregacion), 50)
	if err != nil {
		return respondError(c, err)
	}
	if err := requiredID("tipo_desegregacion_id", deref(req.TipoDesegregacionID)); err != nil {
		return respondError(c, err)
	}

	desegregacion, err := services.CreateDesegregacion(store(c), services.DesegregacionInput{
		Desegregacion:       name,
		TipoDesegregacionID: *req.TipoDesegregacionID,
		YearIDs:             req.YearIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return desegregaciones.created(c, desegregacion.ID, desegregacion)
}

func UpdateDesegregacionHandler(c echo.Context) error {
	id, old, err := desegregaciones.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req desegregacionRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := optionalText("desegregacion", req.Desegregacion, 50)
	if err != nil {
		return respondError(c, err)
	}
	if err := optionalID("tipo_desegregacion_id", req.TipoDesegregacionID); err != nil {
		return respondError(c, err)
	}

	desegregacion, err := services.UpdateDesegregacion(store(c), id, services.DesegregacionUpdate{
		Desegregacion:       name,
		TipoDesegregacionID: req.TipoDesegregacionID,
		Status:              req.Status,
		YearIDs:             req.YearIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return desegregaciones.updated(c, id, old, desegregacion)
}
