package handlers

import (
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var fuentes = resource[models.Fuente]{
	name:   "fuente",
	label:  "Fuente",
	list:   services.GetFuentes,
	get:    services.GetFuenteByID,
	remove: services.DeleteFuente,
}

type fuenteRequest struct {
	Fuente  *string              `json:"fuente"`
	Status  *models.RecordStatus `json:"status"`
	YearIDs []uint               `json:"year_ids"`
}

func CreateFuenteHandler(c echo.Context) error {
	var req fuenteRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := requiredText("fuente", deref(req.Fuente), 50)
	if err != nil {
		return respondError(c, err)
	}

	fuente, err := services.CreateFuente(store(c), services.FuenteInput{Fuente: name, YearIDs: req.YearIDs})
	if err != nil {
		return respondError(c, err)
	}
	return fuentes.created(c, fuente.ID, fuente)
}

func UpdateFuenteHandler(c echo.Context) error {
	id, old, err := fuentes.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req fuenteRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := optionalText("fuente", req.Fuente, 50)
	if err != nil {
		return respondError(c, err)
	}

	fuente, err := services.UpdateFuente(store(c), id, services.FuenteUpdate{
		Fuente:  name,
		Status:  req.Status,
		YearIDs: req.YearIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return fuentes.updated(c, id, old, fuente)
}
