package handlers

import (
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var fichas = resource[models.FichaMetodologica]{
	name:   "ficha_metodologica",
	label:  "FichaMetodologica",
	list:   services.GetFichas,
	get:    services.GetFichaByID,
	remove: services.DeleteFicha,
}

type fichaRequest struct {
	Ficha     *int                 `json:"ficha"`
	Status    *models.RecordStatus `json:"status"`
	FuenteIDs []uint               `json:"fuente_ids"`
}

func CreateFichaHandler(c echo.Context) error {
	var req fichaRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Ficha == nil {
		return respondError(c, services.ValidationError("ficha is required"))
	}

	ficha, err := services.CreateFicha(store(c), services.FichaInput{Ficha: *req.Ficha, FuenteIDs: req.FuenteIDs})
	if err != nil {
		return respondError(c, err)
	}
	return fichas.created(c, ficha.ID, ficha)
}

func UpdateFichaHandler(c echo.Context) error {
	id, old, err := fichas.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req fichaRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	ficha, err := services.UpdateFicha(store(c), id, services.FichaUpdate{
		Ficha:     req.Ficha,
		Status:    req.Status,
		FuenteIDs: req.FuenteIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return fichas.updated(c, id, old, ficha)
}
