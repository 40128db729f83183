package handlers

import (
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var indicadores = resource[models.Indicador]{
	name:   "indicador",
	label:  "Indicador",
	list:   services.GetIndicadores,
	get:    services.GetIndicadorByID,
	remove: services.DeleteIndicador,
}

type indicadorRequest struct {
	Indicador            *string              `json:"indicador"`
	Status               *models.RecordStatus `json:"status"`
	TemaIDs              []uint               `json:"tema_ids"`
	TipoDesegregacionIDs []uint               `json:"tipo_desegregacion_ids"`
}

// CreateIndicadorHandler handles POST /indicadores
func CreateIndicadorHandler(c echo.Context) error {
	var req indicadorRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := requiredText("indicador", deref(req.Indicador), 50)
	if err != nil {
		return respondError(c, err)
	}

	indicador, err := services.CreateIndicador(store(c), services.IndicadorInput{
		Indicador:            name,
		TemaIDs:              req.TemaIDs,
		TipoDesegregacionIDs: req.TipoDesegregacionIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return indicadores.created(c, indicador.ID, indicador)
}

// UpdateIndicadorHandler handles PUT /indicadores/:id. An omitted id list
// keeps the current links; [] clears them.
func UpdateIndicadorHandler(c echo.Context) error {
	id, old, err := indicadores.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req indicadorRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := optionalText("indicador", req.Indicador, 50)
	if err != nil {
		return respondError(c, err)
	}

	indicador, err := services.UpdateIndicador(store(c), id, services.IndicadorUpdate{
		Indicador:            name,
		Status:               req.Status,
		TemaIDs:              req.TemaIDs,
		TipoDesegregacionIDs: req.TipoDesegregacionIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return indicadores.updated(c, id, old, indicador)
}
