package handlers

import (
	"net/http"

	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var investigadores = resource[models.Investigador]{
	name:   "investigador",
	label:  "Investigador",
	list:   services.GetInvestigadores,
	get:    services.GetInvestigadorByID,
	remove: services.DeleteInvestigador,
}

type investigadorRequest struct {
	Nombre       *string              `json:"nombre"`
	Apellido     *string              `json:"apellido"`
	Correo       *string              `json:"correo"`
	TelegramID   *string              `json:"telegram_id"`
	Status       *models.RecordStatus `json:"status"`
	CategoriaIDs []uint               `json:"categoria_ids"`
}

func CreateInvestigadorHandler(c echo.Context) error {
	var req investigadorRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	nombre, err := requiredText("nombre", deref(req.Nombre), 50)
	if err != nil {
		return respondError(c, err)
	}
	apellido, err := requiredText("apellido", deref(req.Apellido), 50)
	if err != nil {
		return respondError(c, err)
	}
	correo, err := validEmail("correo", deref(req.Correo), 50)
	if err != nil {
		return respondError(c, err)
	}

	investigador, err := services.CreateInvestigador(store(c), services.InvestigadorInput{
		Nombre:       nombre,
		Apellido:     apellido,
		Correo:       correo,
		TelegramID:   req.TelegramID,
		CategoriaIDs: req.CategoriaIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return investigadores.created(c, investigador.ID, investigador)
}

// UpdateInvestigadorHandler handles PUT /investigadores/:id. categoria_ids
// replaces the areas when present; [] clears them.
func UpdateInvestigadorHandler(c echo.Context) error {
	id, old, err := investigadores.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req investigadorRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	update := services.InvestigadorUpdate{
		TelegramID:   req.TelegramID,
		Status:       req.Status,
		CategoriaIDs: req.CategoriaIDs,
	}
	if update.Nombre, err = optionalText("nombre", req.Nombre, 50); err != nil {
		return respondError(c, err)
	}
	if update.Apellido, err = optionalText("apellido", req.Apellido, 50); err != nil {
		return respondError(c, err)
	}
	if update.Correo, err = optionalEmail("correo", req.Correo, 50); err != nil {
		return respondError(c, err)
	}

	investigador, err := services.UpdateInvestigador(store(c), id, update)
	if err != nil {
		return respondError(c, err)
	}
	return investigadores.updated(c, id, old, investigador)
}

// ListInvestigadorConsultasHandler handles GET /investigadores/:id/consultas
func ListInvestigadorConsultasHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	consultas, err := services.GetInvestigadorConsultas(store(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, consultas)
}
