package handlers

import (
	"net/http"

	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var temas = resource[models.Tema]{
	name:   "tema",
	label:  "Tema",
	list:   services.GetTemas,
	get:    services.GetTemaByID,
	remove: services.DeleteTema,
}

type temaRequest struct {
	Tema        *string              `json:"tema"`
	CategoriaID *uint                `json:"categoria_id"`
	Status      *models.RecordStatus `json:"status"`
}

// CreateTemaHandler handles POST /temas
func CreateTemaHandler(c echo.Context) error {
	var req temaRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := requiredText("tema", deref(req.Tema), 100)
	if err != nil {
		return respondError(c, err)
	}
	if err := requiredID("categoria_id", deref(req.CategoriaID)); err != nil {
		return respondError(c, err)
	}

	tema, err := services.CreateTema(store(c), services.TemaInput{Tema: name, CategoriaID: *req.CategoriaID})
	if err != nil {
		return respondError(c, err)
	}
	return temas.created(c, tema.ID, tema)
}

// UpdateTemaHandler handles PUT /temas/:id
func UpdateTemaHandler(c echo.Context) error {
	id, old, err := temas.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req temaRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := optionalText("tema", req.Tema, 100)
	if err != nil {
		return respondError(c, err)
	}
	if err := optionalID("categoria_id", req.CategoriaID); err != nil {
		return respondError(c, err)
	}

	tema, err := services.UpdateTema(store(c), id, services.TemaUpdate{
		Tema:        name,
		CategoriaID: req.CategoriaID,
		Status:      req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return temas.updated(c, id, old, tema)
}

// ListTemaIndicadoresHandler handles GET /temas/:id/indicadores
func ListTemaIndicadoresHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	indicadores, err := services.GetIndicadoresByTema(store(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, indicadores)
}
