package handlers

import (
	"net/http"

	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var categorias = resource[models.Categoria]{
	name:   "categoria",
	label:  "Categoria",
	list:   services.GetCategorias,
	get:    services.GetCategoriaByID,
	remove: services.DeleteCategoria,
}

type categoriaRequest struct {
	Categoria *string              `json:"categoria"`
	Status    *models.RecordStatus `json:"status"`
}

// CreateCategoriaHandler handles POST /categorias
func CreateCategoriaHandler(c echo.Context) error {
	var req categoriaRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := requiredText("categoria", deref(req.Categoria), 100)
	if err != nil {
		return respondError(c, err)
	}

	categoria, err := services.CreateCategoria(store(c), services.CategoriaInput{Categoria: name})
	if err != nil {
		return respondError(c, err)
	}
	return categorias.created(c, categoria.ID, categoria)
}

// UpdateCategoriaHandler handles PUT /categorias/:id
func UpdateCategoriaHandler(c echo.Context) error {
	id, old, err := categorias.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req categoriaRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	name, err := optionalText("categoria", req.Categoria, 100)
	if err != nil {
		return respondError(c, err)
	}

	categoria, err := services.UpdateCategoria(store(c), id, services.CategoriaUpdate{Categoria: name, Status: req.Status})
	if err != nil {
		return respondError(c, err)
	}
	return categorias.updated(c, id, old, categoria)
}

// ListCategoriaTemasHandler handles GET /categorias/:id/temas
func ListCategoriaTemasHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	temas, err := services.GetTemasByCategoria(store(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, temas)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
