package handlers

import (
	"fmt"
	"net/http"
	"time"

	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var filtros = resource[models.Filtro]{
	name:   "filtro",
	label:  "Filtro",
	get:    services.GetFiltroByID,
	remove: services.DeleteFiltro,
}

type filtroRequest struct {
	CategoriaID         *uint                `json:"categoria_id"`
	TemaID              *uint                `json:"tema_id"`
	IndicadorID         *uint                `json:"indicador_id"`
	DesegregacionID     *uint                `json:"desegregacion_id"`
	YearID              *uint                `json:"year_id"`
	FuenteID            *uint                `json:"fuente_id"`
	FichaMetodologicaID *uint                `json:"ficha_metodologica_id"`
	Status              *models.RecordStatus `json:"status"`
}

type idField struct {
	name string
	id   *uint
}

func (r filtroRequest) fields() []idField {
	return []idField{
		{"categoria_id", r.CategoriaID},
		{"tema_id", r.TemaID},
		{"indicador_id", r.IndicadorID},
		{"desegregacion_id", r.DesegregacionID},
		{"year_id", r.YearID},
		{"fuente_id", r.FuenteID},
		{"ficha_metodologica_id", r.FichaMetodologicaID},
	}
}

func filtroFilters(c echo.Context) (services.FiltroFilters, error) {
	categoriaID, err := queryID(c, "categoria_id")
	if err != nil {
		return services.FiltroFilters{}, err
	}
	temaID, err := queryID(c, "tema_id")
	if err != nil {
		return services.FiltroFilters{}, err
	}
	return services.FiltroFilters{CategoriaID: categoriaID, TemaID: temaID}, nil
}

// ListFiltrosHandler handles GET /filtros?categoria_id=&tema_id=
func ListFiltrosHandler(c echo.Context) error {
	filters, err := filtroFilters(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := services.GetFiltros(store(c), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// CreateFiltroHandler handles POST /filtros. All seven dimensions are required.
func CreateFiltroHandler(c echo.Context) error {
	var req filtroRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	for _, f := range req.fields() {
		if err := requiredID(f.name, deref(f.id)); err != nil {
			return respondError(c, err)
		}
	}

	filtro, err := services.CreateFiltro(store(c), services.FiltroInput{
		CategoriaID:         *req.CategoriaID,
		TemaID:              *req.TemaID,
		IndicadorID:         *req.IndicadorID,
		DesegregacionID:     *req.DesegregacionID,
		YearID:              *req.YearID,
		FuenteID:            *req.FuenteID,
		FichaMetodologicaID: *req.FichaMetodologicaID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return filtros.created(c, filtro.ID, filtro)
}

func UpdateFiltroHandler(c echo.Context) error {
	id, old, err := filtros.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req filtroRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	for _, f := range req.fields() {
		if err := optionalID(f.name, f.id); err != nil {
			return respondError(c, err)
		}
	}

	filtro, err := services.UpdateFiltro(store(c), id, services.FiltroUpdate{
		CategoriaID:         req.CategoriaID,
		TemaID:              req.TemaID,
		IndicadorID:         req.IndicadorID,
		DesegregacionID:     req.DesegregacionID,
		YearID:              req.YearID,
		FuenteID:            req.FuenteID,
		FichaMetodologicaID: req.FichaMetodologicaID,
		Status:              req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return filtros.updated(c, id, old, filtro)
}

// ExportFiltrosHandler streams the filtro catalog as an xlsx workbook,
// honoring the same query filters as the listing.
func ExportFiltrosHandler(c echo.Context) error {
	filters, err := filtroFilters(c)
	if err != nil {
		return respondError(c, err)
	}
	buf, err := services.ExportFiltros(store(c), filters)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("filtros_%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
