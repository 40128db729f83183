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

const maxConsultaLength = 1000

// consultaRequest covers the three kinds; fields a kind does not have are
// rejected.
type consultaRequest struct {
	UsuarioID      *uint                `json:"usuario_id"`
	FiltroID       *uint                `json:"filtro_id"`
	InvestigadorID *uint                `json:"investigador_id"`
	Consulta       *string              `json:"consulta"`
	StartDate      *string              `json:"start_date"`
	EndDate        *string              `json:"end_date"`
	State          *int                 `json:"state"`
	Status         *models.RecordStatus `json:"status"`
}

func (r consultaRequest) checkFields(kind models.ConsultaKind) error {
	if kind == models.KindCompleja && r.FiltroID != nil {
		return services.ValidationError("filtro_id is not accepted for consultas complejas")
	}
	if kind != models.KindCompleja && r.Consulta != nil {
		return services.ValidationError("consulta is only accepted for consultas complejas")
	}
	if kind == models.KindRapida && r.InvestigadorID != nil {
		return services.ValidationError("investigador_id is not accepted for consultas rapidas")
	}
	for _, f := range []idField{{"usuario_id", r.UsuarioID}, {"filtro_id", r.FiltroID}, {"investigador_id", r.InvestigadorID}} {
		if err := optionalID(f.name, f.id); err != nil {
			return err
		}
	}
	return nil
}

func (r consultaRequest) dates() (services.ConsultaDates, error) {
	start, err := parseDate("start_date", deref(r.StartDate))
	if err != nil {
		return services.ConsultaDates{}, err
	}
	end, err := optionalDate("end_date", r.EndDate)
	if err != nil {
		return services.ConsultaDates{}, err
	}
	return services.ConsultaDates{StartDate: start, EndDate: end, State: r.State}, nil
}

func (r consultaRequest) datesUpdate() (services.ConsultaDatesUpdate, error) {
	start, err := optionalDate("start_date", r.StartDate)
	if err != nil {
		return services.ConsultaDatesUpdate{}, err
	}
	end, err := optionalDate("end_date", r.EndDate)
	if err != nil {
		return services.ConsultaDatesUpdate{}, err
	}
	return services.ConsultaDatesUpdate{StartDate: start, EndDate: end, State: r.State, Status: r.Status}, nil
}

func consultaResource(kind models.ConsultaKind) string {
	return "consulta_" + string(kind)
}

func auditConsulta(c echo.Context, kind models.ConsultaKind, action models.AuditAction, id uint, old, row interface{}) {
	description := fmt.Sprintf("%s consulta %s #%d", auditVerb(action), kind, id)
	services.LogAuditEvent(dbForAudit(), middleware.GetAuditContext(c), action, consultaResource(kind), id, description, old, row)
}

func listConsultas(db *gorm.DB, kind models.ConsultaKind, filters services.ConsultaFilters) (interface{}, error) {
	switch kind {
	case models.KindRapida:
		return services.GetConsultasRapidas(db, filters)
	case models.KindFiltro:
		return services.GetConsultasFiltros(db, filters)
	default:
		return services.GetConsultasComplejas(db, filters)
	}
}

func getConsulta(db *gorm.DB, kind models.ConsultaKind, id uint) (interface{}, error) {
	switch kind {
	case models.KindRapida:
		return services.GetConsultaRapidaByID(db, id)
	case models.KindFiltro:
		return services.GetConsultaFiltroByID(db, id)
	default:
		return services.GetConsultaComplejaByID(db, id)
	}
}

// ListConsultasHandler lists the consultas of one kind filtered by
// usuario_id or investigador_id. Without either it lists the caller's own.
func ListConsultasHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		usuarioID, err := queryID(c, "usuario_id")
		if err != nil {
			return respondError(c, err)
		}
		investigadorID, err := queryID(c, "investigador_id")
		if err != nil {
			return respondError(c, err)
		}
		if kind == models.KindRapida && investigadorID != 0 {
			return respondError(c, services.ValidationError("consultas rapidas have no investigador"))
		}
		if usuarioID == 0 && investigadorID == 0 {
			if user := middleware.GetCurrentUser(c); user != nil {
				usuarioID = user.ID
			}
		}

		rows, err := listConsultas(store(c), kind, services.ConsultaFilters{UsuarioID: usuarioID, InvestigadorID: investigadorID})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	}
}

// ListAllConsultasHandler handles GET /consultas/{kind}/all
func ListAllConsultasHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := listConsultas(store(c), kind, services.ConsultaFilters{})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	}
}

func GetConsultaHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		row, err := getConsulta(store(c), kind, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, row)
	}
}

// CreateConsultaHandler creates a consulta of the given kind. usuario_id
// defaults to the caller.
func CreateConsultaHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req consultaRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		if err := req.checkFields(kind); err != nil {
			return respondError(c, err)
		}
		dates, err := req.dates()
		if err != nil {
			return respondError(c, err)
		}

		usuarioID := deref(req.UsuarioID)
		if usuarioID == 0 {
			if user := middleware.GetCurrentUser(c); user != nil {
				usuarioID = user.ID
			}
		}
		if err := requiredID("usuario_id", usuarioID); err != nil {
			return respondError(c, err)
		}

		var (
			id  uint
			row interface{}
		)
		switch kind {
		case models.KindRapida:
			if err := requiredID("filtro_id", deref(req.FiltroID)); err != nil {
				return respondError(c, err)
			}
			created, err := services.CreateConsultaRapida(store(c), services.ConsultaRapidaInput{
				UsuarioID:     usuarioID,
				FiltroID:      *req.FiltroID,
				ConsultaDates: dates,
			})
			if err != nil {
				return respondError(c, err)
			}
			id, row = created.ID, created
		case models.KindFiltro:
			if err := requiredID("filtro_id", deref(req.FiltroID)); err != nil {
				return respondError(c, err)
			}
			if err := requiredID("investigador_id", deref(req.InvestigadorID)); err != nil {
				return respondError(c, err)
			}
			created, err := services.CreateConsultaFiltro(store(c), services.ConsultaFiltroInput{
				UsuarioID:      usuarioID,
				FiltroID:       *req.FiltroID,
				InvestigadorID: *req.InvestigadorID,
				ConsultaDates:  dates,
			})
			if err != nil {
				return respondError(c, err)
			}
			id, row = created.ID, created
		default:
			text, err := requiredText("consulta", deref(req.Consulta), maxConsultaLength)
			if err != nil {
				return respondError(c, err)
			}
			if err := requiredID("investigador_id", deref(req.InvestigadorID)); err != nil {
				return respondError(c, err)
			}
			created, err := services.CreateConsultaCompleja(store(c), services.ConsultaComplejaInput{
				Consulta:       text,
				UsuarioID:      usuarioID,
				InvestigadorID: *req.InvestigadorID,
				ConsultaDates:  dates,
			})
			if err != nil {
				return respondError(c, err)
			}
			id, row = created.ID, created
		}

		auditConsulta(c, kind, models.AuditActionCreate, id, nil, row)
		return c.JSON(http.StatusCreated, row)
	}
}

func UpdateConsultaHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		old, err := getConsulta(store(c), kind, id)
		if err != nil {
			return respondError(c, err)
		}

		var req consultaRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		if err := req.checkFields(kind); err != nil {
			return respondError(c, err)
		}
		dates, err := req.datesUpdate()
		if err != nil {
			return respondError(c, err)
		}

		var row interface{}
		switch kind {
		case models.KindRapida:
			row, err = services.UpdateConsultaRapida(store(c), id, services.ConsultaRapidaUpdate{
				UsuarioID:           req.UsuarioID,
				FiltroID:            req.FiltroID,
				ConsultaDatesUpdate: dates,
			})
		case models.KindFiltro:
			row, err = services.UpdateConsultaFiltro(store(c), id, services.ConsultaFiltroUpdate{
				UsuarioID:           req.UsuarioID,
				FiltroID:            req.FiltroID,
				InvestigadorID:      req.InvestigadorID,
				ConsultaDatesUpdate: dates,
			})
		default:
			text, textErr := optionalText("consulta", req.Consulta, maxConsultaLength)
			if textErr != nil {
				return respondError(c, textErr)
			}
			row, err = services.UpdateConsultaCompleja(store(c), id, services.ConsultaComplejaUpdate{
				Consulta:            text,
				UsuarioID:           req.UsuarioID,
				InvestigadorID:      req.InvestigadorID,
				ConsultaDatesUpdate: dates,
			})
		}
		if err != nil {
			return respondError(c, err)
		}

		auditConsulta(c, kind, models.AuditActionUpdate, id, old, row)
		return c.JSON(http.StatusOK, row)
	}
}

func DeleteConsultaHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		old, err := getConsulta(store(c), kind, id)
		if err != nil {
			return respondError(c, err)
		}

		switch kind {
		case models.KindRapida:
			err = services.DeleteConsultaRapida(store(c), id)
		case models.KindFiltro:
			err = services.DeleteConsultaFiltro(store(c), id)
		default:
			err = services.DeleteConsultaCompleja(store(c), id)
		}
		if err != nil {
			return respondError(c, err)
		}

		auditConsulta(c, kind, models.AuditActionDelete, id, old, nil)
		return c.NoContent(http.StatusNoContent)
	}
}
