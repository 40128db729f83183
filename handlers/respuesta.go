package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"jacha_aru_api_go/middleware"
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// MaxDocumentSize bounds respuesta uploads
const MaxDocumentSize = 20 << 20

func respuestaResource(kind models.ConsultaKind) string {
	return "respuesta_" + string(kind)
}

// ListRespuestasHandler handles GET /consultas/{kind}/:id/respuestas
func ListRespuestasHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		consultaID, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		rows, err := services.GetRespuestas(store(c), kind, consultaID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	}
}

// CreateRespuestaHandler handles POST /consultas/{kind}/:id/respuestas. It
// takes a multipart form with costo and an optional documento file, or a
// JSON body with costo only.
func CreateRespuestaHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		consultaID, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		input, cleanup, err := parseRespuestaInput(c)
		if err != nil {
			return respondError(c, err)
		}
		defer cleanup()

		ctx := c.Request().Context()
		respuesta, err := services.CreateRespuesta(ctx, store(c), services.Storage, notifierFrom(c), kind, consultaID, input)
		if err != nil {
			return respondError(c, err)
		}

		services.LogAuditEvent(dbForAudit(), middleware.GetAuditContext(c), models.AuditActionCreate,
			respuestaResource(kind), respuesta.ID,
			fmt.Sprintf("Priced consulta %s #%d", kind, consultaID), nil, respuesta)
		return c.JSON(http.StatusCreated, respuesta)
	}
}

func parseRespuestaInput(c echo.Context) (services.RespuestaInput, func(), error) {
	noop := func() {}
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) && !strings.HasPrefix(contentType, echo.MIMEApplicationForm) {
		var body struct {
			Costo *decimal.Decimal `json:"costo"`
		}
		if err := bindJSON(c, &body); err != nil {
			return services.RespuestaInput{}, noop, err
		}
		if body.Costo == nil {
			return services.RespuestaInput{}, noop, services.ValidationError("costo is required")
		}
		return services.RespuestaInput{Costo: *body.Costo}, noop, nil
	}

	raw := strings.TrimSpace(c.FormValue("costo"))
	if raw == "" {
		return services.RespuestaInput{}, noop, services.ValidationError("costo is required")
	}
	costo, err := decimal.NewFromString(raw)
	if err != nil {
		return services.RespuestaInput{}, noop, services.ValidationError("costo must be a number")
	}
	input := services.RespuestaInput{Costo: costo}

	fileHeader, err := c.FormFile("documento")
	if errors.Is(err, http.ErrMissingFile) {
		return input, noop, nil
	}
	if err != nil {
		return services.RespuestaInput{}, noop, services.ValidationError("invalid documento upload")
	}
	if fileHeader.Size > MaxDocumentSize {
		return services.RespuestaInput{}, noop, services.ValidationError("documento must be at most %d MB", MaxDocumentSize>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return services.RespuestaInput{}, noop, fmt.Errorf("failed to open upload: %w", err)
	}
	input.Document = &services.DocumentUpload{
		Reader:      file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
	}
	return input, func() { file.Close() }, nil
}

// DeleteRespuestaHandler handles DELETE /respuestas/{kind}/:id
func DeleteRespuestaHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		old, err := services.GetRespuestaByID(store(c), kind, id)
		if err != nil {
			return respondError(c, err)
		}
		if err := services.DeleteRespuesta(store(c), kind, id); err != nil {
			return respondError(c, err)
		}

		services.LogAuditEvent(dbForAudit(), middleware.GetAuditContext(c), models.AuditActionDelete,
			respuestaResource(kind), id, fmt.Sprintf("Deleted respuesta %s #%d", kind, id), old, nil)
		return c.NoContent(http.StatusNoContent)
	}
}

// DownloadRespuestaDocumentHandler handles GET /respuestas/{kind}/:id/documento
func DownloadRespuestaDocumentHandler(kind models.ConsultaKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		body, contentType, filename, err := services.OpenRespuestaDocument(c.Request().Context(), store(c), services.Storage, kind, id)
		if err != nil {
			return respondError(c, err)
		}
		defer body.Close()

		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Stream(http.StatusOK, contentType, body)
	}
}
