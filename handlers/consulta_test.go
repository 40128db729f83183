package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultaRapidaLifecycle(t *testing.T) {
	s := newTestServer(t)
	token, usuarioID := s.register(t, "ana@example.com")
	otherToken, _ := s.register(t, "otro@example.com")
	filtroID := s.create(t, token, "/filtros", s.seedFiltro(t, token))

	id := s.create(t, token, "/consultas/rapidas", map[string]interface{}{
		"filtro_id":  filtroID,
		"start_date": "2024-03-01",
	})

	t.Run("DefaultsToCaller", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/consultas/rapidas/"+itoa(id), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var consulta models.ConsultaRapida
		decode(t, rec, &consulta)
		assert.Equal(t, usuarioID, consulta.UsuarioID)
		assert.Equal(t, services.DefaultConsultaState, consulta.State)
	})

	t.Run("ListScopedToCaller", func(t *testing.T) {
		var mine, theirs, all []models.ConsultaRapida
		decode(t, s.do(t, http.MethodGet, "/consultas/rapidas", token, nil), &mine)
		decode(t, s.do(t, http.MethodGet, "/consultas/rapidas", otherToken, nil), &theirs)
		decode(t, s.do(t, http.MethodGet, "/consultas/rapidas/all", otherToken, nil), &all)

		assert.Len(t, mine, 1)
		assert.Empty(t, theirs)
		assert.Len(t, all, 1)
	})

	t.Run("RejectsFieldsOfOtherKinds", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/consultas/rapidas", token, map[string]interface{}{
			"filtro_id": filtroID, "start_date": "2024-03-01", "consulta": "texto",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadDates", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/consultas/rapidas", token, map[string]interface{}{
			"filtro_id": filtroID, "start_date": "01/03/2024",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.do(t, http.MethodPut, "/consultas/rapidas/"+itoa(id), token, map[string]string{"end_date": "2024-02-01"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Update", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/consultas/rapidas/"+itoa(id), token, map[string]interface{}{
			"end_date": "2024-03-31T00:00:00Z",
			"state":    2,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var consulta models.ConsultaRapida
		decode(t, rec, &consulta)
		assert.Equal(t, 2, consulta.State)
		require.NotNil(t, consulta.EndDate)
	})

	t.Run("FiltroDeleteBlocked", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/filtros/"+itoa(filtroID), token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/consultas/rapidas/"+itoa(id), token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		rec = s.do(t, http.MethodGet, "/consultas/rapidas/"+itoa(id), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestConsultaComplejaForInvestigador(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "ana@example.com")
	investigadorID := s.create(t, token, "/investigadores", map[string]string{
		"nombre": "Rosa", "apellido": "Choque", "correo": "rosa@example.com",
	})

	rec := s.do(t, http.MethodPost, "/consultas/complejas", token, map[string]interface{}{
		"investigador_id": investigadorID,
		"start_date":      "2024-05-10",
		"consulta":        "<b>Datos</b> de empleo por municipio",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var consulta models.ConsultaCompleja
	decode(t, rec, &consulta)
	assert.Equal(t, "Datos de empleo por municipio", consulta.Consulta)

	rec = s.do(t, http.MethodGet, "/consultas/complejas?investigador_id="+itoa(investigadorID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []models.ConsultaCompleja
	decode(t, rec, &rows)
	assert.Len(t, rows, 1)

	rec = s.do(t, http.MethodDelete, "/investigadores/"+itoa(investigadorID), token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/consultas/rapidas?investigador_id=1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartRespuesta(t *testing.T, costo, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("costo", costo))
	if filename != "" {
		part, err := w.CreateFormFile("documento", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestRespuestaWithDocument(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "ana@example.com")
	filtroID := s.create(t, token, "/filtros", s.seedFiltro(t, token))
	consultaID := s.create(t, token, "/consultas/rapidas", map[string]interface{}{
		"filtro_id": filtroID, "start_date": "2024-03-01",
	})
	base := "/consultas/rapidas/" + itoa(consultaID) + "/respuestas"

	post := func(costo, filename, content string) *httptest.ResponseRecorder {
		body, contentType := multipartRespuesta(t, costo, filename, content)
		req := httptest.NewRequest(http.MethodPost, base, body)
		req.Header.Set(echo.HeaderContentType, contentType)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	rec := post("150.456", "informe.csv", "a,b\n1,2\n")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var respuesta services.Respuesta
	decode(t, rec, &respuesta)
	assert.Equal(t, "150.46", respuesta.Costo.StringFixed(2))
	require.NotNil(t, respuesta.Documento)

	t.Run("NegativeCosto", func(t *testing.T) {
		rec := post("-1", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("JSONWithoutDocument", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, base, token, map[string]string{"costo": "20"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("UnknownConsulta", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/consultas/rapidas/999/respuestas", token, map[string]string{"costo": "1"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("List", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, base, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var rows []services.Respuesta
		decode(t, rec, &rows)
		assert.Len(t, rows, 2)
	})

	t.Run("Download", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/respuestas/rapidas/"+itoa(respuesta.ID)+"/documento", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a,b\n1,2\n", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	})

	t.Run("ConsultaDeleteBlocked", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/consultas/rapidas/"+itoa(consultaID), token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("DeleteKeepsDocument", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/respuestas/rapidas/"+itoa(respuesta.ID), token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(t, http.MethodGet, "/respuestas/rapidas/"+itoa(respuesta.ID)+"/documento", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		body, _, err := services.Storage.Get(t.Context(), *respuesta.Documento)
		require.NoError(t, err)
		body.Close()
	})
}
