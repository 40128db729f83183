package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"jacha_aru_api_go/config"
	"jacha_aru_api_go/db"
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared memory name isolates tests while async audit writes see the same data
	dsn := fmt.Sprintf("file:mem_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, testDB.AutoMigrate(models.All()...))

	// Set global DB and a throwaway storage backend
	db.DB = testDB
	services.Storage = services.NewLocalStorage(t.TempDir())
	return testDB
}

type testServer struct {
	e      *echo.Echo
	db     *gorm.DB
	tokens *services.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	testDB := setupTestDB(t)
	tokens := services.NewJWTService("handlers-test-secret", time.Hour)

	e := NewRouter(Dependencies{
		Config: &config.Config{
			Environment:    "test",
			RateLimitAuth:  1000,
			AllowedOrigins: []string{"*"},
		},
		Tokens: tokens,
	})
	return &testServer{e: e, db: testDB, tokens: tokens}
}

// do sends a JSON request through the full router
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// register creates a usuario through the API and returns its token and id
func (s *testServer) register(t *testing.T, mail string) (string, uint) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"nombres":   "Ana",
		"apellidos": "Quispe",
		"mail":      mail,
		"pass":      "secreto1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result struct {
		User        models.Usuario `json:"user"`
		AccessToken string         `json:"access_token"`
	}
	decode(t, rec, &result)
	return result.AccessToken, result.User.ID
}

// create posts body and returns the new row's id
func (s *testServer) create(t *testing.T, token, path string, body interface{}) uint {
	t.Helper()
	rec := s.do(t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var row struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &row)
	require.NotZero(t, row.ID)
	return row.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	decode(t, rec, &body)
	return body.Error
}

// seedFiltro builds one complete taxonomy through the API and returns the
// body of a filtro over it
func (s *testServer) seedFiltro(t *testing.T, token string) map[string]uint {
	t.Helper()
	categoriaID := s.create(t, token, "/categorias", map[string]string{"categoria": "Salud"})
	temaID := s.create(t, token, "/temas", map[string]interface{}{"tema": "Nutricion", "categoria_id": categoriaID})
	indicadorID := s.create(t, token, "/indicadores", map[string]interface{}{"indicador": "Desnutricion", "tema_ids": []uint{temaID}})
	tipoID := s.create(t, token, "/tipos-desegregacion", map[string]string{"tipo_desegregacion": "Sexo"})
	desegregacionID := s.create(t, token, "/desegregaciones", map[string]interface{}{"desegregacion": "Mujer", "tipo_desegregacion_id": tipoID})
	yearID := s.create(t, token, "/years", map[string]int{"year": 2024})
	fuenteID := s.create(t, token, "/fuentes", map[string]interface{}{"fuente": "INE", "year_ids": []uint{yearID}})
	fichaID := s.create(t, token, "/fichas", map[string]interface{}{"ficha": 1, "fuente_ids": []uint{fuenteID}})

	return map[string]uint{
		"categoria_id":          categoriaID,
		"tema_id":               temaID,
		"indicador_id":          indicadorID,
		"desegregacion_id":      desegregacionID,
		"year_id":               yearID,
		"fuente_id":             fuenteID,
		"ficha_metodologica_id": fichaID,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
