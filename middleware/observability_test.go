package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"jacha_aru_api_go/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerSetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger())

	var fromCtx bool
	e.GET("/health", func(c echo.Context) error {
		fromCtx = logger.From(c.Request().Context()) != logger.L()
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.True(t, fromCtx)

	t.Run("KeepsIncomingID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
	})
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/filtros/:id", func(c echo.Context) error {
		if c.Param("id") == "0" {
			return echo.NewHTTPError(http.StatusNotFound, "missing")
		}
		return c.NoContent(http.StatusOK)
	})

	okBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/filtros/:id", "200"))
	notFoundBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/filtros/:id", "404"))

	for _, id := range []string{"1", "2", "0"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/filtros/"+id, nil))
	}

	require.Equal(t, okBefore+2, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/filtros/:id", "200")))
	assert.Equal(t, notFoundBefore+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/filtros/:id", "404")))
}
