package handlers

import (
	"context"
	"net/http"
	"time"

	"jacha_aru_api_go/db"
	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Storage  string `json:"storage,omitempty"`
}

// HealthHandler reports liveness and whether the database answers a ping
func HealthHandler(c echo.Context) error {
	resp := healthResponse{Status: "ok", Database: "ok"}
	if services.Storage != nil {
		resp.Storage = services.Storage.Name()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.From(c.Request().Context()).Warn("health check failed", zap.Error(err))
		resp.Status, resp.Database = "degraded", "unreachable"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}
