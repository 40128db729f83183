package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSecurityAlertsHandler handles GET /security/alerts, newest first
func ListSecurityAlertsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, monitorFrom(c).RecentAlerts())
}
