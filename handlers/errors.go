package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMsg = "internal server error"

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a service error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": msg}. Unclassified errors are logged
// and hidden behind a generic message.
func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.From(c.Request().Context()).Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("route", c.Path()),
			zap.Error(err),
		)
		msg = internalErrorMsg
	}
	return c.JSON(status, errorResponse{Error: msg})
}

// HTTPErrorHandler renders errors that escape handlers (routing misses,
// middleware rejections, panics) in the same shape as respondError.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		if he.Code >= http.StatusInternalServerError {
			logger.From(c.Request().Context()).Error("request failed", zap.Error(err))
			msg = internalErrorMsg
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = c.JSON(he.Code, errorResponse{Error: msg})
		return
	}

	_ = respondError(c, err)
}
