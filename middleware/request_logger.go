package middleware

import (
	"time"

	"jacha_aru_api_go/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger tags each request with an id, stores a request-scoped logger
// in its context and writes one line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			reqLogger := logger.With(zap.String("request_id", requestID))
			c.SetRequest(req.WithContext(logger.ToContext(req.Context(), reqLogger)))

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
			}

			level := zapcore.InfoLevel
			switch {
			case status >= 500:
				level = zapcore.ErrorLevel
			case status >= 400:
				level = zapcore.WarnLevel
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("route", routeLabel(c)),
				zap.String("uri", req.RequestURI),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if user := GetCurrentUser(c); user != nil {
				fields = append(fields, zap.Uint("usuario_id", user.ID))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			reqLogger.Log(level, "request", fields...)
			return err
		}
	}
}
