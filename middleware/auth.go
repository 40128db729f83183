package middleware

import (
	"errors"
	"net/http"
	"strings"

	"jacha_aru_api_go/db"
	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// ContextKeyUser is the context key for the authenticated usuario
	ContextKeyUser = "user"
	// ContextKeyClaims holds the verified token claims
	ContextKeyClaims = "claims"
)

// RequireAuth accepts requests carrying a valid bearer token for an active
// usuario, answering 401 otherwise.
func RequireAuth(tokens services.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				logger.From(c.Request().Context()).Debug("token rejected", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			user, err := services.ValidateTokenUser(db.DB.WithContext(c.Request().Context()), claims)
			if err != nil {
				if errors.Is(err, services.ErrUnauthorized) {
					return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
				}
				return err
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetCurrentUser retrieves the authenticated usuario, nil on public routes
func GetCurrentUser(c echo.Context) *models.Usuario {
	if user, ok := c.Get(ContextKeyUser).(*models.Usuario); ok {
		return user
	}
	return nil
}
