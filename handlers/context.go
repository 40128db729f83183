package handlers

import (
	"jacha_aru_api_go/config"
	"jacha_aru_api_go/db"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	contextKeyConfig   = "config"
	contextKeyTokens   = "tokens"
	contextKeyNotifier = "notifier"
	contextKeyMonitor  = "login_monitor"
)

// Dependencies are the collaborators handlers reach through the echo context
type Dependencies struct {
	Config   *config.Config
	Tokens   services.TokenIssuer
	Notifier services.Notifier
	Monitor  *services.LoginMonitor
}

// WithDependencies makes deps available to every handler
func WithDependencies(deps Dependencies) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextKeyConfig, deps.Config)
			c.Set(contextKeyTokens, deps.Tokens)
			c.Set(contextKeyNotifier, deps.Notifier)
			c.Set(contextKeyMonitor, deps.Monitor)
			return next(c)
		}
	}
}

func tokensFrom(c echo.Context) services.TokenIssuer {
	tokens, _ := c.Get(contextKeyTokens).(services.TokenIssuer)
	return tokens
}

// notifierFrom returns nil when mail is not wired, which disables sending
func notifierFrom(c echo.Context) services.Notifier {
	notifier, _ := c.Get(contextKeyNotifier).(services.Notifier)
	return notifier
}

func monitorFrom(c echo.Context) *services.LoginMonitor {
	monitor, _ := c.Get(contextKeyMonitor).(*services.LoginMonitor)
	return monitor
}

// store is the database bound to the request lifetime. Audit writes use
// db.DB directly since they outlive the request.
func store(c echo.Context) *gorm.DB {
	return db.DB.WithContext(c.Request().Context())
}

func dbForAudit() *gorm.DB {
	return db.DB
}
