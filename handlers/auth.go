package handlers

import (
	"errors"
	"net/http"

	"jacha_aru_api_go/middleware"
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Nombres    string  `json:"nombres"`
	Apellidos  string  `json:"apellidos"`
	Mail       string  `json:"mail"`
	Pass       string  `json:"pass"`
	GoogleID   *string `json:"google_id"`
	TelegramID *string `json:"telegram_id"`
}

type loginRequest struct {
	Mail string `json:"mail"`
	Pass string `json:"pass"`
}

// RegisterHandler handles POST /auth/register. A soft-deleted account with
// the same mail is restored instead of duplicated.
func RegisterHandler(c echo.Context) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	input := services.RegisterInput{GoogleID: req.GoogleID, TelegramID: req.TelegramID, Pass: req.Pass}
	var err error
	if input.Nombres, err = requiredText("nombres", req.Nombres, 50); err != nil {
		return respondError(c, err)
	}
	if input.Apellidos, err = requiredText("apellidos", req.Apellidos, 50); err != nil {
		return respondError(c, err)
	}
	if input.Mail, err = validEmail("mail", req.Mail, 50); err != nil {
		return respondError(c, err)
	}
	if err := services.ValidatePassword(req.Pass); err != nil {
		return respondError(c, err)
	}

	result, err := services.Register(store(c), tokensFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}

	action, description := models.AuditActionCreate, "Registered usuario"
	if result.Restored {
		action, description = models.AuditActionRestore, "Restored usuario"
	}
	actx := middleware.GetAuditContext(c)
	actx.UsuarioID, actx.Mail = result.User.ID, result.User.Mail
	services.LogAuditEvent(dbForAudit(), actx, action, "usuario", result.User.ID, description, nil, result.User)

	return c.JSON(http.StatusCreated, result)
}

// LoginHandler handles POST /auth/login
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Mail == "" || req.Pass == "" {
		return respondError(c, services.ValidationError("mail and pass are required"))
	}

	result, err := services.Login(store(c), tokensFrom(c), req.Mail, req.Pass)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			monitorFrom(c).TrackFailedLogin(c.RealIP())
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
