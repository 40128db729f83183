package handlers

import (
	"net/http"

	"jacha_aru_api_go/middleware"
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var usuarios = resource[models.Usuario]{
	name:   "usuario",
	label:  "Usuario",
	list:   services.GetUsuarios,
	get:    services.GetUsuarioByID,
	remove: services.DeleteUsuario,
}

type usuarioRequest struct {
	Nombres    *string              `json:"nombres"`
	Apellidos  *string              `json:"apellidos"`
	Mail       *string              `json:"mail"`
	GoogleID   *string              `json:"google_id"`
	TelegramID *string              `json:"telegram_id"`
	Status     *models.RecordStatus `json:"status"`
	// Password change, /usuarios/me only
	CurrentPass *string `json:"current_pass"`
	Pass        *string `json:"pass"`
}

func (r usuarioRequest) toUpdate() (services.UsuarioUpdate, error) {
	update := services.UsuarioUpdate{GoogleID: r.GoogleID, TelegramID: r.TelegramID, Status: r.Status}
	var err error
	if update.Nombres, err = optionalText("nombres", r.Nombres, 50); err != nil {
		return update, err
	}
	if update.Apellidos, err = optionalText("apellidos", r.Apellidos, 50); err != nil {
		return update, err
	}
	if update.Mail, err = optionalEmail("mail", r.Mail, 50); err != nil {
		return update, err
	}
	return update, nil
}

// UpdateUsuarioHandler handles PUT /usuarios/:id
func UpdateUsuarioHandler(c echo.Context) error {
	id, old, err := usuarios.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usuarioRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Pass != nil {
		return respondError(c, services.ValidationError("passwords can only be changed through /usuarios/me"))
	}
	update, err := req.toUpdate()
	if err != nil {
		return respondError(c, err)
	}

	usuario, err := services.UpdateUsuario(store(c), id, update)
	if err != nil {
		return respondError(c, err)
	}
	return usuarios.updated(c, id, old, usuario)
}

// GetMeHandler handles GET /usuarios/me
func GetMeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	usuario, err := services.GetUsuarioByID(store(c), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, usuario)
}

// UpdateMeHandler handles PUT /usuarios/me. Supplying pass changes the
// password and requires current_pass.
func UpdateMeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	var req usuarioRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Status != nil {
		return respondError(c, services.ValidationError("status cannot be changed on your own profile"))
	}
	update, err := req.toUpdate()
	if err != nil {
		return respondError(c, err)
	}

	usuario, err := services.UpdateProfile(store(c), user.ID, update, req.CurrentPass, req.Pass)
	if err != nil {
		return respondError(c, err)
	}
	return usuarios.updated(c, user.ID, user, usuario)
}
