package handlers

import (
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

var years = resource[models.Year]{
	name:   "year",
	label:  "Year",
	list:   services.GetYears,
	get:    services.GetYearByID,
	remove: services.DeleteYear,
}

type yearRequest struct {
	Year   *int                 `json:"year"`
	Status *models.RecordStatus `json:"status"`
}

func validYear(year int) error {
	if year < 1 || year > 9999 {
		return services.ValidationError("year must be between 1 and 9999")
	}
	return nil
}

func CreateYearHandler(c echo.Context) error {
	var req yearRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Year == nil {
		return respondError(c, services.ValidationError("year is required"))
	}
	if err := validYear(*req.Year); err != nil {
		return respondError(c, err)
	}

	year, err := services.CreateYear(store(c), services.YearInput{Year: *req.Year})
	if err != nil {
		return respondError(c, err)
	}
	return years.created(c, year.ID, year)
}

func UpdateYearHandler(c echo.Context) error {
	id, old, err := years.current(c)
	if err != nil {
		return respondError(c, err)
	}
	var req yearRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Year != nil {
		if err := validYear(*req.Year); err != nil {
			return respondError(c, err)
		}
	}

	year, err := services.UpdateYear(store(c), id, services.YearUpdate{Year: req.Year, Status: req.Status})
	if err != nil {
		return respondError(c, err)
	}
	return years.updated(c, id, old, year)
}
