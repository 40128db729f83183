package handlers

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"jacha_aru_api_go/services"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// bindJSON decodes the request body only; path params are read separately
func bindJSON(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return services.ValidationError("invalid request body")
	}
	return nil
}

// pathID parses a positive numeric path parameter
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.ValidationError("invalid %s", name)
	}
	return uint(id), nil
}

// queryID parses an optional numeric query parameter; absent means 0
func queryID(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, services.ValidationError("invalid %s", name)
	}
	return uint(id), nil
}

// requiredText trims value and checks it is present and at most max runes
func requiredText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", services.ValidationError("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return "", services.ValidationError("%s must be at most %d characters", field, max)
	}
	return value, nil
}

// optionalText validates a partial-update field; nil stays nil
func optionalText(field string, value *string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v, err := requiredText(field, *value, max)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func requiredID(field string, id uint) error {
	if id == 0 {
		return services.ValidationError("%s is required", field)
	}
	return nil
}

func optionalID(field string, id *uint) error {
	if id != nil && *id == 0 {
		return services.ValidationError("invalid %s", field)
	}
	return nil
}

// validEmail accepts a bare address, no display name
func validEmail(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", services.ValidationError("%s is required", field)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", services.ValidationError("%s must be a valid email address", field)
	}
	if len(value) > max {
		return "", services.ValidationError("%s must be at most %d characters", field, max)
	}
	return value, nil
}

func optionalEmail(field string, value *string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v, err := validEmail(field, *value, max)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseDate accepts YYYY-MM-DD and, for clients that send timestamps, RFC 3339
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, services.ValidationError("%s is required", field)
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, services.ValidationError("%s must be a date in YYYY-MM-DD format", field)
}

func optionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
