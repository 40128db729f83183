package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kinds. Handlers map them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)

// DomainError carries a user-facing message for one of the error kinds
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func notFound(label string, id uint) error {
	return &DomainError{Kind: ErrNotFound, Message: fmt.Sprintf("%s with ID %d not found", label, id)}
}

func conflictf(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationError builds an ErrValidation error for the HTTP boundary
func ValidationError(format string, args ...interface{}) error {
	return validationf(format, args...)
}

func unauthorized(message string) error {
	return &DomainError{Kind: ErrUnauthorized, Message: message}
}

// translateStoreError maps constraint violations raised by a write to domain
// errors. duplicateMsg is used for unique violations.
func translateStoreError(err error, op string, duplicateMsg string) error {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	isPg := errors.As(err, &pgErr)

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), isPg && pgErr.Code == pgerrcode.UniqueViolation:
		return &DomainError{Kind: ErrConflict, Message: duplicateMsg}
	case errors.Is(err, gorm.ErrForeignKeyViolated), isPg && pgErr.Code == pgerrcode.ForeignKeyViolation:
		return &DomainError{Kind: ErrConflict, Message: "referenced record is missing or still in use"}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
