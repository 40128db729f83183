package services

import (
	"unicode/utf8"
)

// Password requirements
const (
	MinPasswordLength = 6
	// bcrypt only looks at the first 72 bytes
	MaxPasswordBytes = 72
)

// ValidatePassword checks the length bounds of a new password
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return validationf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return validationf("password must be at most %d bytes long", MaxPasswordBytes)
	}
	return nil
}
