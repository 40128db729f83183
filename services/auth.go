package services

import (
	"errors"
	"fmt"
	"sync"

	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

const invalidCredentialsMsg = "invalid credentials"

// RegisterInput is a validated registration request
type RegisterInput struct {
	Nombres    string
	Apellidos  string
	Mail       string
	Pass       string
	GoogleID   *string
	TelegramID *string
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	User        *models.Usuario `json:"user"`
	AccessToken string          `json:"access_token"`
	// Restored is set when Register revived a soft-deleted usuario
	Restored bool `json:"restored,omitempty"`
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword verifies a password against a hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// unknownUserHash is compared against when the mail is not registered, so an
// unknown mail costs the same bcrypt work as a wrong password.
var unknownUserHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("jacha-aru-unknown-usuario"), BcryptCost)
	if err != nil {
		panic(fmt.Sprintf("failed to build placeholder hash: %v", err))
	}
	return string(hash)
})

// comparePassword is swapped in tests to observe which hash a login checks
var comparePassword = CheckPassword

// Register creates a usuario, or restores a soft-deleted one with the same
// mail keeping its id.
func Register(db *gorm.DB, tokens TokenIssuer, input RegisterInput) (*AuthResult, error) {
	mail := normalizeEmail(input.Mail)

	hash, err := HashPassword(input.Pass)
	if err != nil {
		return nil, err
	}

	var usuario models.Usuario
	restored := false
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.Usuario
		lookup := tx.Unscoped().Where("mail = ?", mail).First(&existing)
		switch {
		case lookup.Error == nil && !existing.DeletedAt.Valid:
			return conflictf(duplicateUsuarioMsg)
		case lookup.Error == nil:
			result := tx.Unscoped().Model(&models.Usuario{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
				"deleted_at":  nil,
				"status":      models.StatusActive,
				"nombres":     input.Nombres,
				"apellidos":   input.Apellidos,
				"pass":        hash,
				"google_id":   input.GoogleID,
				"telegram_id": input.TelegramID,
			})
			if result.Error != nil {
				return translateStoreError(result.Error, "restore usuario", duplicateUsuarioMsg)
			}
			restored = true
			return tx.First(&usuario, existing.ID).Error
		case !errors.Is(lookup.Error, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to look up usuario: %w", lookup.Error)
		}

		usuario = models.Usuario{
			Nombres:    input.Nombres,
			Apellidos:  input.Apellidos,
			Mail:       mail,
			Pass:       hash,
			GoogleID:   input.GoogleID,
			TelegramID: input.TelegramID,
		}
		return createRecord(tx, labelUsuario, &usuario, duplicateUsuarioMsg)
	})
	if err != nil {
		return nil, err
	}

	authEventsTotal.WithLabelValues("register").Inc()
	if restored {
		LogSecurityEvent("REGISTER_RESTORE", usuario.ID, mail)
	}
	result, err := issue(tokens, &usuario)
	if err != nil {
		return nil, err
	}
	result.Restored = restored
	return result, nil
}

// Login checks credentials against active usuarios. Unknown mail and wrong
// password fail the same way.
func Login(db *gorm.DB, tokens TokenIssuer, mail, pass string) (*AuthResult, error) {
	mail = normalizeEmail(mail)

	var usuario models.Usuario
	err := db.Where("mail = ?", mail).First(&usuario).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up usuario: %w", err)
	}
	found := err == nil
	hash := usuario.Pass
	if !found {
		hash = unknownUserHash()
	}
	if !comparePassword(pass, hash) || !found {
		authEventsTotal.WithLabelValues("login_failed").Inc()
		LogSecurityEvent("LOGIN_FAILED", usuario.ID, mail)
		return nil, unauthorized(invalidCredentialsMsg)
	}

	authEventsTotal.WithLabelValues("login").Inc()
	return issue(tokens, &usuario)
}

// ValidateTokenUser resolves verified claims to an active usuario
func ValidateTokenUser(db *gorm.DB, claims *TokenClaims) (*models.Usuario, error) {
	if claims == nil || claims.UsuarioID == 0 {
		return nil, unauthorized("invalid token")
	}

	var usuario models.Usuario
	if err := db.First(&usuario, claims.UsuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			LogSecurityEvent("TOKEN_UNKNOWN_USER", claims.UsuarioID, claims.Mail)
			return nil, unauthorized("invalid token")
		}
		return nil, fmt.Errorf("failed to load usuario: %w", err)
	}
	return &usuario, nil
}

func issue(tokens TokenIssuer, usuario *models.Usuario) (*AuthResult, error) {
	token, err := tokens.Sign(TokenClaims{UsuarioID: usuario.ID, Mail: usuario.Mail})
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: usuario, AccessToken: token}, nil
}

// LogSecurityEvent logs security-related events
func LogSecurityEvent(event string, usuarioID uint, details string) {
	logger.Named("security").Warn("security event",
		zap.String("event", event),
		zap.Uint("usuario_id", usuarioID),
		zap.String("details", details),
	)
}
