package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"jacha_aru_api_go/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// MinJWTSecretLength is the minimum required length for the token secret in production
	MinJWTSecretLength = 32
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not set
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	ServerHost  string
	ServerPort  string
	Environment string
	// Database
	DBDriver       string // sqlite, libsql or postgres
	DBPath         string
	DatabaseURL    string
	TursoAuthToken string
	// Auth
	JWTSecret     string
	JWTTTL        time.Duration
	RateLimitAuth int // requests per minute per IP on /auth
	// SecurityAlertEmail receives failed-login alerts when set
	SecurityAlertEmail string
	// Logging
	LogLevel string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged instead of sent
	// Cloudflare R2 Storage
	UploadDir         string
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Other
	AllowedOrigins []string
}

// Load reads .env (if present) and the environment. It fails when the token
// secret is missing or too weak for the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Named("config").Debug("no .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	jwtSecret := os.Getenv("JWT_SECRET")
	if err := ValidateJWTSecret(jwtSecret, environment); err != nil {
		return nil, err
	}

	return &Config{
		ServerHost:         getEnv("SERVER_HOST", ""),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        environment,
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:             getEnv("DB_PATH", "db/app.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		TursoAuthToken:     getEnv("TURSO_AUTH_TOKEN", ""),
		JWTSecret:          jwtSecret,
		JWTTTL:             getEnvDuration("JWT_TTL", 24*time.Hour),
		RateLimitAuth:      getEnvInt("RATE_LIMIT_AUTH", 10),
		SecurityAlertEmail: getEnv("SECURITY_ALERT_EMAIL", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@jacha-aru.org"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Jacha Aru"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		UploadDir:          getEnv("UPLOAD_DIR", "static/uploads"),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		logger.Named("config").Debug("using default value", zap.String("key", key), zap.String("default", defaultValue))
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// ValidateJWTSecret checks the token signing secret. It is always required;
// production additionally rejects short or well-known values.
func ValidateJWTSecret(secret string, environment string) error {
	if strings.TrimSpace(secret) == "" {
		return ErrMissingJWTSecret
	}

	insecureDefaults := []string{
		"secret",
		"change-me",
		"changeme",
		"jwt-secret",
		"development",
		"test",
	}
	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				return fmt.Errorf("JWT_SECRET is set to an insecure default value")
			}
			logger.Named("config").Warn("JWT_SECRET is set to an insecure default value, acceptable only in development")
			return nil
		}
	}

	if environment == "production" && len(secret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in production (current: %d)", MinJWTSecretLength, len(secret))
	}

	return nil
}
