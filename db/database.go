package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jacha_aru_api_go/config"
	applog "jacha_aru_api_go/logger"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverLibSQL   = "libsql"
	DriverPostgres = "postgres"
)

var DB *gorm.DB

// Initialize opens the database selected by cfg.DBDriver
func Initialize(cfg *config.Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	conn, err := Open(dialector, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = conn

	applog.Named("db").Info("database connection established", zap.String("driver", driverName(cfg)))
	return nil
}

// Dialector builds the gorm dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch driverName(cfg) {
	case DriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		// WAL for concurrent readers, foreign keys are off by default in sqlite
		return sqlite.Open(cfg.DBPath + "?_journal_mode=WAL&_foreign_keys=on"), nil
	case DriverLibSQL:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the libsql driver")
		}
		dsn := cfg.DatabaseURL
		if cfg.TursoAuthToken != "" {
			dsn += "?authToken=" + cfg.TursoAuthToken
		}
		return sqlite.New(sqlite.Config{DriverName: "libsql", DSN: dsn}), nil
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		return postgres.Open(cfg.DatabaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Open connects with the shared gorm settings. Store errors are translated so
// services can match gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Open(dialector gorm.Dialector, environment string) (*gorm.DB, error) {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
}

func driverName(cfg *config.Config) string {
	if cfg.DBDriver == "" {
		return DriverSQLite
	}
	return strings.ToLower(cfg.DBDriver)
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	applog.Named("db").Info("database migrations completed", zap.Int("models", len(models)))
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
