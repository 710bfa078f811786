// Package database opens the ledger store and keeps its schema current.
// The default store is a local SQLite file; server deployments can point
// DB_DRIVER at postgres instead.
package database

import (
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"splitledger/internal/config"
	"splitledger/internal/logger"
	"splitledger/internal/models"
)

// Models lists every GORM model in migration order.
var Models = []interface{}{
	&models.User{},
	&models.Transaction{},
	&models.GroupExpense{},
	&models.ExpenseShare{},
	&models.Budget{},
	&models.AuditLog{},
}

// Manager handles database connections and schema migration.
type Manager struct {
	db     *gorm.DB
	driver string
	pgURL  string
}

// NewManager opens the configured database.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{driver: cfg.DBDriver}

	switch cfg.DBDriver {
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database at %s: %w", cfg.DBPath, err)
		}
		// Cascading deletes depend on this pragma.
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		m.db = db

	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		m.db = db
		m.pgURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use sqlite or postgres)", cfg.DBDriver)
	}

	return m, nil
}

// Migrate brings the schema up to date. SQLite uses GORM auto-migration;
// postgres applies the versioned SQL migrations from migrations/.
func (m *Manager) Migrate() error {
	if m.driver == "postgres" {
		return m.runSQLMigrations()
	}
	return m.db.AutoMigrate(Models...)
}

func (m *Manager) runSQLMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://migrations", m.pgURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}
