package persistence

import (
	"fmt"
	"time"

	"github.com/pgnest/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the shared GORM connection handed to the repositories
type Database struct {
	DB *gorm.DB
}

// NewDatabaseWithCustomLogger opens the Postgres connection, applies the pool
// settings from config, and verifies it with a ping before handing it out.
func NewDatabaseWithCustomLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
		// Repositories open transactions explicitly where a write spans
		// several rows (bill settlement); single-statement writes don't
		// need the implicit wrapping.
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping reports whether the database is reachable; the health endpoint uses it
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// WithLocation returns a query handle scoped to one PG property. Every
// location-owned table carries a location_id column, so the returned handle
// can be chained with further conditions without leaking rows across
// properties. An empty ID panics: silently returning an unscoped handle
// would expose every property's data.
func (d *Database) WithLocation(locationID string) *gorm.DB {
	if locationID == "" {
		panic("WithLocation called with empty location ID")
	}
	return d.DB.Where("location_id = ?", locationID)
}
