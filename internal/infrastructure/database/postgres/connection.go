package postgres

import (
	"fmt"
	"time"

	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/paylinkhq/router-core/pkg/config"
	"github.com/paylinkhq/router-core/pkg/logger"
)

// Database represents the gorm-backed storage connection for the payment
// and refund repositories in internal/infrastructure/database/postgres/repositories.
type Database struct {
	DB     *gorm.DB
	Config *config.DatabaseConfig
}

// NewConnection opens the connection pool used by every postgres repository.
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := buildDSN(cfg)

	db, err := gorm.Open(postgresDriver.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		logger.Error("failed to connect to database", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get underlying sql.DB", err)
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		logger.Error("failed to ping database", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established successfully")
	return db, nil
}

func buildDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
	)
}

// NewDatabase creates a new Database instance.
func NewDatabase(db *gorm.DB, cfg *config.DatabaseConfig) *Database {
	return &Database{DB: db, Config: cfg}
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		logger.Error("failed to get underlying sql.DB for closing", err)
		return err
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("failed to close database connection", err)
		return err
	}

	logger.Info("database connection closed")
	return nil
}

// Ping checks if the database connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetDB returns the underlying GORM database instance.
func (d *Database) GetDB() *gorm.DB {
	return d.DB
}

// AutoMigrate creates/updates the tables backing the domain entities. The
// core owns its schema directly through gorm's auto-migration rather than a
// separate migration runner, since schema evolution is out of scope (spec
// Non-goals).
func (d *Database) AutoMigrate(models ...interface{}) error {
	if err := d.DB.AutoMigrate(models...); err != nil {
		logger.Error("failed to run auto migration", err)
		return fmt.Errorf("failed to run auto migration: %w", err)
	}

	logger.Info("database auto migration completed successfully")
	return nil
}

// BeginTransaction starts a new database transaction.
func (d *Database) BeginTransaction() *gorm.DB {
	return d.DB.Begin()
}

// Health checks the database health.
func (d *Database) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	stats := sqlDB.Stats()
	if stats.OpenConnections > 0 && stats.Idle == 0 {
		logger.Warn("database has open connections but no idle connections")
	}

	return nil
}

// GetStats returns database connection statistics.
func (d *Database) GetStats() map[string]interface{} {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	stats := sqlDB.Stats()
	return map[string]interface{}{
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_idle_time_closed": stats.MaxIdleTimeClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}
}
