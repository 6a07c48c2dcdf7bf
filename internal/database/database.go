// Package database owns the connection to Postgres: creating the working
// database when absent, opening the GORM handle, and health reporting.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-api/internal/config"
)

// Service exposes the database handle plus lifecycle and health operations.
type Service interface {
	Health() map[string]string
	Close() error
	GetDB() *gorm.DB
	// SQLDB returns the underlying pool for code that speaks plain SQL,
	// such as the migration runner.
	SQLDB() (*sql.DB, error)
}

type service struct {
	db     *gorm.DB
	dbname string
}

// New opens a GORM connection for the configured working database. The
// handle is constructed once here and injected into whatever needs it; there
// is no package-level pool.
func New(cfg *config.Config) (Service, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
		// Surfaces unique-key violations as gorm.ErrDuplicatedKey so the
		// services can map them to conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &service{db: db, dbname: cfg.DBName}, nil
}

// EnsureDatabase connects to the administrative database and creates the
// working database if it does not exist yet. Used once at startup, before New.
func EnsureDatabase(ctx context.Context, cfg *config.Config) error {
	admin, err := sql.Open("pgx", cfg.AdminDSN())
	if err != nil {
		return fmt.Errorf("opening admin connection: %w", err)
	}
	defer admin.Close()

	var exists bool
	err = admin.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking for database %q: %w", cfg.DBName, err)
	}
	if exists {
		return nil
	}

	// Database names cannot be bound as parameters.
	if _, err := admin.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %q", cfg.DBName)); err != nil {
		return fmt.Errorf("creating database %q: %w", cfg.DBName, err)
	}
	log.Printf("Created database %q", cfg.DBName)
	return nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

func (s *service) SQLDB() (*sql.DB, error) {
	return s.db.DB()
}

// Health pings the database and reports pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)
	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("failed to get underlying DB for health check: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	if dbStats.OpenConnections > 80 {
		stats["message"] = "The database is experiencing heavy load."
	}
	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB for closing: %v", err)
		return err
	}
	log.Printf("Closing connection pool for database: %s", s.dbname)
	return sqlDB.Close()
}
