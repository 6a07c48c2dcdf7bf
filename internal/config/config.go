// Package config loads runtime settings from the environment. A .env file in
// the working directory is picked up automatically via godotenv.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// DefaultJWTSecret is used only when JWT_SECRET is not supplied. It is
// intentionally recognizable so it never survives into production unnoticed.
const DefaultJWTSecret = "dev-insecure-todo-secret-do-not-use-in-prod"

// Config holds all runtime settings for the API and the migration entry point.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	// AdminDBName is only used to create DBName when it does not exist yet.
	AdminDBName string

	Port      int
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from the environment, applying development
// defaults for anything unset.
func Load() *Config {
	cfg := &Config{
		DBHost:      getenv("PGHOST", "localhost"),
		DBPort:      getenv("PGPORT", "5432"),
		DBUser:      getenv("PGUSER", "postgres"),
		DBPassword:  getenv("PGPASSWORD", "postgres"),
		DBName:      getenv("PGDATABASE", "TodoDB"),
		AdminDBName: getenv("PGADMIN_DATABASE", "postgres"),
		Port:        8080,
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    24 * time.Hour,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil || port <= 0 {
			log.Printf("Warning: invalid PORT %q, using default %d", portStr, cfg.Port)
		} else {
			cfg.Port = port
		}
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set, using insecure development default")
		cfg.JWTSecret = DefaultJWTSecret
	}

	return cfg
}

// DSN builds the connection string for the working database.
func (c *Config) DSN() string {
	return c.dsnFor(c.DBName)
}

// AdminDSN builds the connection string for the administrative database.
func (c *Config) AdminDSN() string {
	return c.dsnFor(c.AdminDBName)
}

func (c *Config) dsnFor(dbname string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, dbname, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
