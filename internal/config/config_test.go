package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGADMIN_DATABASE", "PORT", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBName != "TodoDB" {
		t.Errorf("DBName = %q, want TodoDB", cfg.DBName)
	}
	if cfg.AdminDBName != "postgres" {
		t.Errorf("AdminDBName = %q, want postgres", cfg.AdminDBName)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.JWTSecret != DefaultJWTSecret {
		t.Errorf("JWTSecret = %q, want the marked development default", cfg.JWTSecret)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "5433")
	t.Setenv("PGUSER", "todo")
	t.Setenv("PGPASSWORD", "hunter2")
	t.Setenv("PGDATABASE", "todos_prod")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "real-secret")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.JWTSecret != "real-secret" {
		t.Errorf("JWTSecret = %q, want real-secret", cfg.JWTSecret)
	}

	want := "host=db.internal user=todo password=hunter2 dbname=todos_prod port=5433 sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", cfg.Port)
	}
}
