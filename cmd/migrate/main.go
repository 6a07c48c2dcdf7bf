// Command migrate applies the schema migrations and exits. The --reset flag
// destructively drops and recreates the schema first; it exists only here,
// never on the API entry point.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"todo-api/internal/config"
	"todo-api/internal/database"
	"todo-api/internal/migrate"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the schema before migrating (destructive)")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	if err := database.EnsureDatabase(ctx, cfg); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := migrate.New(db, migrate.Scripts()).Run(ctx, migrate.Options{Reset: *reset}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations up to date.")
}
