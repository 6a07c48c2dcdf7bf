package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"todo-api/internal/auth"
	"todo-api/internal/config"
	"todo-api/internal/database"
	"todo-api/internal/migrate"
	"todo-api/internal/repository"
	"todo-api/internal/server"
	"todo-api/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if dbService != nil {
		log.Println("Closing database connection pool...")
		if err := dbService.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		}
	}

	log.Println("Server exiting")
	done <- true
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Create the working database if this is a fresh environment, then bring
	// the schema up to date. Both are fatal on failure: serving with an
	// inconsistent schema is worse than not serving.
	if err := database.EnsureDatabase(ctx, cfg); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	dbService, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := dbService.SQLDB()
	if err != nil {
		log.Fatalf("Failed to get sql.DB for migrations: %v", err)
	}
	if err := migrate.New(sqlDB, migrate.Scripts()).Run(ctx, migrate.Options{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	gormDB := dbService.GetDB()
	userRepo := repository.NewGormUserRepository(gormDB)
	todoRepo := repository.NewGormTodoRepository(gormDB)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	todoService := service.NewTodoService(todoRepo)
	userService := service.NewUserService(userRepo)

	apiServer := server.NewServer(cfg, authService, todoService, userService, tokens, dbService)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	log.Printf("Starting server on %s", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
