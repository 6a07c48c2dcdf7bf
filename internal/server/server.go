package server

import (
	"fmt"
	"net/http"
	"time"

	"todo-api/internal/auth"
	"todo-api/internal/config"
	"todo-api/internal/database"
	"todo-api/internal/service"
)

type Server struct {
	port        int
	authService service.AuthService
	todoService service.TodoService
	userService service.UserService
	tokens      *auth.TokenService
	db          database.Service
}

// NewServer wires the services into an http.Server ready to listen.
func NewServer(
	cfg *config.Config,
	authService service.AuthService,
	todoService service.TodoService,
	userService service.UserService,
	tokens *auth.TokenService,
	dbService database.Service,
) *http.Server {
	appServer := &Server{
		port:        cfg.Port,
		authService: authService,
		todoService: todoService,
		userService: userService,
		tokens:      tokens,
		db:          dbService,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
