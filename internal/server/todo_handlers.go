package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"todo-api/internal/auth"
	"todo-api/internal/service"
)

// identity pulls the claims the auth middleware attached. Routes in the
// /todos group always pass through the middleware, so a miss means a wiring
// bug; the request is rejected either way.
func identity(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authorization token required")
		return nil, false
	}
	return claims, true
}

func todoID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID provided")
		return 0, false
	}
	return uint(id), true
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.todoService.CreateTodo(r.Context(), claims.ID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}

	query := service.ListTodosQuery{
		Completed: r.URL.Query().Get("completed"),
		Date:      r.URL.Query().Get("date"),
	}

	todos, err := s.todoService.ListTodos(r.Context(), claims.ID, query)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) getTodoByIDHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := s.todoService.GetTodoByID(r.Context(), claims.ID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req service.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.todoService.UpdateTodo(r.Context(), claims.ID, id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	deleted, err := s.todoService.DeleteTodo(r.Context(), claims.ID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, deleted)
}
