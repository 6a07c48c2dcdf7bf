package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-api/internal/apperr"
	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// CreateTodoRequest holds the data needed to create a new todo.
type CreateTodoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTodoRequest holds the data for updating an existing todo. Pointers
// distinguish a field being omitted from being set to its zero value.
type UpdateTodoRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ListTodosQuery carries the raw query-string filters; validation happens in
// the service so the handler stays thin.
type ListTodosQuery struct {
	Completed string
	Date      string
}

// TodoResponse is the representation of a todo returned to clients.
type TodoResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedBy   string  `json:"createdBy"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// TodoService contains the business logic for owner-scoped todo operations.
// Every operation takes the authenticated owner's id; reads, updates, and
// deletes of another account's item fail with an authorization error, while a
// missing item fails with not-found (existence is checked first).
type TodoService interface {
	CreateTodo(ctx context.Context, ownerID string, req CreateTodoRequest) (*TodoResponse, error)
	GetTodoByID(ctx context.Context, ownerID string, id uint) (*TodoResponse, error)
	ListTodos(ctx context.Context, ownerID string, query ListTodosQuery) ([]TodoResponse, error)
	UpdateTodo(ctx context.Context, ownerID string, id uint, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, ownerID string, id uint) (*TodoResponse, error)
}

type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService creates a new todo service on top of the given repository.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) CreateTodo(ctx context.Context, ownerID string, req CreateTodoRequest) (*TodoResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("Name is required")
	}
	description := strings.TrimSpace(req.Description)

	todo := &domain.Todo{
		Name:        name,
		Description: &description,
		Completed:   req.Completed,
		CreatedBy:   ownerID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return todoResponse(todo), nil
}

func (s *todoService) GetTodoByID(ctx context.Context, ownerID string, id uint) (*TodoResponse, error) {
	todo, err := s.fetchOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return todoResponse(todo), nil
}

func (s *todoService) ListTodos(ctx context.Context, ownerID string, query ListTodosQuery) ([]TodoResponse, error) {
	filter := repository.TodoFilter{OwnerID: ownerID}

	if query.Completed != "" {
		switch query.Completed {
		case "true":
			completed := true
			filter.Completed = &completed
		case "false":
			completed := false
			filter.Completed = &completed
		default:
			return nil, apperr.Validation("completed must be true or false")
		}
	}

	if query.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", query.Date, time.Local)
		if err != nil {
			return nil, apperr.Validation("date must be in YYYY-MM-DD format")
		}
		filter.Day = &day
	}

	todos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, *todoResponse(&todos[i]))
	}
	return responses, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, ownerID string, id uint, req UpdateTodoRequest) (*TodoResponse, error) {
	todo, err := s.fetchOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name == nil && req.Description == nil && req.Completed == nil {
		return nil, apperr.Validation("No fields provided")
	}

	if req.Name != nil {
		todo.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		todo.Description = &trimmed
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("updating todo %d: %w", id, err)
	}
	return todoResponse(todo), nil
}

func (s *todoService) DeleteTodo(ctx context.Context, ownerID string, id uint) (*TodoResponse, error) {
	todo, err := s.fetchOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return todoResponse(todo), nil
}

// fetchOwned loads the item and enforces ownership. Existence is checked
// before ownership so a caller can tell 404 from 403.
func (s *todoService) fetchOwned(ctx context.Context, ownerID string, id uint) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Todo not found")
		}
		return nil, fmt.Errorf("fetching todo %d: %w", id, err)
	}
	if todo.CreatedBy != ownerID {
		return nil, apperr.Authorization("Unauthorized access to this todo")
	}
	return todo, nil
}

func todoResponse(todo *domain.Todo) *TodoResponse {
	return &TodoResponse{
		ID:          todo.ID,
		Name:        todo.Name,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedBy:   todo.CreatedBy,
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.Format(time.RFC3339),
	}
}
