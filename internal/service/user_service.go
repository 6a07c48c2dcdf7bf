package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todo-api/internal/apperr"
	"todo-api/internal/auth"
	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// CreateUserRequest holds the input for direct account creation.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserService exposes the unauthenticated account listing and creation
// operations. Accounts are always returned sanitized.
type UserService interface {
	ListUsers(ctx context.Context) ([]UserResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a UserService over the user repository.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *sanitizeUser(&users[i]))
	}
	return responses, nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("Name, email and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return sanitizeUser(user), nil
}
