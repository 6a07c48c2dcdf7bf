package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-api/internal/apperr"
	"todo-api/internal/auth"
	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// RegisterRequest holds the registration input.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds the login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the sanitized account representation. It never carries the
// password credential.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AuthResponse pairs the sanitized account with a freshly issued token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// AuthService turns raw registration/login input into a verified identity
// and a bearer credential.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates an AuthService over the user repository and token
// service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("Name, email, and password are required")
	}

	// Pre-check for a friendlier error; the unique index is the authority
	// when two registrations race.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing email: %w", err)
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

	return s.respondWithToken(user)
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	// A missing account and a wrong password produce the same error, so the
	// endpoint cannot be used to enumerate registered emails.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("Invalid credentials")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, apperr.Authentication("Invalid credentials")
	}

	return s.respondWithToken(user)
}

func (s *authService) respondWithToken(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &AuthResponse{User: *sanitizeUser(user), Token: token}, nil
}

func sanitizeUser(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
