// Package auth issues and verifies the bearer tokens used on protected
// routes, hashes account passwords, and provides the HTTP middleware that
// attaches the verified identity to the request context.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todo-api/internal/apperr"
)

// Claims are the identity assertions carried inside a token. Verification is
// stateless: no database lookup happens, so a deleted account keeps a usable
// token until it expires.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens with a process-wide secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService. ttl is the validity window applied
// to every issued token.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token embedding the given identity, valid for the
// configured window from now.
func (s *TokenService) Issue(id, email, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    id,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning the embedded claims.
// Any failure (malformed, bad signature, expired) surfaces as an
// authentication error.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperr.Authentication("Invalid or expired token")
	}
	if !token.Valid {
		return nil, apperr.Authentication("Invalid or expired token")
	}
	return claims, nil
}
