package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todo-api/internal/apperr"
	"todo-api/internal/auth"
)

func newAuthService(users *fakeUserRepo) (AuthService, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, tokens), tokens
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, tokens := newAuthService(users)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ada", Email: "ada@x.com", Password: "secret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.User.ID)
	require.Equal(t, "Ada", resp.User.Name)
	require.Equal(t, "ada@x.com", resp.User.Email)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.ID)
	require.Equal(t, "ada@x.com", claims.Email)
	require.Equal(t, "Ada", claims.Name)

	// The stored credential must be a hash, never the plaintext.
	stored, err := users.FindByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret", stored.Password)
	require.True(t, auth.CheckPassword(stored.Password, "secret"))
}

func TestRegister_TrimsInput(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newFakeUserRepo())

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "  Ada ", Email: " ada@x.com ", Password: " secret ",
	})
	require.NoError(t, err)
	require.Equal(t, "Ada", resp.User.Name)
	require.Equal(t, "ada@x.com", resp.User.Email)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newFakeUserRepo())

	for _, req := range []RegisterRequest{
		{Name: "", Email: "a@b.c", Password: "x"},
		{Name: "A", Email: "   ", Password: "x"},
		{Name: "A", Email: "a@b.c", Password: ""},
	} {
		_, err := svc.Register(context.Background(), req)
		require.ErrorIs(t, err, apperr.ErrValidation)
		require.Equal(t, "Name, email, and password are required", apperr.Message(err))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Name: "B", Email: "a@b.c", Password: "y"})
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Equal(t, "Email already registered", apperr.Message(err))
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	t.Parallel()

	// The pre-check misses but the unique index rejects the insert; the
	// loser must still see a conflict, not a crash or a 500.
	users := newFakeUserRepo()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	users.hideFromLookup = true
	_, err = svc.Register(context.Background(), RegisterRequest{Name: "B", Email: "a@b.c", Password: "y"})
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc, tokens := newAuthService(newFakeUserRepo())

	reg, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada", Email: "ada@x.com", Password: "secret"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "ada@x.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, resp.User.ID)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, claims.ID)
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "", Password: "x"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Equal(t, "Email and password are required", apperr.Message(err))
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada", Email: "ada@x.com", Password: "secret"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{Email: "ada@x.com", Password: "nope"})
	_, unknownEmail := svc.Login(context.Background(), LoginRequest{Email: "ghost@x.com", Password: "nope"})

	require.ErrorIs(t, wrongPassword, apperr.ErrAuthentication)
	require.ErrorIs(t, unknownEmail, apperr.ErrAuthentication)
	// Identical message, so a caller cannot enumerate registered emails.
	require.Equal(t, apperr.Message(wrongPassword), apperr.Message(unknownEmail))
	require.Equal(t, "Invalid credentials", apperr.Message(wrongPassword))
}
