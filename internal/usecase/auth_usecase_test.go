package usecase

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymarket/internal/domain/entity"
	"studymarket/internal/infrastructure/auth"
)

func newAuthUseCase(t *testing.T, f *fixture) (*AuthUseCase, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthUseCase(f.store.Users(), f.store, f.hasher, tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	uc, tokens := newAuthUseCase(t, f)

	res, err := uc.Register(f.ctx, RegisterInput{Email: "  Alice@Example.com ", Name: " Alice ", Password: "pw123456"})
	require.NoError(t, err)

	claims, err := tokens.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, claims.Role)

	u, err := f.store.Users().GetByID(f.ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice", u.Name)
	assert.NotEqual(t, "pw123456", u.PasswordHash)

	_, err = uc.Register(f.ctx, RegisterInput{Email: "ALICE@example.com", Name: "Other", Password: "x"})
	requireAppError(t, err, http.StatusBadRequest, "Email already exists")

	login, err := uc.Login(f.ctx, "alice@EXAMPLE.com", "pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	uc, _ := newAuthUseCase(t, f)

	_, err := uc.Register(f.ctx, RegisterInput{Email: "bob@example.com", Name: "Bob", Password: "right"})
	require.NoError(t, err)

	_, err = uc.Login(f.ctx, "bob@example.com", "wrong")
	requireAppError(t, err, http.StatusUnauthorized, "Invalid credentials")

	_, err = uc.Login(f.ctx, "nobody@example.com", "right")
	requireAppError(t, err, http.StatusUnauthorized, "Invalid credentials")
}
