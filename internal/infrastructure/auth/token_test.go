package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymarket/internal/domain/entity"
)

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(12, entity.RoleStaff)
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 12, claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)
	assert.Equal(t, "12", claims.Subject)
}

func TestParseRejectsBadTokens(t *testing.T) {
	svc, err := NewTokenService("secret", time.Minute)
	require.NoError(t, err)
	other, err := NewTokenService("different", time.Minute)
	require.NoError(t, err)

	foreign, err := other.Issue(1, entity.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Role: entity.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	badRole, err := svc.Issue(1, entity.Role("ROOT"))
	require.NoError(t, err)
	_, err = svc.Parse(badRole)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredTokens(t *testing.T) {
	svc, err := NewTokenService("secret", time.Minute)
	require.NoError(t, err)

	issued := time.Now().Add(-2 * time.Minute)
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue(3, entity.RoleStudent)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceValidatesConfig(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenService("secret", 0)
	assert.Error(t, err)
}
