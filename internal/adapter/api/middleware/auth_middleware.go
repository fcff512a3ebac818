package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/infrastructure/auth"
	"studymarket/pkg/errors"
	"studymarket/pkg/response"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenParser
}

func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func bearerToken(c echo.Context) (string, bool) {
	parts := strings.Split(c.Request().Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Unauthorized", nil))
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Unauthorized", err))
		}

		c.Set("uid", claims.UserID)
		c.Set("role", claims.Role)
		return next(c)
	}
}

// Optional sets the caller identity when a valid token is present and lets
// anonymous requests through otherwise.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			return next(c)
		}

		c.Set("uid", claims.UserID)
		c.Set("role", claims.Role)
		return next(c)
	}
}
