package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/pkg/errors"
	"studymarket/pkg/response"
)

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(entity.Role)
			if !ok {
				return response.Error(c, errors.Unauthorized("Unauthorized", nil))
			}
			if !slices.Contains(roles, role) {
				return response.Error(c, errors.Forbidden("Forbidden", nil))
			}
			return next(c)
		}
	}
}

func StudentOnly() echo.MiddlewareFunc {
	return RequireRoles(entity.RoleStudent)
}

func StaffOnly() echo.MiddlewareFunc {
	return RequireRoles(entity.RoleStaff, entity.RoleAdmin)
}

func AdminOnly() echo.MiddlewareFunc {
	return RequireRoles(entity.RoleAdmin)
}
