package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vanguard/directory/internal/core/domain"
)

// RBAC enforces role-based access control on the resolved actor.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allowed[ActorFrom(c).Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
