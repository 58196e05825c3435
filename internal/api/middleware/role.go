package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

// RequireRole gates a route behind a minimum role. The role hierarchy
// is strictly ordered (member < manager < admin), so an admin passes
// every gate a manager does.
func RequireRole(required identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, _ := c.Get(CtxRole).(string)
			role := identity.Role(roleStr)
			if !role.AtLeast(required) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": fmt.Sprintf("insufficient permission, required role: %s", required),
				})
			}
			return next(c)
		}
	}
}
