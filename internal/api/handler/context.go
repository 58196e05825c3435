package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/api/middleware"
)

// authClaims is the identity material the Auth middleware injected.
type authClaims struct {
	UserID string
	Email  string
	Name   string
	Role   string
	JTI    string
	Expiry time.Time
}

// ctxClaims extracts the auth claims and fast-fails when the middleware
// did not run or the token carried no subject.
func ctxClaims(c echo.Context) (authClaims, error) {
	claims := authClaims{}
	claims.UserID, _ = c.Get(middleware.CtxUserID).(string)
	claims.Email, _ = c.Get(middleware.CtxEmail).(string)
	claims.Name, _ = c.Get(middleware.CtxName).(string)
	claims.Role, _ = c.Get(middleware.CtxRole).(string)
	claims.JTI, _ = c.Get(middleware.CtxJTI).(string)
	claims.Expiry, _ = c.Get(middleware.CtxExpiry).(time.Time)

	if claims.UserID == "" || claims.Role == "" {
		return authClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
