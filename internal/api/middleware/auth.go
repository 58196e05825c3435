package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxName   = "name"
	CtxRole   = "role"
	CtxJTI    = "jti"
	CtxExpiry = "token_expiry"
)

// CookieName is the slot the session token travels in. A bearer
// Authorization header is accepted as a fallback for non-browser
// clients.
const CookieName = "nexaboard_token"

// Auth validates the session JWT from the cookie or the Authorization
// header, rejects revoked tokens, and injects claims into context.
// revoker may be nil to skip the denylist check.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := TokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			claims, ok := ParseToken(raw, jwtSecret)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			jti, _ := claims["jti"].(string)
			if revoker != nil && jti != "" {
				revoked, err := revoker.IsRevoked(c.Request().Context(), jti)
				if err == nil && revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxName, claims["name"])
			c.Set(CtxRole, claims["role"])
			c.Set(CtxJTI, jti)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(CtxExpiry, exp.Time)
			} else {
				c.Set(CtxExpiry, time.Time{})
			}

			return next(c)
		}
	}
}

// ParseToken validates a signed session token and returns its claims.
// Exposed for the logout handler, which must accept requests with or
// without a live session.
func ParseToken(raw, jwtSecret string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, false
	}
	return claims, true
}

// TokenFromRequest extracts the raw session token from the cookie or
// the Authorization header, returning "" when neither is present.
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
