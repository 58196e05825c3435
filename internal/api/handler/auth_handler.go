package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/api/metrics"
	"github.com/nexaboard/nexaboard/internal/api/middleware"
	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
)

// AuthHandler handles registration, login, logout and session recovery.
// The session token travels in an HttpOnly cookie so the browser client
// never touches it.
type AuthHandler struct {
	authService  ports.AuthService
	jwtSecret    string
	cookieSecure bool
	cookieTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, jwtSecret string, cookieSecure bool, cookieTTL time.Duration) *AuthHandler {
	if cookieTTL <= 0 {
		cookieTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, jwtSecret: jwtSecret, cookieSecure: cookieSecure, cookieTTL: cookieTTL}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=member manager admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account and starts a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  identity.Identity
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, user.Identity())
}

// Login authenticates a user and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  identity.Identity
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, user.Identity())
}

// Me returns the identity behind the presented session token. The
// browser client calls this once at startup to survive a page reload.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  identity.Identity
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		metrics.SessionRecoveriesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), claims.UserID)
	if err != nil {
		metrics.SessionRecoveriesTotal.WithLabelValues("invalid").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			// Token is valid but the account is gone.
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		return err
	}

	metrics.SessionRecoveriesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, user.Identity())
}

// Logout revokes the presented token and clears the cookie. The route
// is not auth-gated: calling it without a valid session, or twice,
// still succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// The cookie is cleared up front, before the response commits, so
	// a half-failed logout still leaves the client logged out.
	h.clearSessionCookie(c)

	if raw := middleware.TokenFromRequest(c); raw != "" {
		if claims, ok := middleware.ParseToken(raw, h.jwtSecret); ok {
			jti, _ := claims["jti"].(string)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && jti != "" {
				if err := h.authService.Logout(c.Request().Context(), jti, exp.Time); err != nil {
					return err
				}
			}
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.cookieTTL),
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
