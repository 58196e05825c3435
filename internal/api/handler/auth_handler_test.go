package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nexaboard/nexaboard/internal/api/middleware"
	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
	"github.com/nexaboard/nexaboard/pkg/identity"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	currentFn  func(ctx context.Context, userID string) (*domain.User, error)
	logoutFn   func(ctx context.Context, jti string, expiresAt time.Time) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

func (s *stubAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.logoutFn(ctx, jti, expiresAt)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (string, *domain.User, error) {
			if input.Email != "alice@example.com" || input.Name != "Alice" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "token-123", &domain.User{ID: "u1", Email: input.Email, Name: input.Name, Role: identity.RoleMember}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, rec := newTestContext(http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"pass123","name":"Alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := sessionCookie(rec)
	if ck == nil {
		t.Fatalf("expected session cookie")
	}
	if ck.Value != "token-123" || !ck.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", ck)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" || resp["role"] != "member" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.User, error) {
			t.Fatalf("service should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, rec := newTestContext(http.MethodPost, "/api/auth/register", `{"email":"no-password@example.com"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, _ := newTestContext(http.MethodPost, "/api/auth/register",
		`{"email":"bob@example.com","password":"pass","name":"Bob"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "token-xyz", &domain.User{ID: "u2", Email: email, Name: "Carol", Role: identity.RoleManager}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"carol@example.com","password":"hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ck := sessionCookie(rec); ck == nil || ck.Value != "token-xyz" {
		t.Fatalf("expected session cookie with token")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"carol@example.com","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if ck := sessionCookie(rec); ck != nil {
		t.Fatalf("no cookie should be set on failed login")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "u3" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: "u3", Email: "dave@example.com", Name: "Dave", Role: identity.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, rec := newTestContext(http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.CtxUserID, "u3")
	c.Set(middleware.CtxRole, "admin")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u3" || resp["role"] != "admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_AccountGone(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, _ := newTestContext(http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.CtxUserID, "gone")
	c.Set(middleware.CtxRole, "member")

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	revokedJTI := ""
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, jti string, _ time.Time) error {
			revokedJTI = jti
			return nil
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	claims := jwt.MapClaims{
		"sub": "u4",
		"jti": "session-99",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c, rec := newTestContext(http.MethodPost, "/api/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.CookieName, Value: raw})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revokedJTI != "session-99" {
		t.Fatalf("expected token to be revoked, got %q", revokedJTI)
	}
	if ck := sessionCookie(rec); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", ck)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	stub := &stubAuthService{
		logoutFn: func(context.Context, string, time.Time) error {
			t.Fatalf("nothing to revoke without a token")
			return nil
		},
	}
	h := NewAuthHandler(stub, "secret", false, time.Hour)

	c, rec := newTestContext(http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
