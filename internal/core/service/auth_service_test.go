package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexaboard/nexaboard/internal/core/domain"
	"github.com/nexaboard/nexaboard/internal/core/ports"
	"github.com/nexaboard/nexaboard/pkg/identity"
)

func registerInput(email, password, name, role string) ports.RegisterInput {
	return ports.RegisterInput{Email: email, Password: password, Name: name, Role: role}
}

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "u" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindByRoles(_ context.Context, roles ...identity.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, cloneUser(u))
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubRevoker struct {
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (s *stubRevoker) Revoke(_ context.Context, jti string, until time.Duration) error {
	s.revoked[jti] = until
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.revoked[jti]
	return ok, nil
}

func mustRegister(t *testing.T, svc *AuthService, email, password, name, role string) (string, *domain.User) {
	t.Helper()
	token, user, err := svc.Register(context.Background(), registerInput(email, password, name, role))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return token, user
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)

	token, user := mustRegister(t, svc, "alice@example.com", "pass123", "Alice", "")
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != identity.RoleMember {
		t.Fatalf("expected default role member, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), registerInput("", "pass", "x", "")); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), registerInput("bob@example.com", "pass", "Bob", "superuser")); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)

	mustRegister(t, svc, "bob@example.com", "pass", "Bob", "")
	if _, _, err := svc.Register(context.Background(), registerInput("bob@example.com", "other", "Bobby", "")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)
	mustRegister(t, svc, "carol@example.com", "hunter2", "Carol", "manager")

	token, user, err := svc.Login(context.Background(), "carol@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Role != identity.RoleManager {
		t.Fatalf("unexpected role: %s", user.Role)
	}

	claims := parseClaims(t, token, "secret")
	if claims["sub"] != user.ID {
		t.Fatalf("token subject %v, want %s", claims["sub"], user.ID)
	}
	if claims["role"] != "manager" {
		t.Fatalf("token role %v, want manager", claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected a token id claim")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)
	mustRegister(t, svc, "dave@example.com", "right", "Dave", "")

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)

	// An unknown account must fail the same way as a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newStubUserRepo()
	revoker := newStubRevoker()
	svc := NewAuthService(repo, revoker, "secret", time.Hour)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "jti-1"); !revoked {
		t.Fatalf("expected token to be revoked")
	}

	// An already-expired token needs no denylist entry.
	if err := svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Logout of expired token returned error: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "jti-2"); revoked {
		t.Fatalf("expired token should not be denylisted")
	}
}

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	return claims
}
