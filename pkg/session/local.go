package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

type localUser struct {
	id           string
	email        string
	name         string
	role         identity.Role
	passwordHash []byte
}

// LocalVerifier validates credentials against an in-memory user table.
// It also acts as the known-users collection for name resolution when a
// self-encoded artifact is recovered.
type LocalVerifier struct {
	mu    sync.Mutex
	users map[string]*localUser // keyed by lowercase email

	// Latency, when positive, delays every Verify and Register call to
	// simulate a network round trip.
	Latency time.Duration
}

func NewLocalVerifier() *LocalVerifier {
	return &LocalVerifier{users: make(map[string]*localUser)}
}

func (v *LocalVerifier) wait(ctx context.Context) error {
	if v.Latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(v.Latency):
		return nil
	}
}

func (v *LocalVerifier) Verify(ctx context.Context, email, password string) (*identity.Identity, error) {
	if err := v.wait(ctx); err != nil {
		return nil, ErrUnreachable
	}

	v.mu.Lock()
	u, ok := v.users[strings.ToLower(email)]
	v.mu.Unlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u.identity(), nil
}

func (v *LocalVerifier) Register(ctx context.Context, email, password, name string, role identity.Role) (*identity.Identity, error) {
	if err := v.wait(ctx); err != nil {
		return nil, ErrUnreachable
	}
	role, ok := identity.ParseRole(string(role))
	if !ok {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(email)

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, exists := v.users[key]; exists {
		return nil, ErrUserExists
	}

	u := &localUser{
		id:           uuid.NewString(),
		email:        email,
		name:         name,
		role:         role,
		passwordHash: hash,
	}
	v.users[key] = u
	return u.identity(), nil
}

// LookupName implements NameResolver over the local user table.
func (v *LocalVerifier) LookupName(_ context.Context, subjectID string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, u := range v.users {
		if u.id == subjectID {
			return u.name, true
		}
	}
	return "", false
}

func (u *localUser) identity() *identity.Identity {
	return &identity.Identity{
		ID:    u.id,
		Email: u.email,
		Name:  u.name,
		Role:  u.role,
	}
}
