package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

// Outcome is the result of a login or register attempt. Expected
// failures (bad credentials, duplicate email, unreachable verifier) are
// reported here with a human-readable reason, never as an error.
type Outcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

func success() Outcome {
	return Outcome{Success: true}
}

func failure(reason string) Outcome {
	return Outcome{Success: false, Reason: reason}
}

// Store is the single source of truth for "who is currently logged in".
// It owns the durable artifact slot: nothing else writes to it.
//
// Concurrent calls to Login are not deduplicated; the last call to
// resolve wins and sets the identity accordingly. A Logout issued while
// a Login is in flight does not cancel it — callers needing
// exactly-once semantics should disable repeat submission while a call
// is pending.
type Store struct {
	verifier Verifier
	backend  Backend
	log      zerolog.Logger

	mu      sync.Mutex
	id      *identity.Identity
	loading bool
}

// NewStore builds a Store. It starts in the loading state; call
// Initialize once to resolve it.
func NewStore(verifier Verifier, backend Backend, log zerolog.Logger) *Store {
	return &Store{
		verifier: verifier,
		backend:  backend,
		log:      log,
		loading:  true,
	}
}

// Initialize attempts artifact recovery once at startup. Every failure
// during recovery, including an unreachable server, resolves to a nil
// identity: the store never stays pending.
func (s *Store) Initialize(ctx context.Context) {
	recovered := s.backend.Recover(ctx)

	s.mu.Lock()
	s.id = recovered
	s.loading = false
	s.mu.Unlock()

	if recovered != nil {
		s.log.Debug().Str("email", recovered.Email).Msg("session recovered from stored artifact")
	}
}

// Login verifies the credentials and, on success, installs the
// resulting artifact and adopts the identity. On failure the current
// identity is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) Outcome {
	id, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return s.authFailure("login", err)
	}
	return s.adopt(ctx, id)
}

// Register creates a new account, rejecting duplicate emails, then
// behaves exactly like Login.
func (s *Store) Register(ctx context.Context, email, password, name string, role identity.Role) Outcome {
	id, err := s.verifier.Register(ctx, email, password, name, role)
	if err != nil {
		return s.authFailure("register", err)
	}
	return s.adopt(ctx, id)
}

func (s *Store) adopt(ctx context.Context, id *identity.Identity) Outcome {
	if err := s.backend.Issue(ctx, id); err != nil {
		s.log.Error().Err(err).Msg("failed to install session artifact")
		return failure("could not persist the session, please try again")
	}

	s.mu.Lock()
	s.id = id
	s.loading = false
	s.mu.Unlock()

	return success()
}

func (s *Store) authFailure(op string, err error) Outcome {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return failure("invalid email or password")
	case errors.Is(err, ErrUserExists):
		return failure("an account with this email already exists")
	case errors.Is(err, ErrUnreachable):
		return failure("server unreachable, please try again")
	}
	// Unexpected failure: log loudly, still report an outcome.
	s.log.Error().Err(err).Str("op", op).Msg("unexpected auth failure")
	return failure(err.Error())
}

// Logout revokes the stored artifact and clears the identity. The local
// state is cleared unconditionally, even when remote revocation fails,
// so a second Logout is a harmless no-op.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Revoke(ctx); err != nil {
		s.log.Warn().Err(err).Msg("artifact revocation failed, clearing local session anyway")
	}

	s.mu.Lock()
	s.id = nil
	s.mu.Unlock()
}

// Identity returns the current identity, or nil when logged out.
func (s *Store) Identity() *identity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// IsLoading reports whether startup recovery is still pending.
// Consumers must treat true as "decision deferred", not "denied".
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// HasRole reports whether the current identity satisfies the required
// role under the member < manager < admin hierarchy. False when logged
// out.
func (s *Store) HasRole(required identity.Role) bool {
	return identity.Authorize(s.Identity(), required)
}
