// Package session implements the NexaBoard client-side session model: a
// session store holding the current authenticated identity, pluggable
// session backends that persist the proof-of-session artifact across
// restarts, and a route guard gating role-restricted views.
package session

import (
	"context"
	"errors"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

// Backend persists and recovers the durable session artifact. Two
// implementations exist: CookieBackend, where the artifact is an opaque
// HttpOnly cookie the server manages, and TokenBackend, where the
// artifact is a self-encoded token kept in a local Slot.
//
// Recover folds every failure mode into nil: a malformed artifact, an
// expired artifact, and an unreachable server all read as "absent
// identity", never as an error.
type Backend interface {
	// Issue installs an artifact for the given identity. For the
	// server-backed variant this is a no-op: the server set the
	// artifact as a side effect of the authentication call.
	Issue(ctx context.Context, id *identity.Identity) error

	// Recover attempts to rebuild an identity from the stored
	// artifact. nil means absent.
	Recover(ctx context.Context) *identity.Identity

	// Revoke removes the artifact from its storage slot, or asks the
	// server to invalidate it. The local slot is always cleared even
	// when the remote call fails.
	Revoke(ctx context.Context) error
}

// Verifier validates submitted credentials against a user record. The
// origin may be a remote service call (RemoteVerifier) or a local
// lookup table (LocalVerifier); the contract is identical either way.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*identity.Identity, error)
	Register(ctx context.Context, email, password, name string, role identity.Role) (*identity.Identity, error)
}

// NameResolver resolves a display name from a subject id. Used when a
// self-encoded artifact is recovered, since the token payload carries
// no name.
type NameResolver interface {
	LookupName(ctx context.Context, subjectID string) (string, bool)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUnreachable        = errors.New("server unreachable")
)
