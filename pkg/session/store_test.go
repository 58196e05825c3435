package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

func newLocalStore(t *testing.T) (*Store, *LocalVerifier, *MemorySlot) {
	t.Helper()
	verifier := NewLocalVerifier()
	slot := NewMemorySlot()
	backend := NewTokenBackend(slot, verifier)
	return NewStore(verifier, backend, zerolog.Nop()), verifier, slot
}

func TestStore_RegisterThenLogin(t *testing.T) {
	store, _, _ := newLocalStore(t)
	ctx := context.Background()

	out := store.Register(ctx, "m@x.com", "p", "M", identity.RoleMember)
	if !out.Success {
		t.Fatalf("register failed: %s", out.Reason)
	}

	out = store.Login(ctx, "m@x.com", "p")
	if !out.Success {
		t.Fatalf("login failed: %s", out.Reason)
	}

	id := store.Identity()
	if id == nil || id.Role != identity.RoleMember || id.Email != "m@x.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestStore_LoginFailureLeavesIdentityNil(t *testing.T) {
	store, _, _ := newLocalStore(t)

	out := store.Login(context.Background(), "bad@x.com", "wrong")
	if out.Success {
		t.Fatalf("expected failure against empty user set")
	}
	if out.Reason != "invalid email or password" {
		t.Fatalf("unexpected reason: %q", out.Reason)
	}
	if store.Identity() != nil {
		t.Fatalf("identity should remain nil after failed login")
	}
}

func TestStore_DuplicateRegistration(t *testing.T) {
	store, _, _ := newLocalStore(t)
	ctx := context.Background()

	if out := store.Register(ctx, "m@x.com", "p", "M", identity.RoleMember); !out.Success {
		t.Fatalf("first register failed: %s", out.Reason)
	}
	out := store.Register(ctx, "m@x.com", "other", "M2", identity.RoleManager)
	if out.Success {
		t.Fatalf("duplicate email should fail")
	}
	if out.Reason != "an account with this email already exists" {
		t.Fatalf("unexpected reason: %q", out.Reason)
	}
}

func TestStore_InitializeWithEmptySlot(t *testing.T) {
	store, _, _ := newLocalStore(t)

	if !store.IsLoading() {
		t.Fatalf("store should start loading")
	}

	store.Initialize(context.Background())

	if store.IsLoading() {
		t.Fatalf("initialize should resolve loading")
	}
	if store.Identity() != nil {
		t.Fatalf("no artifact should resolve to nil identity")
	}
}

func TestStore_InitializeRecoversStoredArtifact(t *testing.T) {
	store, verifier, slot := newLocalStore(t)
	ctx := context.Background()

	out := store.Register(ctx, "a@x.com", "pw", "Alex", identity.RoleManager)
	if !out.Success {
		t.Fatalf("register failed: %s", out.Reason)
	}
	if _, ok := slot.Load(); !ok {
		t.Fatalf("artifact should be installed after register")
	}

	// A fresh store over the same slot simulates a restart.
	restarted := NewStore(verifier, NewTokenBackend(slot, verifier), zerolog.Nop())
	restarted.Initialize(ctx)

	id := restarted.Identity()
	if id == nil || id.Email != "a@x.com" || id.Name != "Alex" || id.Role != identity.RoleManager {
		t.Fatalf("unexpected recovered identity: %+v", id)
	}
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	store, _, slot := newLocalStore(t)
	ctx := context.Background()

	_ = store.Register(ctx, "m@x.com", "p", "M", identity.RoleMember)

	store.Logout(ctx)
	store.Logout(ctx)

	if store.Identity() != nil {
		t.Fatalf("identity should be nil after logout")
	}
	if _, ok := slot.Load(); ok {
		t.Fatalf("artifact slot should be empty after logout")
	}
}

// failingBackend simulates a remote revocation failure: local clearing
// must still happen.
type failingBackend struct {
	Backend
}

func (f *failingBackend) Revoke(context.Context) error {
	return errors.New("revocation endpoint down")
}

func TestStore_LogoutClearsLocalStateWhenRevokeFails(t *testing.T) {
	verifier := NewLocalVerifier()
	slot := NewMemorySlot()
	backend := &failingBackend{Backend: NewTokenBackend(slot, verifier)}
	store := NewStore(verifier, backend, zerolog.Nop())

	_ = store.Register(context.Background(), "m@x.com", "p", "M", identity.RoleMember)
	store.Logout(context.Background())

	if store.Identity() != nil {
		t.Fatalf("identity must be cleared even when revocation fails")
	}
}

func TestStore_HasRole(t *testing.T) {
	store, _, _ := newLocalStore(t)
	ctx := context.Background()

	if store.HasRole(identity.RoleMember) {
		t.Fatalf("logged-out store should have no role")
	}

	_ = store.Register(ctx, "m@x.com", "p", "M", identity.RoleManager)

	if !store.HasRole(identity.RoleMember) || !store.HasRole(identity.RoleManager) {
		t.Fatalf("manager should satisfy member and manager")
	}
	if store.HasRole(identity.RoleAdmin) {
		t.Fatalf("manager should not satisfy admin")
	}
}

func TestStore_UnreachableVerifier(t *testing.T) {
	api, err := NewAPIClient("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	store := NewStore(NewRemoteVerifier(api), NewCookieBackend(api), zerolog.Nop())

	out := store.Login(context.Background(), "m@x.com", "p")
	if out.Success {
		t.Fatalf("expected failure")
	}
	if out.Reason != "server unreachable, please try again" {
		t.Fatalf("unexpected reason: %q", out.Reason)
	}

	// Recovery against an unreachable server folds into absent, not an
	// unresolved state.
	store.Initialize(context.Background())
	if store.IsLoading() || store.Identity() != nil {
		t.Fatalf("recovery failure should resolve to logged out")
	}
}
