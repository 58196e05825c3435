package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

type staticResolver map[string]string

func (r staticResolver) LookupName(_ context.Context, id string) (string, bool) {
	name, ok := r[id]
	return name, ok
}

func TestTokenBackend_RoundTrip(t *testing.T) {
	slot := NewMemorySlot()
	backend := NewTokenBackend(slot, staticResolver{"u1": "Morgan"})

	id := &identity.Identity{ID: "u1", Email: "m@x.com", Name: "Morgan", Role: identity.RoleMember}
	if err := backend.Issue(context.Background(), id); err != nil {
		t.Fatalf("issue: %v", err)
	}

	got := backend.Recover(context.Background())
	if got == nil {
		t.Fatalf("expected recovered identity, got nil")
	}
	if got.ID != "u1" || got.Email != "m@x.com" || got.Name != "Morgan" || got.Role != identity.RoleMember {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestTokenBackend_UnknownSubjectGetsPlaceholderName(t *testing.T) {
	slot := NewMemorySlot()
	backend := NewTokenBackend(slot, staticResolver{})

	id := &identity.Identity{ID: "ghost", Email: "g@x.com", Role: identity.RoleAdmin}
	_ = backend.Issue(context.Background(), id)

	got := backend.Recover(context.Background())
	if got == nil {
		t.Fatalf("expected recovered identity")
	}
	if got.Name != placeholderName {
		t.Fatalf("expected placeholder name, got %q", got.Name)
	}
}

func TestTokenBackend_ExpiredArtifactIsAbsent(t *testing.T) {
	slot := NewMemorySlot()
	backend := NewTokenBackend(slot, nil)

	id := &identity.Identity{ID: "u1", Email: "m@x.com", Role: identity.RoleMember}
	_ = backend.Issue(context.Background(), id)

	// Shift the clock past the TTL before recovering.
	backend.now = func() time.Time { return time.Now().Add(ArtifactTTL + time.Minute) }

	if got := backend.Recover(context.Background()); got != nil {
		t.Fatalf("expired artifact should recover as absent, got %+v", got)
	}
}

func TestDecodeArtifact_Malformed(t *testing.T) {
	now := time.Now()
	for _, artifact := range []string{"not-a-valid-token", "a.b", "", "a.b.c.d", "x.!!!.z"} {
		if _, ok := DecodeArtifact(artifact, now); ok {
			t.Fatalf("artifact %q should decode as absent", artifact)
		}
	}
}

func TestDecodeArtifact_GarbagePayload(t *testing.T) {
	// Structurally valid three segments, but the payload is not JSON.
	artifact := tokenEncoding.EncodeToString([]byte(`{"alg":"none"}`)) + "." +
		tokenEncoding.EncodeToString([]byte("not json")) + "." +
		tokenEncoding.EncodeToString([]byte("sig:x"))
	if _, ok := DecodeArtifact(artifact, time.Now()); ok {
		t.Fatalf("garbage payload should decode as absent")
	}
}

func TestEncodeArtifact_Shape(t *testing.T) {
	id := &identity.Identity{ID: "u1", Email: "m@x.com", Role: identity.RoleManager}
	artifact := EncodeArtifact(id, time.Now())

	parts := strings.Split(artifact, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three segments, got %d", len(parts))
	}

	payload, ok := DecodeArtifact(artifact, time.Now())
	if !ok {
		t.Fatalf("fresh artifact should decode")
	}
	if payload.Sub != "u1" || payload.Email != "m@x.com" || payload.Role != identity.RoleManager {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if remaining := time.Until(time.Unix(payload.Exp, 0)); remaining > ArtifactTTL || remaining < ArtifactTTL-time.Minute {
		t.Fatalf("expiry not ~24h out: %v", remaining)
	}
}
