package session

import (
	"fmt"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

// Decision is the route guard's verdict for a protected view.
type Decision int

const (
	// DecisionDefer means startup recovery has not resolved yet; the
	// caller should render a loading state, not deny.
	DecisionDefer Decision = iota
	// DecisionHide means no identity is present; the caller is
	// expected to have routed to the login view already.
	DecisionHide
	// DecisionAllow means the protected content may render.
	DecisionAllow
	// DecisionDeny means the identity lacks the required role; render
	// the fallback, or DenyNotice when none is supplied.
	DecisionDeny
)

// NoRole marks a guard with no role requirement: any authenticated
// identity is allowed through.
const NoRole = identity.Role("")

// Evaluate is the pure, synchronous guard decision. Identity and role
// are already resolved upstream; no network access happens here.
func Evaluate(id *identity.Identity, loading bool, required identity.Role) Decision {
	switch {
	case loading:
		return DecisionDefer
	case id == nil:
		return DecisionHide
	case required == NoRole:
		return DecisionAllow
	case identity.Authorize(id, required):
		return DecisionAllow
	default:
		return DecisionDeny
	}
}

// Guard evaluates the route guard against the store's current state.
func (s *Store) Guard(required identity.Role) Decision {
	s.mu.Lock()
	id, loading := s.id, s.loading
	s.mu.Unlock()
	return Evaluate(id, loading, required)
}

// DenyNotice is the standard insufficient-permission message, naming
// the required role.
func DenyNotice(required identity.Role) string {
	return fmt.Sprintf("You don't have permission to access this page. Required role: %s", required)
}
