// Package identity defines the authenticated principal and the role
// hierarchy shared by the NexaBoard backend and the session client.
package identity

// Role is one of the closed set of NexaBoard roles. Roles form a total
// order: member < manager < admin, and a higher role inherits every
// permission of the roles below it.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// roleRanks is the fixed rank table backing the total order.
var roleRanks = map[Role]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the numeric rank of r, or 0 for an unknown role.
func (r Role) Rank() int {
	return roleRanks[r]
}

// AtLeast reports whether r satisfies a requirement of required,
// i.e. rank(r) >= rank(required). An unknown role never satisfies
// anything, and nothing satisfies an unknown requirement.
func (r Role) AtLeast(required Role) bool {
	rr, ok := roleRanks[r]
	if !ok {
		return false
	}
	req, ok := roleRanks[required]
	if !ok {
		return false
	}
	return rr >= req
}

// ParseRole normalises a role string. It returns RoleMember for the
// empty string (the registration default) and ok=false for anything
// outside the closed set.
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return RoleMember, true
	}
	r := Role(s)
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// Identity is the authenticated principal record.
type Identity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Authorize decides whether id may perform an action requiring the
// given role. A nil identity is always denied. Pure function, no
// failure mode.
func Authorize(id *Identity, required Role) bool {
	if id == nil {
		return false
	}
	return id.Role.AtLeast(required)
}
