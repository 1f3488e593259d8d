package identity

import "strings"

// Role is the editorial role supplied by the external identity provider.
// The engine consumes {id, role} pairs; it never issues or refreshes them.
type Role string

const (
	RoleSubmitter  Role = "submitter"
	RoleReviewer   Role = "reviewer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Actor is the authenticated caller descriptor attached to every gated
// operation.
type Actor struct {
	ID   string
	Role Role
}

var roleRanks = map[Role]int{
	RoleSubmitter:  1,
	RoleReviewer:   2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// Rank returns the ordering position of a role. Unknown roles rank below
// every known role so permission checks fail closed.
func (r Role) Rank() int {
	return roleRanks[r]
}

// AtLeast reports whether the role meets or exceeds the required role.
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank() && r.Rank() > 0
}

// Valid reports whether the role is one of the known editorial roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// ParseRole normalizes a raw role string from the request boundary.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", false
	}
	return role, true
}
