package auth

// Role is the closed set of roles the dashboard understands. Values coming
// from the server are preserved verbatim, but anything outside the known
// set carries no privileges.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Known reports whether the role is one the client recognizes
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleStaff
}

// IsAdmin gates privileged UI. Unknown roles fail closed.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
