// Package entity contains the core business objects of the project.
package entity

// Role is the effective role of a caller for one request.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Principal is the resolved caller identity. It is created per request
// from the bearer credential and never persisted.
type Principal struct {
	Role   Role
	UserID string // Subject of the session, empty for anonymous callers.
	AppID  string // Application the credential was issued for.
}

// IsAdmin reports whether the principal has the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsAnonymous reports whether the request carried no credential.
func (p *Principal) IsAnonymous() bool {
	return p == nil || p.Role == RoleAnonymous
}
