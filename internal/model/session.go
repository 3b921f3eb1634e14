package model

import "time"

// SessionCode is a client-generated opaque credential.
// Possession of the code is the identity; there is no further authentication.
type SessionCode string

// Role is the privilege level resolved for a session code
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// IsAdmin reports whether the role carries moderation privileges.
// The owner is implicitly an admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleOwner
}

// IsOwner reports whether the role is the process owner
func (r Role) IsOwner() bool {
	return r == RoleOwner
}

// Actor is the resolved identity attached to a request
type Actor struct {
	Session SessionCode
	Role    Role
}

// AllowedSession is a whitelist entry permitting a session to attempt admin login
type AllowedSession struct {
	SessionCode SessionCode `json:"sessionCode"`
	AddedBy     SessionCode `json:"addedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}
