package auth

// Package auth contains domain-level types for sessions issued after a
// successful identity resolution. It is pure and free of adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// RoleForPrivilege maps the provider-asserted privilege flag to a role.
func RoleForPrivilege(privileged bool) Role {
	if privileged {
		return RoleAdmin
	}
	return RoleUser
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier; UserID is the LOCAL account id
// returned by the identity engine, never the provider subject.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`

	// IDTokenHint is retained server-side only, for the provider's
	// end-session call at logout. It is never sent to the browser.
	IDTokenHint string `json:"id_token_hint,omitempty"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }
