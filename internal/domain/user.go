package domain

import "time"

// User is a stored account allowed to request tokens.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the claims-facing view of the user.
func (u *User) Identity() UserIdentity {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	return UserIdentity{ID: u.ID, Username: u.Username, RoleNames: roles}
}
