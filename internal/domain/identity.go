package domain

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// UserIdentity is the identity carried inside bearer tokens. Field tags are
// the claim keys.
type UserIdentity struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	RoleNames []string `json:"roles"`
}

// Roles implements auth.Identity.
func (u UserIdentity) Roles() []string {
	return u.RoleNames
}

// Validate rejects tokens whose claims lack the fields every identity needs.
func (u UserIdentity) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Username, validation.Required, validation.Length(1, 200)),
	)
}
