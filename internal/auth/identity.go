package auth

import "strings"

// RolePrefix marks a grant as role-derived.
const RolePrefix = "ROLE_"

// Identity is the capability every application identity must expose to be
// installed by the middleware. A nil slice is read as no roles.
type Identity interface {
	Roles() []string
}

// Granted is the untyped view of an Authentication used by guards.
type Granted interface {
	Authorities() []string
	HasGrant(grant string) bool
}

// Authentication pairs a verified identity with the grants derived from its
// roles. It lives for a single request.
type Authentication[T Identity] struct {
	Identity T
	Grants   []string
}

// NewAuthentication derives one grant per distinct role of identity.
func NewAuthentication[T Identity](identity T) *Authentication[T] {
	return &Authentication[T]{
		Identity: identity,
		Grants:   GrantsFor(identity.Roles()),
	}
}

// Authorities returns a copy of the grant labels.
func (a *Authentication[T]) Authorities() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.Grants))
	copy(out, a.Grants)
	return out
}

// HasGrant reports whether grant was derived for this identity.
func (a *Authentication[T]) HasGrant(grant string) bool {
	if a == nil {
		return false
	}
	for _, g := range a.Grants {
		if g == grant {
			return true
		}
	}
	return false
}

// GrantsFor prefixes every distinct, non-blank role with RolePrefix,
// keeping first-seen order.
func GrantsFor(roles []string) []string {
	grants := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if strings.TrimSpace(role) == "" {
			continue
		}
		grant := RolePrefix + role
		if _, ok := seen[grant]; ok {
			continue
		}
		seen[grant] = struct{}{}
		grants = append(grants, grant)
	}
	return grants
}
