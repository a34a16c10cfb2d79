package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ClaimExpiresAt is the registered expiration claim, in seconds since epoch.
const ClaimExpiresAt = "exp"

// Claims is the verified payload of a token. Numeric claims are held as
// json.Number so integers survive a round trip unchanged.
type Claims map[string]any

// ClaimsMarshaler lets an identity declare its own claim mapping instead of
// relying on its json struct tags.
type ClaimsMarshaler interface {
	Claims() (map[string]any, error)
}

// ClaimsUnmarshaler is the decoding counterpart of ClaimsMarshaler. It is
// looked up on a pointer to the target type.
type ClaimsUnmarshaler interface {
	SetClaims(claims map[string]any) error
}

// Validator is checked after claims are mapped into an identity; a failure
// means the token does not fit the identity type.
type Validator interface {
	Validate() error
}

func toClaims(identity any) (Claims, error) {
	if m, ok := identity.(ClaimsMarshaler); ok {
		declared, err := m.Claims()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedTokenType, err)
		}
		claims := make(Claims, len(declared)+1)
		for k, v := range declared {
			claims[k] = v
		}
		return claims, nil
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTokenType, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var claims Claims
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: identity %T is not an object: %v", ErrUnsupportedTokenType, identity, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: identity %T encodes to null", ErrUnsupportedTokenType, identity)
	}
	return claims, nil
}

func fromClaims[T any](claims Claims) (T, error) {
	var out T
	if u, ok := any(&out).(ClaimsUnmarshaler); ok {
		if err := u.SetClaims(claims); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %v", ErrUnsupportedTokenType, err)
		}
	} else {
		raw, err := json.Marshal(claims)
		if err != nil {
			return out, fmt.Errorf("%w: %v", ErrUnsupportedTokenType, err)
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %v", ErrUnsupportedTokenType, err)
		}
	}

	if v, ok := any(&out).(Validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %v", ErrUnsupportedTokenType, err)
		}
	}
	return out, nil
}
