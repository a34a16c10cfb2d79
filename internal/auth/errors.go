package auth

import "errors"

// Token error kinds. Decode wraps the underlying cause with one of these so
// callers can branch with errors.Is.
var (
	ErrMalformedToken       = errors.New("malformed token")
	ErrInvalidSignature     = errors.New("invalid token signature")
	ErrExpiredToken         = errors.New("token expired")
	ErrUnsupportedTokenType = errors.New("token claims do not fit identity type")
	ErrConfiguration        = errors.New("token signing misconfigured")
)

// Kind reports the short name of the error kind wrapped by err, or "" when err
// is not a token error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrExpiredToken):
		return "expired"
	case errors.Is(err, ErrUnsupportedTokenType):
		return "unsupported"
	default:
		return ""
	}
}
