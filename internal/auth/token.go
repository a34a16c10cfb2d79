package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod is the only algorithm issued or accepted.
var SigningMethod = jwt.SigningMethodHS512

// TokenManager issues and verifies HS512 compact tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenManager struct {
	cfg    SigningConfig
	secret []byte
	now    func() time.Time
	leeway time.Duration
	parser *jwt.Parser
}

// Option customises a TokenManager.
type Option func(*TokenManager)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// WithLeeway tolerates clock skew when checking exp.
func WithLeeway(d time.Duration) Option {
	return func(tm *TokenManager) {
		tm.leeway = d
	}
}

// NewTokenManager builds a manager for cfg. Only the secret is required
// here; the lifetime policy is checked when a token is issued.
func NewTokenManager(cfg SigningConfig, opts ...Option) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrConfiguration)
	}
	tm := &TokenManager{
		cfg:    cfg,
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	tm.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{SigningMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
		jwt.WithLeeway(tm.leeway),
		jwt.WithJSONNumber(),
		jwt.WithStrictDecoding(),
	)
	return tm, nil
}

// Config returns the signing configuration in use.
func (tm *TokenManager) Config() SigningConfig {
	return tm.cfg
}

// Encode signs identity into a compact token.
func (tm *TokenManager) Encode(identity any) (string, error) {
	token, _, err := tm.Issue(identity)
	return token, err
}

// Issue signs identity and also reports the expiration instant.
func (tm *TokenManager) Issue(identity any) (string, time.Time, error) {
	if tm == nil {
		return "", time.Time{}, fmt.Errorf("%w: nil token manager", ErrConfiguration)
	}
	if err := tm.cfg.Validate(); err != nil {
		return "", time.Time{}, err
	}

	claims, err := toClaims(identity)
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := tm.now().Add(tm.cfg.TTL()).Truncate(time.Second)
	claims[ClaimExpiresAt] = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(SigningMethod, jwt.MapClaims(claims))
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks structure, signature and expiry, in that order, and returns
// the claims. No claim is read before the signature has been checked.
func (tm *TokenManager) Verify(tokenString string) (Claims, error) {
	if tm == nil || len(tm.secret) == 0 || tm.parser == nil {
		return nil, fmt.Errorf("%w: empty secret", ErrConfiguration)
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}
	var signature []byte
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: segment %d is empty", ErrMalformedToken, i)
		}
		decoded, err := tm.parser.DecodeSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d: %v", ErrMalformedToken, i, err)
		}
		signature = decoded
	}

	if err := SigningMethod.Verify(parts[0]+"."+parts[1], signature, tm.secret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	parsed, err := tm.parser.ParseWithClaims(tokenString, jwt.MapClaims{}, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type %T", ErrMalformedToken, parsed.Claims)
	}
	return Claims(claims), nil
}

// Decode verifies tokenString and maps its claims into a T.
func Decode[T any](tm *TokenManager, tokenString string) (T, error) {
	claims, err := tm.Verify(tokenString)
	if err != nil {
		var zero T
		return zero, err
	}
	return fromClaims[T](claims)
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
