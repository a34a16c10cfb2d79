package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/token-gate/internal/observability"
)

// BearerPrefix is the scheme marker expected in the Authorization header.
const BearerPrefix = "Bearer "

// Authenticate decodes the bearer token carried by header. A missing header
// or any other scheme yields (nil, nil); decode failures are returned as is.
func Authenticate[T Identity](tokens *TokenManager, header string) (*Authentication[T], error) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, nil
	}
	identity, err := Decode[T](tokens, strings.TrimPrefix(header, BearerPrefix))
	if err != nil {
		return nil, err
	}
	return NewAuthentication(identity), nil
}

// AuthMiddleware installs the caller's identity when a valid bearer token is
// present. It never rejects anonymous requests; guards downstream do that.
type AuthMiddleware[T Identity] struct {
	tokens  *TokenManager
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware decoding identities of type T.
func NewAuthMiddleware[T Identity](tokens *TokenManager, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware[T]{tokens: tokens, logger: logger, metrics: metrics}
}

// Handle is the fiber handler. Decode errors go to the app's error handler
// and the rest of the chain is skipped.
func (m *AuthMiddleware[T]) Handle(c *fiber.Ctx) error {
	authentication, err := Authenticate[T](m.tokens, c.Get(fiber.HeaderAuthorization))
	if err != nil {
		kind := Kind(err)
		m.metrics.RecordAuthentication(kind)
		fields := []zap.Field{zap.String("path", c.Path()), zap.String("kind", kind), zap.Error(err)}
		if errors.Is(err, ErrInvalidSignature) {
			m.logger.Warn("bearer token signature rejected", append(fields, zap.String("ip", c.IP()))...)
		} else {
			m.logger.Debug("bearer token rejected", fields...)
		}
		return err
	}

	if authentication == nil {
		m.metrics.RecordAuthentication("anonymous")
		m.logger.Debug("no bearer token in request", zap.String("path", c.Path()))
		return c.Next()
	}

	m.metrics.RecordAuthentication("authenticated")
	c.Locals(principalKey, authentication)
	c.SetUserContext(WithAuthentication(c.UserContext(), authentication))
	return c.Next()
}
