package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type ctxKey string

const (
	ctxKeyAuthentication ctxKey = "auth_authentication"
	principalKey                = "auth_principal"
)

// WithAuthentication stores the request's authentication record in ctx.
func WithAuthentication[T Identity](ctx context.Context, a *Authentication[T]) context.Context {
	return context.WithValue(ctx, ctxKeyAuthentication, a)
}

// AuthenticationFromContext returns the record installed for this request,
// if any and if it was decoded as a T.
func AuthenticationFromContext[T Identity](ctx context.Context) (*Authentication[T], bool) {
	a, ok := ctx.Value(ctxKeyAuthentication).(*Authentication[T])
	return a, ok && a != nil
}

// AuthenticationFromLocals is the fiber counterpart of AuthenticationFromContext.
func AuthenticationFromLocals[T Identity](c *fiber.Ctx) (*Authentication[T], bool) {
	a, ok := c.Locals(principalKey).(*Authentication[T])
	return a, ok && a != nil
}

// GrantedFromLocals returns the record without knowing its identity type.
func GrantedFromLocals(c *fiber.Ctx) (Granted, bool) {
	g, ok := c.Locals(principalKey).(Granted)
	return g, ok && g != nil
}
