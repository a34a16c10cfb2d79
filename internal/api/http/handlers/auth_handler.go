package handlers

import (
	"context"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/token-gate/internal/api/dto"
	"github.com/spec-kit/token-gate/internal/auth"
	"github.com/spec-kit/token-gate/internal/domain"
	"github.com/spec-kit/token-gate/internal/service"
	apperrors "github.com/spec-kit/token-gate/pkg/util/errorutil"
)

// TokenIssuer exchanges credentials for a token.
type TokenIssuer interface {
	Login(ctx context.Context, in service.LoginInput) (*service.IssuedToken, error)
}

// AuthHandler exposes token issuance and caller introspection.
type AuthHandler struct {
	issuer TokenIssuer
}

// NewAuthHandler constructs handler.
func NewAuthHandler(issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	issued, err := h.issuer.Login(c.UserContext(), service.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			details := make(map[string]any, len(verrs))
			for field, fieldErr := range verrs {
				details[field] = fieldErr.Error()
			}
			return apperrors.NewValidationError("invalid credentials payload", details)
		case errors.Is(err, service.ErrInvalidCredentials):
			return apperrors.NewUnauthorized("invalid credentials")
		default:
			return err
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.TokenResponse{
			Token:     issued.Token,
			TokenType: "Bearer",
			ExpiresAt: issued.ExpiresAt,
			ExpiresIn: issued.ExpiresIn,
		},
	})
}

// Me handles GET /me and echoes the identity installed by the middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	authentication, ok := auth.AuthenticationFromContext[domain.UserIdentity](c.UserContext())
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	roles := authentication.Identity.Roles()
	if roles == nil {
		roles = []string{}
	}
	return c.JSON(fiber.Map{
		"data": dto.MeResponse{
			ID:       authentication.Identity.ID,
			Username: authentication.Identity.Username,
			Roles:    roles,
			Grants:   authentication.Authorities(),
		},
	})
}

// AdminPing handles GET /admin/ping; reaching it proves ROLE_ADMIN.
func (h *AuthHandler) AdminPing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}
